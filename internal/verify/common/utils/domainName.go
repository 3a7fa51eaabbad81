package utils

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// CanonicalDomain returns a domain in canonical form: trimmed, lowercased and
// without trailing dots.
func CanonicalDomain(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// IsPublicSuffix reports whether name is itself a public suffix (e.g. "com",
// "co.uk"), which can never be a mailbox provider's domain.
func IsPublicSuffix(name string) bool {
	name = CanonicalDomain(name)
	if name == "" {
		return false
	}
	suffix, _ := publicsuffix.PublicSuffix(name)
	return suffix == name
}

// RegistrableDomain returns the eTLD+1 of name, or name itself when it cannot be determined.
func RegistrableDomain(name string) string {
	name = CanonicalDomain(name)
	apex, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return name
	}
	return apex
}
