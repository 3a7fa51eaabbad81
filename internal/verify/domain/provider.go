package domain

import (
	"fmt"
	"strings"
)

// ProviderName identifies a third-party verification service.
type ProviderName string

const (
	ProviderHunter      ProviderName = "hunter"
	ProviderNeverBounce ProviderName = "neverbounce"
	ProviderZeroBounce  ProviderName = "zerobounce"
)

// Providers lists every supported provider in the order they are consulted.
var Providers = []ProviderName{ProviderHunter, ProviderNeverBounce, ProviderZeroBounce}

// ParseProviderName converts a string into a ProviderName (case-insensitive).
func ParseProviderName(s string) (ProviderName, error) {
	n := ProviderName(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range Providers {
		if n == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unsupported provider: %q", s)
}

// Credentials maps a provider to its API key. A missing or empty entry means
// the provider is skipped. Credentials are only ever held in memory.
type Credentials map[ProviderName]string

// Key returns the API key for p, or "" when none is configured.
func (c Credentials) Key(p ProviderName) string {
	if c == nil {
		return ""
	}
	return c[p]
}

// Has reports whether p has a non-empty key.
func (c Credentials) Has(p ProviderName) bool {
	return c.Key(p) != ""
}

// Merge returns a new Credentials where non-empty entries of override replace those of c.
func (c Credentials) Merge(override Credentials) Credentials {
	out := make(Credentials, len(c)+len(override))
	for p, k := range c {
		if k != "" {
			out[p] = k
		}
	}
	for p, k := range override {
		if k != "" {
			out[p] = k
		}
	}
	return out
}

// Configured returns the providers with a key, in consultation order.
func (c Credentials) Configured() []ProviderName {
	out := make([]ProviderName, 0, len(Providers))
	for _, p := range Providers {
		if c.Has(p) {
			out = append(out, p)
		}
	}
	return out
}
