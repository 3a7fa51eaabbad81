package parsers

import (
	"strings"
	"unicode"

	"github.com/doziebest/email-verifier-application/internal/verify/common/utils"
)

// isWildcardEntry reports whether a raw entry asks for suffix matching
// ("*.example.com" or ".example.com"). Such entries are not supported: the
// disposable set matches exact domains only.
func isWildcardEntry(raw string) bool {
	return strings.HasPrefix(raw, "*.") || strings.HasPrefix(raw, ".")
}

// isValidDomain checks that name looks like a registrable mail domain:
//   - at most 253 characters
//   - at least two labels, each 1-63 characters
//   - labels made of letters, digits and hyphens, not starting with a hyphen
//   - not itself a public suffix such as "com" or "co.uk"
func isValidDomain(name string) bool {
	if len(name) == 0 || len(name) > 253 {
		return false
	}
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' {
			return false
		}
		for _, r := range label {
			if !isLabelRune(r) {
				return false
			}
		}
	}
	return !utils.IsPublicSuffix(name)
}

func isLabelRune(r rune) bool {
	return r == '-' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// normalizeEntry trims whitespace and a leading BOM and canonicalizes the name.
func normalizeEntry(raw string) string {
	raw = strings.TrimPrefix(raw, "\uFEFF")
	return utils.CanonicalDomain(raw)
}
