package disposable

import (
	"time"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// SourceBuiltin attributes entries from DefaultDomains.
const SourceBuiltin = "builtin"

// DefaultDomains is the hard-coded list of disposable mailbox providers.
// It is never fetched or updated remotely.
var DefaultDomains = []string{
	"tempmail.com",
	"mailinator.com",
	"10minutemail.com",
	"throwawaymail.com",
	"yopmail.com",
	"guerrillamail.com",
	"temp-mail.org",
	"fakeinbox.com",
	"dispostable.com",
	"guerrillamail.net",
	"sharklasers.com",
	"trashmail.com",
	"maildrop.cc",
	"getnada.com",
	"mailnesia.com",
	"mintemail.com",
	"tempail.com",
	"emailondeck.com",
	"spamgourmet.com",
	"mohmal.com",
}

// BuiltinEntries returns DefaultDomains as entries stamped with now.
func BuiltinEntries(now time.Time) []domain.DisposableDomain {
	out := make([]domain.DisposableDomain, 0, len(DefaultDomains))
	for _, name := range DefaultDomains {
		d, err := domain.NewDisposableDomain(name, SourceBuiltin, now)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Merge concatenates entry lists, keeping the first occurrence of each name.
func Merge(lists ...[]domain.DisposableDomain) []domain.DisposableDomain {
	seen := make(map[string]struct{})
	var out []domain.DisposableDomain
	for _, l := range lists {
		for _, e := range l {
			if _, ok := seen[e.Name]; ok {
				continue
			}
			seen[e.Name] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
