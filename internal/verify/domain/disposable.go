package domain

import (
	"fmt"
	"strings"
	"time"
)

// DisposableDomain is one entry of the disposable-domain set.
//
// Name is canonical (lower-case, no trailing dot) and matched exactly; there
// is no subdomain or wildcard matching.
type DisposableDomain struct {
	Name    string    // e.g. "mailinator.com"
	Source  string    // "builtin" or the list file it came from
	AddedAt time.Time // ingestion timestamp
}

// NewDisposableDomain constructs a DisposableDomain and validates its fields.
func NewDisposableDomain(name, source string, addedAt time.Time) (DisposableDomain, error) {
	d := DisposableDomain{
		Name:    strings.ToLower(strings.TrimSpace(name)),
		Source:  strings.TrimSpace(source),
		AddedAt: addedAt,
	}
	if err := d.Validate(); err != nil {
		return DisposableDomain{}, err
	}
	return d, nil
}

// Validate checks the entry for required fields.
func (d DisposableDomain) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("domain name must not be empty")
	}
	if strings.ContainsAny(d.Name, "@ \t") {
		return fmt.Errorf("domain name %q contains invalid characters", d.Name)
	}
	if d.Source == "" {
		return fmt.Errorf("domain source must not be empty")
	}
	if d.AddedAt.IsZero() {
		return fmt.Errorf("domain addedAt must be set")
	}
	return nil
}
