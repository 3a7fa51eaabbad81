package domain

import "encoding/json"

// Report aggregates the classifier verdict with zero or more provider results
// for a single address.
type Report struct {
	Verdict   Verdict          `json:"verdict"`
	Providers []ProviderResult `json:"-"`
}

type providerEntry struct {
	Provider       ProviderName   `json:"provider"`
	Deliverability string         `json:"deliverability"`
	Error          string         `json:"error,omitempty"`
	Details        ProviderResult `json:"details"`
}

// MarshalJSON flattens provider results into tagged entries.
func (r Report) MarshalJSON() ([]byte, error) {
	entries := make([]providerEntry, 0, len(r.Providers))
	for _, p := range r.Providers {
		entries = append(entries, providerEntry{
			Provider:       p.Provider(),
			Deliverability: p.Deliverability(),
			Error:          p.Failure(),
			Details:        p,
		})
	}
	return json.Marshal(struct {
		Verdict   Verdict         `json:"verdict"`
		Providers []providerEntry `json:"providers"`
	}{r.Verdict, entries})
}

// Failed returns the provider results that are errors.
func (r Report) Failed() []ErrorResult {
	var out []ErrorResult
	for _, p := range r.Providers {
		if e, ok := p.(ErrorResult); ok {
			out = append(out, e)
		}
	}
	return out
}
