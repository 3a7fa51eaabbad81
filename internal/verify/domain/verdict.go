package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Verdict is the classifier's structured output for one address.
// It is immutable: fields are only set by NewVerdict.
type Verdict struct {
	address     string
	formatValid bool
	domain      string
	disposable  bool
	status      Status
	timestamp   time.Time
}

// NewVerdict builds a Verdict and derives its Status. When formatValid is false
// the domain and disposable flag are discarded so the status invariants hold.
func NewVerdict(address string, formatValid bool, domain string, disposable bool, at time.Time) Verdict {
	if !formatValid {
		domain = ""
		disposable = false
	}
	return Verdict{
		address:     address,
		formatValid: formatValid,
		domain:      domain,
		disposable:  disposable,
		status:      statusFor(formatValid, disposable),
		timestamp:   at,
	}
}

// Address returns the input string verbatim.
func (v Verdict) Address() string { return v.address }

// FormatValid reports whether the address matched the syntax pattern.
func (v Verdict) FormatValid() bool { return v.formatValid }

// Domain returns the lower-cased domain, empty unless FormatValid.
func (v Verdict) Domain() string { return v.domain }

// Disposable reports whether the domain is on the disposable list.
func (v Verdict) Disposable() bool { return v.disposable }

// Status returns the verdict category.
func (v Verdict) Status() Status { return v.status }

// Timestamp returns the capture time.
func (v Verdict) Timestamp() time.Time { return v.timestamp }

// SameOutcome reports whether two verdicts agree on everything except the timestamp.
func (v Verdict) SameOutcome(o Verdict) bool {
	return v.address == o.address &&
		v.formatValid == o.formatValid &&
		v.domain == o.domain &&
		v.disposable == o.disposable &&
		v.status == o.status
}

// ExportHeader is the column order used by row-oriented exports.
var ExportHeader = []string{"address", "status", "format_valid", "disposable", "timestamp"}

// ExportRow returns the verdict's fields in ExportHeader order.
func (v Verdict) ExportRow() []string {
	return []string{
		v.address,
		v.status.String(),
		strconv.FormatBool(v.formatValid),
		strconv.FormatBool(v.disposable),
		v.timestamp.UTC().Format(time.RFC3339),
	}
}

type verdictJSON struct {
	Address     string    `json:"address"`
	Status      Status    `json:"status"`
	FormatValid bool      `json:"format_valid"`
	Domain      string    `json:"domain,omitempty"`
	Disposable  bool      `json:"disposable"`
	Timestamp   time.Time `json:"timestamp"`
}

// MarshalJSON encodes the verdict with a stable field order.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(verdictJSON{
		Address:     v.address,
		Status:      v.status,
		FormatValid: v.formatValid,
		Domain:      v.domain,
		Disposable:  v.disposable,
		Timestamp:   v.timestamp,
	})
}

// UnmarshalJSON decodes a verdict and re-derives its status through NewVerdict.
func (v *Verdict) UnmarshalJSON(b []byte) error {
	var raw verdictJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*v = NewVerdict(raw.Address, raw.FormatValid, raw.Domain, raw.Disposable, raw.Timestamp)
	return nil
}
