package domain

import (
	"fmt"
	"strings"
)

// Status is the classifier's verdict category for one address.
type Status uint8

const (
	// StatusInvalidFormat means the address failed the syntax check.
	StatusInvalidFormat Status = iota
	// StatusDisposable means the address is well-formed but hosted on a known disposable domain.
	StatusDisposable
	// StatusValid means the address is well-formed and not on the disposable list.
	StatusValid
)

// String returns a stable string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusInvalidFormat:
		return "invalid_format"
	case StatusDisposable:
		return "disposable"
	case StatusValid:
		return "valid"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// ParseStatus converts a string into a Status (case-insensitive).
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invalid_format", "invalid":
		return StatusInvalidFormat, nil
	case "disposable":
		return StatusDisposable, nil
	case "valid":
		return StatusValid, nil
	default:
		return 0, fmt.Errorf("unsupported status: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// statusFor is the only place a Status is derived from the classifier's two booleans.
func statusFor(formatValid, disposable bool) Status {
	switch {
	case !formatValid:
		return StatusInvalidFormat
	case disposable:
		return StatusDisposable
	default:
		return StatusValid
	}
}
