package domain

import "errors"

// Provider failure taxonomy. These are never raised to callers of the
// adapters; they classify the ErrorResult a call resolves to.
var (
	ErrProviderNotConfigured = errors.New("API key not configured")
	ErrProviderTransport     = errors.New("provider transport failure")
	ErrProviderApplication   = errors.New("provider application error")
)

// ErrorKind classifies an ErrorResult.
type ErrorKind string

const (
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindTransport     ErrorKind = "transport"
	ErrorKindApplication   ErrorKind = "application"
)

// Sentinel returns the sentinel error matching the kind.
func (k ErrorKind) Sentinel() error {
	switch k {
	case ErrorKindConfiguration:
		return ErrProviderNotConfigured
	case ErrorKindTransport:
		return ErrProviderTransport
	default:
		return ErrProviderApplication
	}
}
