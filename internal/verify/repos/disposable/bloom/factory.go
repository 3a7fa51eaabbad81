package bloom

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable"
)

type factory struct{}

// NewFactory returns a BloomFactory that sizes filters from capacity and FP rate.
func NewFactory() disposable.BloomFactory { return factory{} }

// New constructs a filter sized for capacity keys at fpRate.
func (factory) New(capacity uint64, fpRate float64) disposable.BloomFilter {
	m, k := size(capacity, fpRate)
	return &filter{bf: bitsbloom.New(uint(m), uint(k))}
}
