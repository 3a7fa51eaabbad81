package disposable

import "github.com/doziebest/email-verifier-application/internal/verify/domain"

// BloomFilter is the minimal interface the repository needs from a Bloom filter.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
}

// BloomFactory builds Bloom filters sized for a capacity and false-positive rate.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// DecisionCache caches membership decisions by canonical domain.
type DecisionCache interface {
	Get(name string) (disposable bool, ok bool)
	Put(name string, disposable bool)
	Len() int
	Purge()
	Stats() CacheStats
}

// Store is the authoritative index of disposable domains.
//   - Contains: exact-name membership
//   - RebuildAll: replace the contents and metadata in one step
//   - Stats: counts and metadata; Close: release resources
type Store interface {
	Contains(name string) (bool, error)
	RebuildAll(entries []domain.DisposableDomain, version uint64, updatedUnix int64) error
	Stats() StoreStats
	Close() error
}

// Set is what the classifier consumes: exact, case-insensitive membership.
type Set interface {
	Contains(name string) bool
}

// Repository composes bloom -> cache -> store behind Set.
// Load populates it exactly once; afterwards it is read-only.
type Repository interface {
	Set
	Load(entries []domain.DisposableDomain, version uint64, updatedUnix int64) error
	RepoStats() RepoStats
}

// RepoStats exposes repository-level counters and underlying store stats.
type RepoStats struct {
	Cache CacheStats
	Store StoreStats
}
