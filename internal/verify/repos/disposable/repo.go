package disposable

import (
	"errors"
	"sync"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/common/utils"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// ErrAlreadyLoaded is returned when Load is called on a populated repository.
var ErrAlreadyLoaded = errors.New("disposable domain set already loaded")

// repository implements Repository by composing a Store, a Bloom filter (via
// factory) and a DecisionCache. Reads go bloom -> cache -> store.
type repository struct {
	mu      sync.RWMutex
	store   Store
	cache   DecisionCache
	bloom   BloomFilter
	factory BloomFactory
	fpRate  float64
	loaded  bool
	logger  log.Logger
}

// Options configures NewRepository.
type Options struct {
	Store   Store
	Cache   DecisionCache
	Factory BloomFactory
	// FPRate is the target false-positive rate for the Bloom filter.
	FPRate float64
	Logger log.Logger
}

// NewRepository constructs an empty Repository. Call Load once before use.
func NewRepository(opts Options) Repository {
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &repository{
		store:   opts.Store,
		cache:   opts.Cache,
		factory: opts.Factory,
		fpRate:  opts.FPRate,
		logger:  opts.Logger,
	}
}

// Contains reports whether name is exactly a disposable domain.
// Policy: on store errors, report not disposable.
func (r *repository) Contains(name string) bool {
	cn := utils.CanonicalDomain(name)
	if cn == "" {
		return false
	}
	// 1) bloom: definite negatives never touch the cache or store
	if !r.checkBloom(cn) {
		return false
	}
	// 2) cache
	if d, ok := r.cache.Get(cn); ok {
		return d
	}
	// 3) store
	d := r.checkStore(cn)
	r.cache.Put(cn, d)
	return d
}

// Load writes the store, builds a Bloom filter sized for the entries and
// clears the cache. It may be called only once.
func (r *repository) Load(entries []domain.DisposableDomain, version uint64, updatedUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return ErrAlreadyLoaded
	}

	if err := r.store.RebuildAll(entries, version, updatedUnix); err != nil {
		return err
	}

	var bf BloomFilter
	if r.factory != nil {
		bf = r.factory.New(uint64(len(entries)), r.fpRate)
		for _, e := range entries {
			bf.Add([]byte(e.Name))
		}
	}

	r.bloom = bf
	r.cache.Purge()
	r.loaded = true
	r.logger.Debug(map[string]any{"domains": len(entries), "version": version}, "disposable_set_loaded")
	return nil
}

// RepoStats returns cache and store statistics.
func (r *repository) RepoStats() RepoStats {
	return RepoStats{Cache: r.cache.Stats(), Store: r.store.Stats()}
}

// checkBloom returns false only when the name is definitely absent. Without a
// filter every name goes on to the store.
func (r *repository) checkBloom(cn string) bool {
	r.mu.RLock()
	bf := r.bloom
	r.mu.RUnlock()
	if bf == nil {
		return true
	}
	return bf.MightContain([]byte(cn))
}

func (r *repository) checkStore(cn string) bool {
	ok, err := r.store.Contains(cn)
	if err != nil {
		r.logger.Warn(map[string]any{"domain": cn, "error": err.Error()}, "disposable_store_lookup_failed")
		return false
	}
	return ok
}
