package memory

import (
	"sync"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
	"github.com/doziebest/email-verifier-application/internal/verify/repos/disposable"
)

// memoryStore implements disposable.Store with a map. It is the default
// backend when no database path is configured.
type memoryStore struct {
	mu      sync.RWMutex
	domains map[string]string // name -> source
	version uint64
	updated int64
}

// New returns an empty in-memory store.
func New() disposable.Store {
	return &memoryStore{domains: make(map[string]string)}
}

func (s *memoryStore) Contains(name string) (bool, error) {
	s.mu.RLock()
	_, ok := s.domains[name]
	s.mu.RUnlock()
	return ok, nil
}

func (s *memoryStore) RebuildAll(entries []domain.DisposableDomain, version uint64, updatedUnix int64) error {
	next := make(map[string]string, len(entries))
	for _, e := range entries {
		next[e.Name] = e.Source
	}
	s.mu.Lock()
	s.domains = next
	s.version = version
	s.updated = updatedUnix
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Stats() disposable.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return disposable.StoreStats{
		Domains:     uint64(len(s.domains)),
		Version:     s.version,
		UpdatedUnix: s.updated,
	}
}

func (s *memoryStore) Close() error { return nil }
