package storage

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"procdesk/errors"
)

// Store is the process-wide storage handle. It is constructed once at
// startup and injected into every repository.
//
// Opening probes the primary backend: a failed open is answered with one
// destructive recreate of the data directory, and a second failure flips
// the store permanently onto the in-memory engine. The decision is never
// revisited. After a successful open, any primary-engine error likewise
// downgrades the store permanently, and the failed operation is retried
// once against the fallback before an error reaches the caller.
type Store struct {
	log *slog.Logger

	mu       sync.Mutex
	engine   Engine
	degraded bool
}

// Open establishes the storage connection and applies pending schema
// migrations. It always returns a usable store; total primary failure
// degrades to memory instead of propagating.
func Open(path string, log *slog.Logger) (*Store, error) {
	s := &Store{log: log}

	engine, err := OpenBadger(path, log)
	if err != nil {
		log.Warn("primary store failed to open, recreating", "path", path, "error", err)
		if rmErr := os.RemoveAll(path); rmErr != nil {
			log.Warn("could not remove data directory", "path", path, "error", rmErr)
		}
		engine, err = OpenBadger(path, log)
	}
	if err != nil {
		log.Error("falling back to memory for this process",
			"error", fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err))
		s.engine = NewMemoryEngine()
		s.degraded = true
	} else {
		s.engine = engine
	}

	if err := Migrate(s.engine); err != nil {
		if s.degraded {
			return nil, err
		}
		s.log.Error("migration failed on primary store", "error", err)
		fallback := s.downgrade()
		if err := Migrate(fallback); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// current returns the engine to try first and whether the store has
// already been downgraded.
func (s *Store) current() (Engine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine, s.degraded
}

// downgrade permanently switches the store to a fresh in-memory engine.
// Data written to the primary so far is not carried over; the fallback's
// lifetime is the process's lifetime.
func (s *Store) downgrade() Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.degraded {
		return s.engine
	}
	s.log.Error("primary store failed, downgrading this connection to memory")
	_ = s.engine.Close()
	fallback := NewMemoryEngine()
	if err := Migrate(fallback); err != nil {
		// Memory migration only writes the version record; treat a failure
		// as fatal to the fallback's schema but keep serving.
		s.log.Error("fallback migration failed", "error", err)
	}
	s.engine = fallback
	s.degraded = true
	return s.engine
}

// Degraded reports whether the store runs on the in-memory fallback.
func (s *Store) Degraded() bool {
	_, degraded := s.current()
	return degraded
}

func (s *Store) Put(collection string, rec Record) error {
	engine, degraded := s.current()
	err := engine.Put(collection, rec)
	if err == nil || degraded || !isEngineFailure(err) {
		return err
	}
	return s.downgrade().Put(collection, rec)
}

func (s *Store) Get(collection, id string) (Record, bool, error) {
	engine, degraded := s.current()
	rec, ok, err := engine.Get(collection, id)
	if err == nil || degraded || !isEngineFailure(err) {
		return rec, ok, err
	}
	return s.downgrade().Get(collection, id)
}

func (s *Store) GetAll(collection string) ([]Record, error) {
	engine, degraded := s.current()
	records, err := engine.GetAll(collection)
	if err == nil || degraded || !isEngineFailure(err) {
		return records, err
	}
	return s.downgrade().GetAll(collection)
}

func (s *Store) GetAllByIndex(collection, index, value string) ([]Record, error) {
	engine, degraded := s.current()
	records, err := engine.GetAllByIndex(collection, index, value)
	if err == nil || degraded || !isEngineFailure(err) {
		return records, err
	}
	return s.downgrade().GetAllByIndex(collection, index, value)
}

func (s *Store) Delete(collection, id string) error {
	engine, degraded := s.current()
	err := engine.Delete(collection, id)
	if err == nil || degraded || !isEngineFailure(err) {
		return err
	}
	return s.downgrade().Delete(collection, id)
}

func (s *Store) Close() error {
	engine, _ := s.current()
	return engine.Close()
}
