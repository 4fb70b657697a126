package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"procdesk/errors"
)

// Record is the stored envelope around one domain entity. Data holds the
// JSON-encoded entity; Indexed carries the secondary index values the
// owning repository wants maintained for it.
type Record struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Indexed   map[string]string `json:"indexed,omitempty"`
	Data      json.RawMessage   `json:"data"`
}

// Engine is the keyed storage contract. Two variants exist, selected once
// at startup: BadgerEngine on disk and MemoryEngine as the fallback. Both
// honour the same ordering semantics, so callers never learn which one
// served a call:
//   - GetAll returns records newest first (createdAt desc, id desc on ties)
//   - GetAllByIndex returns an exact-value match, ordered by id ascending
//   - Put rejects a record whose CreatedAt is zero or before the epoch
type Engine interface {
	Put(collection string, rec Record) error
	Get(collection, id string) (Record, bool, error)
	GetAll(collection string) ([]Record, error)
	GetAllByIndex(collection, index, value string) ([]Record, error)
	Delete(collection, id string) error
	Close() error
}

// PadTime renders a timestamp as a 19-digit zero-padded UnixNano so that
// lexicographic key order equals chronological order.
func PadTime(t time.Time) string {
	return fmt.Sprintf("%019d", t.UnixNano())
}

// validateRecord enforces the CreatedAt bound PadTime depends on: a
// negative UnixNano pads to 20 characters and would corrupt the key layout.
func validateRecord(rec Record) error {
	if rec.CreatedAt.IsZero() || rec.CreatedAt.UnixNano() < 0 {
		return fmt.Errorf("%w: %q", errors.ErrInvalidRecord, rec.ID)
	}
	return nil
}
