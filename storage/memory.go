package storage

import (
	"sort"
	"sync"
)

// MemoryEngine is the fallback backend, used for the remaining process
// lifetime when the primary engine cannot be opened or fails mid-flight.
// It implements the exact operation set and ordering semantics of
// BadgerEngine; its data simply does not survive a restart.
type MemoryEngine struct {
	mu          sync.RWMutex
	collections map[string]map[string]Record
}

func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{
		collections: make(map[string]map[string]Record),
	}
}

// copyRecord detaches a record from the engine's internal state so callers
// can never mutate stored data through a shared slice or map.
func copyRecord(rec Record) Record {
	out := rec
	if rec.Indexed != nil {
		out.Indexed = make(map[string]string, len(rec.Indexed))
		for k, v := range rec.Indexed {
			out.Indexed[k] = v
		}
	}
	if rec.Data != nil {
		out.Data = append([]byte(nil), rec.Data...)
	}
	return out
}

func (e *MemoryEngine) Put(collection string, rec Record) error {
	if _, err := lookupCollection(collection); err != nil {
		return err
	}
	for name := range rec.Indexed {
		if err := lookupIndex(collection, name); err != nil {
			return err
		}
	}
	if err := validateRecord(rec); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	records, ok := e.collections[collection]
	if !ok {
		records = make(map[string]Record)
		e.collections[collection] = records
	}
	records[rec.ID] = copyRecord(rec)
	return nil
}

func (e *MemoryEngine) Get(collection, id string) (Record, bool, error) {
	if _, err := lookupCollection(collection); err != nil {
		return Record{}, false, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	rec, ok := e.collections[collection][id]
	if !ok {
		return Record{}, false, nil
	}
	return copyRecord(rec), true, nil
}

func (e *MemoryEngine) GetAll(collection string) ([]Record, error) {
	if _, err := lookupCollection(collection); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	var records []Record
	for _, rec := range e.collections[collection] {
		records = append(records, copyRecord(rec))
	}
	// Newest first, id desc on equal timestamps: the order a reverse scan
	// over the padded createdAt index produces on the primary backend.
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}

func (e *MemoryEngine) GetAllByIndex(collection, index, value string) ([]Record, error) {
	if err := lookupIndex(collection, index); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	var records []Record
	for _, rec := range e.collections[collection] {
		indexed := rec.Indexed[index]
		if index == IndexCreatedAt {
			indexed = PadTime(rec.CreatedAt)
		}
		if indexed == value {
			records = append(records, copyRecord(rec))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (e *MemoryEngine) Delete(collection, id string) error {
	if _, err := lookupCollection(collection); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.collections[collection], id)
	return nil
}

func (e *MemoryEngine) Close() error {
	return nil
}
