package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// BadgerEngine is the primary storage backend.
//
// Key layout follows the padded-key scheme:
//
//	<collection>:<id>                          the record envelope (JSON)
//	idx:<collection>:<index>:<value>:<id>      one key per index entry
//
// The built-in createdAt index stores the 19-digit zero-padded UnixNano as
// its value, so a reverse prefix scan over it yields newest-first order.
type BadgerEngine struct {
	db  *badger.DB
	log *slog.Logger
}

// OpenBadger opens (or creates) the database directory.
func OpenBadger(path string, log *slog.Logger) (*BadgerEngine, error) {
	db, err := badger.Open(badger.DefaultOptions(path).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}
	return &BadgerEngine{db: db, log: log}, nil
}

func recordKey(collection, id string) []byte {
	return []byte(collection + ":" + id)
}

func indexKey(collection, index, value, id string) []byte {
	return []byte("idx:" + collection + ":" + index + ":" + value + ":" + id)
}

func indexPrefix(collection, index, value string) []byte {
	return []byte("idx:" + collection + ":" + index + ":" + value + ":")
}

// indexEntries resolves the full index set for a record: the built-in
// createdAt index plus whatever the repository asked for.
func indexEntries(rec Record) map[string]string {
	entries := map[string]string{IndexCreatedAt: PadTime(rec.CreatedAt)}
	for name, value := range rec.Indexed {
		entries[name] = value
	}
	return entries
}

func (e *BadgerEngine) Put(collection string, rec Record) error {
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
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s/%s: %w", collection, rec.ID, err)
	}
	return e.db.Update(func(txn *badger.Txn) error {
		// Drop index keys of the previous revision so an updated value
		// never leaves a stale entry behind.
		if old, ok, err := getRecord(txn, collection, rec.ID); err != nil {
			return err
		} else if ok {
			for name, value := range indexEntries(old) {
				if err := txn.Delete(indexKey(collection, name, value, old.ID)); err != nil {
					return err
				}
			}
		}
		if err := txn.Set(recordKey(collection, rec.ID), data); err != nil {
			return err
		}
		for name, value := range indexEntries(rec) {
			if err := txn.Set(indexKey(collection, name, value, rec.ID), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

func getRecord(txn *badger.Txn, collection, id string) (Record, bool, error) {
	item, err := txn.Get(recordKey(collection, id))
	if err == badger.ErrKeyNotFound {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	var rec Record
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	if err != nil {
		return Record{}, false, fmt.Errorf("unmarshal record %s/%s: %w", collection, id, err)
	}
	return rec, true, nil
}

func (e *BadgerEngine) Get(collection, id string) (Record, bool, error) {
	if _, err := lookupCollection(collection); err != nil {
		return Record{}, false, err
	}
	var (
		rec Record
		ok  bool
	)
	err := e.db.View(func(txn *badger.Txn) error {
		var err error
		rec, ok, err = getRecord(txn, collection, id)
		return err
	})
	return rec, ok, err
}

// GetAll walks the createdAt index backwards, mirroring the reverse padded
// timestamp scan used for message history.
func (e *BadgerEngine) GetAll(collection string) ([]Record, error) {
	if _, err := lookupCollection(collection); err != nil {
		return nil, err
	}
	prefix := []byte("idx:" + collection + ":" + IndexCreatedAt + ":")
	var records []Record
	err := e.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration needs a seek past the last possible key.
		seekKey := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			// idx:<c>:createdAt:<19-digit nano>:<id>
			key := it.Item().Key()
			id := string(key[len(prefix)+20:])
			rec, ok, err := getRecord(txn, collection, id)
			if err != nil {
				return err
			}
			if ok {
				records = append(records, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (e *BadgerEngine) GetAllByIndex(collection, index, value string) ([]Record, error) {
	if err := lookupIndex(collection, index); err != nil {
		return nil, err
	}
	prefix := indexPrefix(collection, index, value)
	var records []Record
	err := e.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := string(it.Item().Key()[len(prefix):])
			rec, ok, err := getRecord(txn, collection, id)
			if err != nil {
				return err
			}
			if ok {
				records = append(records, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (e *BadgerEngine) Delete(collection, id string) error {
	if _, err := lookupCollection(collection); err != nil {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		old, ok, err := getRecord(txn, collection, id)
		if err != nil {
			return err
		}
		if !ok {
			// Deleting an absent record is a no-op.
			return nil
		}
		for name, value := range indexEntries(old) {
			if err := txn.Delete(indexKey(collection, name, value, old.ID)); err != nil {
				return err
			}
		}
		return txn.Delete(recordKey(collection, id))
	})
}

func (e *BadgerEngine) Close() error {
	return e.db.Close()
}
