package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"procdesk/errors"
)

// Collection names. The set is closed; every keyed record lives in exactly
// one of these.
const (
	CollectionProcesses = "processes"
	CollectionVersions  = "versions"
	CollectionAudit     = "audit"
	CollectionChats     = "chats"
	CollectionFeedback  = "feedback"
	CollectionMeta      = "meta"
	CollectionUsers     = "users"
)

// Index names usable with GetAllByIndex. IndexCreatedAt exists on every
// collection and is maintained by the engine itself from Record.CreatedAt.
const (
	IndexCreatedAt  = "createdAt"
	IndexUpdatedAt  = "updatedAt"
	IndexIndustry   = "industry"
	IndexDepartment = "department"
	IndexProcessID  = "processId"
	IndexEmail      = "email"
)

// Collection declares a keyed collection and its secondary indices.
type Collection struct {
	Name    string
	Indices []string
}

// migration is one schema upgrade step. Upgrades are strictly additive:
// new collections and new indices only, existing data is never dropped or
// renamed.
type migration struct {
	version     int
	collections []Collection
}

var migrations = []migration{
	{
		version: 1,
		collections: []Collection{
			{Name: CollectionProcesses, Indices: []string{IndexIndustry, IndexDepartment, IndexUpdatedAt}},
			{Name: CollectionVersions, Indices: []string{IndexProcessID}},
			{Name: CollectionAudit, Indices: []string{IndexProcessID}},
			{Name: CollectionChats, Indices: []string{IndexProcessID}},
			{Name: CollectionFeedback, Indices: []string{IndexProcessID}},
			{Name: CollectionMeta},
		},
	},
	{
		version: 2,
		collections: []Collection{
			{Name: CollectionUsers, Indices: []string{IndexEmail}},
		},
	},
}

// schemaVersionKey is the meta record holding the last applied migration
// version.
const schemaVersionKey = "schema_version"

// schema is the fully applied view of all migrations.
var schema = func() map[string]Collection {
	out := make(map[string]Collection)
	for _, m := range migrations {
		for _, c := range m.collections {
			out[c.Name] = c
		}
	}
	return out
}()

func lookupCollection(name string) (Collection, error) {
	c, ok := schema[name]
	if !ok {
		return Collection{}, fmt.Errorf("%w: %q", errors.ErrUnknownCollection, name)
	}
	return c, nil
}

func lookupIndex(collection, index string) error {
	c, err := lookupCollection(collection)
	if err != nil {
		return err
	}
	if index == IndexCreatedAt {
		return nil
	}
	for _, name := range c.Indices {
		if name == index {
			return nil
		}
	}
	return fmt.Errorf("%w: %q on %q", errors.ErrUnknownIndex, index, collection)
}

// Migrate applies every migration newer than the version recorded in meta.
// Adding an index to an existing collection is handled by re-putting the
// collection's records so the engine derives the new index keys.
func Migrate(engine Engine) error {
	current := 0
	rec, ok, err := engine.Get(CollectionMeta, schemaVersionKey)
	if err != nil {
		return err
	}
	if ok {
		if err := json.Unmarshal(rec.Data, &current); err != nil {
			return fmt.Errorf("corrupt schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		for _, c := range m.collections {
			if _, existed := schemaAt(current)[c.Name]; !existed {
				continue
			}
			records, err := engine.GetAll(c.Name)
			if err != nil {
				return err
			}
			for _, r := range records {
				if err := engine.Put(c.Name, r); err != nil {
					return err
				}
			}
		}
		current = m.version
	}

	data, err := json.Marshal(current)
	if err != nil {
		return err
	}
	return engine.Put(CollectionMeta, Record{
		ID:        schemaVersionKey,
		CreatedAt: time.Now().UTC(),
		Data:      data,
	})
}

// schemaAt rebuilds the schema as it stood after the given version, so a
// migration can tell a brand-new collection from one gaining indices.
func schemaAt(version int) map[string]Collection {
	out := make(map[string]Collection)
	for _, m := range migrations {
		if m.version > version {
			break
		}
		for _, c := range m.collections {
			out[c.Name] = c
		}
	}
	return out
}
