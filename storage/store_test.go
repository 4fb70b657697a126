package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Open_Uses_Primary_Backend(t *testing.T) {
	req := require.New(t)
	store, err := Open(t.TempDir(), slog.Default())
	req.NoError(err)
	defer store.Close()

	req.False(store.Degraded())

	rec := testRecord(uuid.NewString(), time.Now().UTC(), nil)
	req.NoError(store.Put(CollectionProcesses, rec))
	got, ok, err := store.Get(CollectionProcesses, rec.ID)
	req.NoError(err)
	req.True(ok)
	req.Equal(rec.ID, got.ID)
}

func Test_Open_Falls_Back_To_Memory_When_Primary_Cannot_Open(t *testing.T) {
	req := require.New(t)

	// A path below a regular file can neither be opened nor recreated, so
	// both open attempts fail and the store lands on the fallback.
	blocker := filepath.Join(t.TempDir(), "blocker")
	req.NoError(os.WriteFile(blocker, []byte("not a directory"), 0o600))
	store, err := Open(filepath.Join(blocker, "data"), slog.Default())
	req.NoError(err)
	defer store.Close()

	req.True(store.Degraded())

	rec := testRecord(uuid.NewString(), time.Now().UTC(), nil)
	req.NoError(store.Put(CollectionProcesses, rec))
	records, err := store.GetAll(CollectionProcesses)
	req.NoError(err)
	req.Len(records, 1)
}

func Test_Engine_Failure_Downgrades_Permanently_And_Retries(t *testing.T) {
	req := require.New(t)
	engine := openTestEngine(t)
	store := &Store{log: slog.Default(), engine: engine}

	// Closing badger underneath makes every primary call fail.
	req.NoError(engine.Close())

	rec := testRecord(uuid.NewString(), time.Now().UTC(), nil)
	req.NoError(store.Put(CollectionProcesses, rec))
	req.True(store.Degraded())

	got, ok, err := store.Get(CollectionProcesses, rec.ID)
	req.NoError(err)
	req.True(ok)
	req.Equal(rec.ID, got.ID)
}

func Test_Caller_Errors_Do_Not_Downgrade(t *testing.T) {
	req := require.New(t)
	store, err := Open(t.TempDir(), slog.Default())
	req.NoError(err)
	defer store.Close()

	err = store.Put("nope", testRecord(uuid.NewString(), time.Now().UTC(), nil))
	req.Error(err)
	req.False(store.Degraded())

	err = store.Put(CollectionProcesses, testRecord(uuid.NewString(), time.Time{}, nil))
	req.Error(err)
	req.False(store.Degraded())
}

func Test_Migrate_Records_Schema_Version_And_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	engine := NewMemoryEngine()

	req.NoError(Migrate(engine))
	rec, ok, err := engine.Get(CollectionMeta, schemaVersionKey)
	req.NoError(err)
	req.True(ok)

	var version int
	req.NoError(json.Unmarshal(rec.Data, &version))
	req.Equal(migrations[len(migrations)-1].version, version)

	req.NoError(Migrate(engine))
	again, _, err := engine.Get(CollectionMeta, schemaVersionKey)
	req.NoError(err)
	req.JSONEq(string(rec.Data), string(again.Data))
}
