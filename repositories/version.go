//go:generate go run go.uber.org/mock/mockgen -source=version.go -destination=../mocks/mock_version_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"procdesk/domain"
	"procdesk/storage"
)

type IVersionRepository interface {
	Save(snapshot domain.VersionSnapshot) error
	Get(id string) (domain.VersionSnapshot, bool, error)
	GetByProcess(processID string) ([]domain.VersionSnapshot, error)
}

// VersionRepository stores immutable snapshots. There is intentionally no
// update or delete: history only grows.
type VersionRepository struct {
	store storage.Engine
	log   *slog.Logger
}

func NewVersionRepository(store storage.Engine, log *slog.Logger) VersionRepository {
	return VersionRepository{store: store, log: log}
}

func (r VersionRepository) Save(snapshot domain.VersionSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal version %s: %w", snapshot.ID, err)
	}
	return r.store.Put(storage.CollectionVersions, storage.Record{
		ID:        snapshot.ID,
		CreatedAt: snapshot.CreatedAt,
		Indexed: map[string]string{
			storage.IndexProcessID: snapshot.ProcessID,
		},
		Data: data,
	})
}

func (r VersionRepository) Get(id string) (domain.VersionSnapshot, bool, error) {
	rec, ok, err := r.store.Get(storage.CollectionVersions, id)
	if err != nil || !ok {
		return domain.VersionSnapshot{}, ok, err
	}
	var snapshot domain.VersionSnapshot
	if err := json.Unmarshal(rec.Data, &snapshot); err != nil {
		return domain.VersionSnapshot{}, false, fmt.Errorf("unmarshal version %s: %w", rec.ID, err)
	}
	return snapshot, true, nil
}

// GetByProcess returns the snapshots of one process, highest version first.
func (r VersionRepository) GetByProcess(processID string) ([]domain.VersionSnapshot, error) {
	records, err := r.store.GetAllByIndex(storage.CollectionVersions, storage.IndexProcessID, processID)
	if err != nil {
		return nil, err
	}
	snapshots := make([]domain.VersionSnapshot, 0, len(records))
	for _, rec := range records {
		var snapshot domain.VersionSnapshot
		if err := json.Unmarshal(rec.Data, &snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal version %s: %w", rec.ID, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Version > snapshots[j].Version
	})
	return snapshots, nil
}
