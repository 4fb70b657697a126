//go:generate go run go.uber.org/mock/mockgen -source=audit.go -destination=../mocks/mock_audit_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"procdesk/domain"
	"procdesk/storage"
)

type IAuditRepository interface {
	Append(entry domain.AuditEntry) error
	GetByEntity(entityID string) ([]domain.AuditEntry, error)
}

// AuditRepository is append-only: it exposes no update and no delete, so
// the ledger can only grow.
type AuditRepository struct {
	store storage.Engine
	log   *slog.Logger
}

func NewAuditRepository(store storage.Engine, log *slog.Logger) AuditRepository {
	return AuditRepository{store: store, log: log}
}

func (r AuditRepository) Append(entry domain.AuditEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry %s: %w", entry.ID, err)
	}
	return r.store.Put(storage.CollectionAudit, storage.Record{
		ID:        entry.ID,
		CreatedAt: entry.Timestamp,
		Indexed: map[string]string{
			storage.IndexProcessID: entry.EntityID,
		},
		Data: data,
	})
}

// GetByEntity returns every entry ever appended for the entity, oldest
// first (timestamp asc, id asc on ties). The underlying store makes no
// ordering promise of its own, so the ledger order is fixed here.
func (r AuditRepository) GetByEntity(entityID string) ([]domain.AuditEntry, error) {
	records, err := r.store.GetAllByIndex(storage.CollectionAudit, storage.IndexProcessID, entityID)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.AuditEntry, 0, len(records))
	for _, rec := range records {
		var entry domain.AuditEntry
		if err := json.Unmarshal(rec.Data, &entry); err != nil {
			return nil, fmt.Errorf("unmarshal audit entry %s: %w", rec.ID, err)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}
