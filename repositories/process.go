//go:generate go run go.uber.org/mock/mockgen -source=process.go -destination=../mocks/mock_process_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"procdesk/domain"
	"procdesk/storage"
)

type IProcessRepository interface {
	Save(doc domain.ProcessDocument) error
	Get(id string) (domain.ProcessDocument, bool, error)
	GetAll() ([]domain.ProcessDocument, error)
	GetByIndustry(industry string) ([]domain.ProcessDocument, error)
	GetByDepartment(department string) ([]domain.ProcessDocument, error)
	Delete(id string) error
}

type ProcessRepository struct {
	store storage.Engine
	log   *slog.Logger
}

func NewProcessRepository(store storage.Engine, log *slog.Logger) ProcessRepository {
	return ProcessRepository{store: store, log: log}
}

// Save upserts the document. Indexed fields are re-derived on every write,
// so a changed industry or department never leaves a stale index entry.
func (r ProcessRepository) Save(doc domain.ProcessDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal process %s: %w", doc.ID, err)
	}
	return r.store.Put(storage.CollectionProcesses, storage.Record{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		Indexed: map[string]string{
			storage.IndexIndustry:   doc.Industry,
			storage.IndexDepartment: doc.Department,
			storage.IndexUpdatedAt:  storage.PadTime(doc.UpdatedAt),
		},
		Data: data,
	})
}

func (r ProcessRepository) Get(id string) (domain.ProcessDocument, bool, error) {
	rec, ok, err := r.store.Get(storage.CollectionProcesses, id)
	if err != nil || !ok {
		return domain.ProcessDocument{}, ok, err
	}
	doc, err := toProcess(rec)
	return doc, err == nil, err
}

// GetAll returns every document, newest first.
func (r ProcessRepository) GetAll() ([]domain.ProcessDocument, error) {
	records, err := r.store.GetAll(storage.CollectionProcesses)
	if err != nil {
		return nil, err
	}
	return toProcesses(records)
}

func (r ProcessRepository) GetByIndustry(industry string) ([]domain.ProcessDocument, error) {
	records, err := r.store.GetAllByIndex(storage.CollectionProcesses, storage.IndexIndustry, industry)
	if err != nil {
		return nil, err
	}
	return toProcesses(records)
}

func (r ProcessRepository) GetByDepartment(department string) ([]domain.ProcessDocument, error) {
	records, err := r.store.GetAllByIndex(storage.CollectionProcesses, storage.IndexDepartment, department)
	if err != nil {
		return nil, err
	}
	return toProcesses(records)
}

func (r ProcessRepository) Delete(id string) error {
	return r.store.Delete(storage.CollectionProcesses, id)
}

func toProcess(rec storage.Record) (domain.ProcessDocument, error) {
	var doc domain.ProcessDocument
	if err := json.Unmarshal(rec.Data, &doc); err != nil {
		return domain.ProcessDocument{}, fmt.Errorf("unmarshal process %s: %w", rec.ID, err)
	}
	return doc, nil
}

func toProcesses(records []storage.Record) ([]domain.ProcessDocument, error) {
	docs := make([]domain.ProcessDocument, 0, len(records))
	for _, rec := range records {
		doc, err := toProcess(rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
