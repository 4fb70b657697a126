package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"procdesk/domain"
	"procdesk/errors"
	"procdesk/repositories"
)

type IProcessService interface {
	Create(title, industry, department string, payload *domain.Payload) (domain.ProcessDocument, error)
	Save(doc domain.ProcessDocument) (domain.ProcessDocument, error)
	Get(id string) (domain.ProcessDocument, error)
	List() ([]domain.ProcessDocument, error)
	Touch(id string) error
	Delete(id string) error
}

// Indexer receives documents for full-text indexing. Nil-checks are the
// caller's concern; the service accepts a nil indexer and skips indexing.
type Indexer interface {
	Index(doc domain.ProcessDocument) error
	Remove(id string) error
}

// ProcessService owns document CRUD. It never writes Status or
// LastReviewedAt: those belong exclusively to the workflow.
type ProcessService struct {
	processes repositories.IProcessRepository
	audit     IAuditService
	indexer   Indexer
	log       *slog.Logger
}

func NewProcessService(
	processes repositories.IProcessRepository,
	audit IAuditService,
	indexer Indexer,
	log *slog.Logger,
) *ProcessService {
	return &ProcessService{processes: processes, audit: audit, indexer: indexer, log: log}
}

func (s *ProcessService) Create(title, industry, department string, payload *domain.Payload) (domain.ProcessDocument, error) {
	now := time.Now().UTC()
	doc := domain.ProcessDocument{
		ID:         uuid.NewString(),
		Title:      title,
		Industry:   industry,
		Department: department,
		Status:     domain.StatusDraft,
		Payload:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.processes.Save(doc); err != nil {
		return domain.ProcessDocument{}, err
	}
	s.index(doc)
	if _, err := s.audit.Append(doc.ID, domain.AuditCreated, "Process created", ""); err != nil {
		s.log.Warn("audit append failed after create", "process", doc.ID, "error", err)
	}
	return doc, nil
}

// Save upserts an edited document. Lifecycle fields are carried over from
// the stored revision so that edits can never move a document through the
// review workflow as a side effect.
func (s *ProcessService) Save(doc domain.ProcessDocument) (domain.ProcessDocument, error) {
	stored, ok, err := s.processes.Get(doc.ID)
	if err != nil {
		return domain.ProcessDocument{}, err
	}
	if !ok {
		return domain.ProcessDocument{}, fmt.Errorf("%w: process %s", errors.ErrNotFound, doc.ID)
	}
	doc.Status = stored.Status
	doc.LastReviewedAt = stored.LastReviewedAt
	doc.LastViewedAt = stored.LastViewedAt
	doc.CreatedAt = stored.CreatedAt
	doc.UpdatedAt = time.Now().UTC()

	if err := s.processes.Save(doc); err != nil {
		return domain.ProcessDocument{}, err
	}
	s.index(doc)
	if _, err := s.audit.Append(doc.ID, domain.AuditEdited, "Process edited", ""); err != nil {
		s.log.Warn("audit append failed after edit", "process", doc.ID, "error", err)
	}
	return doc, nil
}

func (s *ProcessService) Get(id string) (domain.ProcessDocument, error) {
	doc, ok, err := s.processes.Get(id)
	if err != nil {
		return domain.ProcessDocument{}, err
	}
	if !ok {
		return domain.ProcessDocument{}, fmt.Errorf("%w: process %s", errors.ErrNotFound, id)
	}
	return doc, nil
}

func (s *ProcessService) List() ([]domain.ProcessDocument, error) {
	return s.processes.GetAll()
}

// Touch stamps lastViewedAt without changing anything else.
func (s *ProcessService) Touch(id string) error {
	doc, ok, err := s.processes.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: process %s", errors.ErrNotFound, id)
	}
	doc.LastViewedAt = lo.ToPtr(time.Now().UTC())
	return s.processes.Save(doc)
}

func (s *ProcessService) Delete(id string) error {
	if err := s.processes.Delete(id); err != nil {
		return err
	}
	if s.indexer != nil {
		if err := s.indexer.Remove(id); err != nil {
			s.log.Warn("search index removal failed", "process", id, "error", err)
		}
	}
	return nil
}

func (s *ProcessService) index(doc domain.ProcessDocument) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.Index(doc); err != nil {
		s.log.Warn("search indexing failed", "process", doc.ID, "error", err)
	}
}
