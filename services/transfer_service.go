package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"procdesk/domain"
	"procdesk/errors"
	"procdesk/repositories"
)

var validate = validator.New()

type ITransferService interface {
	Export() (domain.ExportEnvelope, error)
	ExportJSON() ([]byte, error)
	Import(data []byte) (int, error)
}

// TransferService handles bulk export and import of the full process set.
// Structural problems abort the whole import; per-record problems skip
// just the record.
type TransferService struct {
	processes repositories.IProcessRepository
	log       *slog.Logger
}

func NewTransferService(processes repositories.IProcessRepository, log *slog.Logger) *TransferService {
	return &TransferService{processes: processes, log: log}
}

func (s *TransferService) Export() (domain.ExportEnvelope, error) {
	docs, err := s.processes.GetAll()
	if err != nil {
		return domain.ExportEnvelope{}, err
	}
	return domain.ExportEnvelope{
		Version:    domain.ExportFormatVersion,
		ExportedAt: time.Now().UTC(),
		Processes:  docs,
	}, nil
}

func (s *TransferService) ExportJSON() ([]byte, error) {
	envelope, err := s.Export()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(envelope, "", "  ")
}

// Import upserts every valid record of an export envelope by id and
// returns how many were actually imported. Existing records are only ever
// overwritten, never deleted, so re-importing the same file is idempotent.
func (s *TransferService) Import(data []byte) (int, error) {
	detected := mimetype.Detect(data)
	if !detected.Is("application/json") && !strings.HasPrefix(detected.String(), "text/") {
		return 0, fmt.Errorf("%w: unexpected content type %s", errors.ErrImportFormat, detected)
	}

	var envelope struct {
		Version   *int                      `json:"version"`
		Processes *[]domain.ProcessDocument `json:"processes"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrImportFormat, err)
	}
	if envelope.Version == nil || envelope.Processes == nil {
		return 0, fmt.Errorf("%w: missing version or processes", errors.ErrImportFormat)
	}

	imported := 0
	for _, doc := range *envelope.Processes {
		if err := validate.Struct(doc); err != nil {
			s.log.Debug("skipping invalid import record", "id", doc.ID, "error", err)
			continue
		}
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = time.Now().UTC()
		}
		if doc.UpdatedAt.IsZero() {
			doc.UpdatedAt = doc.CreatedAt
		}
		if err := s.processes.Save(doc); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
