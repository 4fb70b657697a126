package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"procdesk/domain"
	"procdesk/repositories"
	"procdesk/storage"
)

// fixture wires every service against a shared in-memory engine, the
// substitutable double the store was designed around.
type fixture struct {
	processes repositories.ProcessRepository
	versions  repositories.VersionRepository
	audit     *AuditService
	workflow  *WorkflowService
	version   *VersionService
	transfer  *TransferService
	process   *ProcessService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	engine := storage.NewMemoryEngine()
	log := slog.Default()

	processes := repositories.NewProcessRepository(engine, log)
	versions := repositories.NewVersionRepository(engine, log)
	audit := NewAuditService(repositories.NewAuditRepository(engine, log), log)

	return &fixture{
		processes: processes,
		versions:  versions,
		audit:     audit,
		workflow:  NewWorkflowService(processes, audit, log),
		version:   NewVersionService(versions, processes, log),
		transfer:  NewTransferService(processes, log),
		process:   NewProcessService(processes, audit, nil, log),
	}
}

func (f *fixture) seedProcess(t *testing.T, title string, status domain.Status) domain.ProcessDocument {
	t.Helper()
	now := time.Now().UTC()
	doc := domain.ProcessDocument{
		ID:     uuid.NewString(),
		Title:  title,
		Status: status,
		Payload: &domain.Payload{
			Description: "as-is process",
			Steps:       []domain.Step{{Order: 1, Title: "Receive request"}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.processes.Save(doc); err != nil {
		t.Fatalf("seed process: %v", err)
	}
	return doc
}
