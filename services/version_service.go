package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"procdesk/domain"
	"procdesk/errors"
	"procdesk/repositories"
)

type IVersionService interface {
	Snapshot(processID string, payload *domain.Payload, label string) (domain.VersionSnapshot, error)
	ListVersions(processID string) ([]domain.VersionSnapshot, error)
	Restore(versionID, liveID string) (domain.ProcessDocument, error)
}

// VersionService creates and restores immutable payload snapshots.
type VersionService struct {
	versions  repositories.IVersionRepository
	processes repositories.IProcessRepository
	log       *slog.Logger
}

func NewVersionService(
	versions repositories.IVersionRepository,
	processes repositories.IProcessRepository,
	log *slog.Logger,
) *VersionService {
	return &VersionService{versions: versions, processes: processes, log: log}
}

// Snapshot persists a deep copy of the payload as the process's next
// version. Numbers start at 1 and grow by exactly one per snapshot, never
// reused, never skipped.
func (s *VersionService) Snapshot(processID string, payload *domain.Payload, label string) (domain.VersionSnapshot, error) {
	existing, err := s.versions.GetByProcess(processID)
	if err != nil {
		return domain.VersionSnapshot{}, err
	}
	snapshot := domain.VersionSnapshot{
		ID:        uuid.NewString(),
		ProcessID: processID,
		Version:   len(existing) + 1,
		Snapshot:  payload.Clone(),
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.versions.Save(snapshot); err != nil {
		return domain.VersionSnapshot{}, err
	}
	return snapshot, nil
}

// ListVersions returns the process's history, newest first.
func (s *VersionService) ListVersions(processID string) ([]domain.VersionSnapshot, error) {
	return s.versions.GetByProcess(processID)
}

// Restore overwrites the live document's payload with a snapshot's. The
// current live payload is snapshotted first, so restoring never silently
// loses work. Two uncoordinated restores race last-writer-wins.
func (s *VersionService) Restore(versionID, liveID string) (domain.ProcessDocument, error) {
	snapshot, ok, err := s.versions.Get(versionID)
	if err != nil {
		return domain.ProcessDocument{}, err
	}
	if !ok {
		return domain.ProcessDocument{}, fmt.Errorf("%w: version %s", errors.ErrNotFound, versionID)
	}

	live, ok, err := s.processes.Get(liveID)
	if err != nil {
		return domain.ProcessDocument{}, err
	}
	if !ok {
		return domain.ProcessDocument{}, fmt.Errorf("%w: process %s", errors.ErrNotFound, liveID)
	}

	if _, err := s.Snapshot(liveID, live.Payload, "Before restore"); err != nil {
		return domain.ProcessDocument{}, fmt.Errorf("pre-restore snapshot: %w", err)
	}

	live.Payload = snapshot.Snapshot.Clone()
	live.UpdatedAt = time.Now().UTC()
	if err := s.processes.Save(live); err != nil {
		return domain.ProcessDocument{}, err
	}
	return live, nil
}
