package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"procdesk/domain"
	"procdesk/errors"
	"procdesk/repositories"
)

type IWorkflowService interface {
	SubmitForReview(processID, user string) (domain.ProcessDocument, error)
	Approve(processID, user string) (domain.ProcessDocument, error)
	RequestChanges(processID, comment, user string) (domain.ProcessDocument, error)
	RevertToDraft(processID, user string) (domain.ProcessDocument, error)
	Apply(processID string, action domain.WorkflowAction, comment, user string) (domain.ProcessDocument, error)
}

// WorkflowService drives a document through the review lifecycle. It is
// the only code path that writes Status. Each successful transition puts
// the updated document and then appends exactly one audit entry; the two
// writes are not transactional, so an audit failure after a persisted
// status change is surfaced to the caller but not rolled back.
type WorkflowService struct {
	processes repositories.IProcessRepository
	audit     IAuditService
	log       *slog.Logger
}

func NewWorkflowService(
	processes repositories.IProcessRepository,
	audit IAuditService,
	log *slog.Logger,
) *WorkflowService {
	return &WorkflowService{processes: processes, audit: audit, log: log}
}

func (s *WorkflowService) SubmitForReview(processID, user string) (domain.ProcessDocument, error) {
	return s.Apply(processID, domain.ActionSubmitForReview, "", user)
}

func (s *WorkflowService) Approve(processID, user string) (domain.ProcessDocument, error) {
	return s.Apply(processID, domain.ActionApprove, "", user)
}

func (s *WorkflowService) RequestChanges(processID, comment, user string) (domain.ProcessDocument, error) {
	return s.Apply(processID, domain.ActionRequestChanges, comment, user)
}

func (s *WorkflowService) RevertToDraft(processID, user string) (domain.ProcessDocument, error) {
	return s.Apply(processID, domain.ActionRevertToDraft, "", user)
}

// Apply executes one transition from the closed table. A (state, action)
// pair outside the table is rejected with ErrInvalidTransition and leaves
// the document untouched.
func (s *WorkflowService) Apply(processID string, action domain.WorkflowAction, comment, user string) (domain.ProcessDocument, error) {
	comment = strings.TrimSpace(comment)
	if action == domain.ActionRequestChanges && comment == "" {
		return domain.ProcessDocument{}, errors.ErrEmptyComment
	}

	doc, ok, err := s.processes.Get(processID)
	if err != nil {
		return domain.ProcessDocument{}, err
	}
	if !ok {
		return domain.ProcessDocument{}, fmt.Errorf("%w: process %s", errors.ErrNotFound, processID)
	}

	transition, ok := doc.EffectiveStatus().NextTransition(action)
	if !ok {
		return domain.ProcessDocument{}, fmt.Errorf("%w: %s from %s",
			errors.ErrInvalidTransition, action, doc.EffectiveStatus())
	}

	now := time.Now().UTC()
	updated := doc
	updated.Status = transition.To
	updated.UpdatedAt = now
	if domain.ReviewTouchpoint(transition.To) {
		updated.LastReviewedAt = &now
	}

	if err := s.processes.Save(updated); err != nil {
		// Nothing was committed; no audit entry is written.
		return domain.ProcessDocument{}, fmt.Errorf("persist transition: %w", err)
	}

	description := transition.Description
	if comment != "" {
		description = fmt.Sprintf("%s: %s", description, comment)
	}
	if _, err := s.audit.Append(processID, transition.Audit, description, user); err != nil {
		// The status change is already persisted; report the gap.
		s.log.Error("audit append failed after status change",
			"process", processID, "action", action, "error", err)
		return updated, fmt.Errorf("audit append after transition: %w", err)
	}
	return updated, nil
}
