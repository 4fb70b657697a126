package domain

import "time"

// Status is the review lifecycle state of a process document.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusInReview    Status = "in_review"
	StatusApproved    Status = "approved"
	StatusNeedsUpdate Status = "needs_update"
)

// ToStatus maps a raw string to a Status. Anything unknown, including the
// empty string of a document written before the workflow existed, is draft.
func ToStatus(status string) Status {
	switch Status(status) {
	case StatusInReview:
		return StatusInReview
	case StatusApproved:
		return StatusApproved
	case StatusNeedsUpdate:
		return StatusNeedsUpdate
	default:
		return StatusDraft
	}
}

// ProcessDocument is the live description of a business process together
// with its AI-generated analysis. The Payload is owned by the caller; the
// store never interprets it. Status is only ever written by the workflow.
type ProcessDocument struct {
	ID             string     `json:"id" validate:"required"`
	Title          string     `json:"title" validate:"required"`
	Industry       string     `json:"industry,omitempty"`
	Department     string     `json:"department,omitempty"`
	Status         Status     `json:"status,omitempty"`
	Payload        *Payload   `json:"payload" validate:"required"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
	LastViewedAt   *time.Time `json:"lastViewedAt,omitempty"`
}

// EffectiveStatus resolves the implicit draft default for documents
// persisted without a status.
func (p ProcessDocument) EffectiveStatus() Status {
	return ToStatus(string(p.Status))
}
