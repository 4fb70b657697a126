package domain

import "time"

// AuditAction is the closed set of actions an audit entry can record.
type AuditAction string

const (
	AuditCreated            AuditAction = "created"
	AuditEdited             AuditAction = "edited"
	AuditReviewed           AuditAction = "reviewed"
	AuditApproved           AuditAction = "approved"
	AuditRejected           AuditAction = "rejected"
	AuditSubmittedForReview AuditAction = "submitted_for_review"
	AuditRequestedChanges   AuditAction = "requested_changes"
	AuditStatusChanged      AuditAction = "status_changed"
)

// AuditActions lists every valid action, for producers that need to check
// membership before appending.
var AuditActions = []AuditAction{
	AuditCreated,
	AuditEdited,
	AuditReviewed,
	AuditApproved,
	AuditRejected,
	AuditSubmittedForReview,
	AuditRequestedChanges,
	AuditStatusChanged,
}

// Valid reports whether the action belongs to the closed enum.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditCreated, AuditEdited, AuditReviewed, AuditApproved,
		AuditRejected, AuditSubmittedForReview, AuditRequestedChanges,
		AuditStatusChanged:
		return true
	default:
		return false
	}
}

// SystemUser is recorded on audit entries appended without an explicit user.
const SystemUser = "system"

// AuditEntry is one append-only record of an action taken against an
// entity. Entries are never mutated or deleted once written.
type AuditEntry struct {
	ID          string      `json:"id"`
	EntityID    string      `json:"entityId"`
	Action      AuditAction `json:"action"`
	Description string      `json:"description,omitempty"`
	User        string      `json:"user"`
	Timestamp   time.Time   `json:"timestamp"`
}
