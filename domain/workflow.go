package domain

// WorkflowAction is a caller-invocable command against a document's
// review lifecycle.
type WorkflowAction string

const (
	ActionSubmitForReview WorkflowAction = "submit_for_review"
	ActionApprove         WorkflowAction = "approve"
	ActionRequestChanges  WorkflowAction = "request_changes"
	ActionRevertToDraft   WorkflowAction = "revert_to_draft"
)

// Transition describes one row of the workflow table: where the document
// lands, which audit action tags the move, and the canonical description
// written to the audit log.
type Transition struct {
	To          Status
	Audit       AuditAction
	Description string
	// NeedsComment marks request_changes, the only guarded transition.
	NeedsComment bool
}

// transitions is the closed table. Every (state, action) pair outside it is
// an invalid transition; nothing else in the codebase writes Status.
var transitions = map[Status]map[WorkflowAction]Transition{
	StatusDraft: {
		ActionSubmitForReview: {
			To:          StatusInReview,
			Audit:       AuditSubmittedForReview,
			Description: "Submitted for review",
		},
	},
	StatusInReview: {
		ActionApprove: {
			To:          StatusApproved,
			Audit:       AuditApproved,
			Description: "Approved",
		},
		ActionRequestChanges: {
			To:           StatusNeedsUpdate,
			Audit:        AuditRequestedChanges,
			Description:  "Changes requested",
			NeedsComment: true,
		},
	},
	StatusNeedsUpdate: {
		ActionSubmitForReview: {
			To:          StatusInReview,
			Audit:       AuditSubmittedForReview,
			Description: "Resubmitted for review",
		},
	},
	StatusApproved: {
		ActionRevertToDraft: {
			To:          StatusDraft,
			Audit:       AuditStatusChanged,
			Description: "Reverted to draft",
		},
	},
}

// NextTransition is total over (state, action): it answers for every pair,
// reporting false for the ones outside the table.
func (s Status) NextTransition(action WorkflowAction) (Transition, bool) {
	t, ok := transitions[ToStatus(string(s))][action]
	return t, ok
}

// ReviewTouchpoint reports whether landing on the target state refreshes
// the document's lastReviewedAt.
func ReviewTouchpoint(to Status) bool {
	return to == StatusApproved || to == StatusInReview
}
