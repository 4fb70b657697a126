package domain

import "time"

// ChatMessage is one exchange of the AI conversation attached to a process.
// Stored with the same keyed/indexed pattern as snapshots, no workflow
// semantics of its own.
type ChatMessage struct {
	ID        string    `json:"id"`
	ProcessID string    `json:"processId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedbackComment is a reviewer remark left on a process document.
type FeedbackComment struct {
	ID        string    `json:"id"`
	ProcessID string    `json:"processId"`
	Author    string    `json:"author"`
	Comment   string    `json:"comment"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"createdAt"`
}
