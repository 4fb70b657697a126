package domain

import "time"

// VersionSnapshot is an immutable copy of a document's payload at a point
// in time. Version numbers are 1-based and strictly increasing per process,
// with no gaps. There is no update operation, only create and read.
type VersionSnapshot struct {
	ID        string    `json:"id"`
	ProcessID string    `json:"processId"`
	Version   int       `json:"version"`
	Snapshot  *Payload  `json:"snapshot"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
