package domain

import "time"

// ExportFormatVersion is the envelope version written by bulk export and
// required by bulk import.
const ExportFormatVersion = 1

// ExportEnvelope is the bulk transfer format: a versioned wrapper around
// the full set of process documents.
type ExportEnvelope struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Processes  []ProcessDocument `json:"processes"`
}
