package entities

import (
	"fmt"
	"time"
)

// UnknownIdentifier is reported for references that carry no identifier.
const UnknownIdentifier = "unknown"

// MissingMedia records a media reference that could not be matched to a file.
type MissingMedia struct {
	Kind       MediaKind `json:"kind"`
	Identifier string    `json:"identifier"`
	EntryUUID  string    `json:"entry_uuid,omitempty"`
}

func (m MissingMedia) String() string {
	return fmt.Sprintf("%s: %s", m.Kind, m.Identifier)
}

// NewMissingMedia builds a report item, substituting UnknownIdentifier for
// an empty identifier.
func NewMissingMedia(kind MediaKind, ref MediaReference, entryUUID string) MissingMedia {
	id := ref.Identifier
	if id == "" {
		id = UnknownIdentifier
	}
	return MissingMedia{Kind: kind, Identifier: id, EntryUUID: entryUUID}
}

// ImportStats contains the outcome of an import run.
type ImportStats struct {
	RunID        string         `json:"run_id"`
	TotalEntries int            `json:"total_entries"`
	Successful   int            `json:"successful"`
	Failed       int            `json:"failed"`
	Skipped      int            `json:"skipped"`
	Cancelled    bool           `json:"cancelled"`
	MissingMedia []MissingMedia `json:"missing_media"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     time.Duration  `json:"duration"`
}
