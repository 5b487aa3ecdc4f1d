// Package history records one snapshot per successful run in an append-only
// JSONL file and queries it through an ephemeral SQLite database.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/geotech-lab/scholarsync/internal/report"
)

// Snapshot is the outcome of one successful run.
type Snapshot struct {
	ID        string         `json:"id"`
	FetchedAt string         `json:"fetchedAt"`
	UserID    string         `json:"userId"`
	Provider  string         `json:"provider"`
	Citations int            `json:"citations"`
	HIndex    int            `json:"hIndex"`
	Counts    *report.Counts `json:"counts,omitempty"` // nil when no publications were assembled
}

// NewSnapshot creates a snapshot with a fresh ID.
func NewSnapshot(now time.Time, userID, provider string, summary report.SummaryDocument, counts *report.Counts) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		FetchedAt: report.FormatTimestamp(now),
		UserID:    userID,
		Provider:  provider,
		Citations: summary.Citations,
		HIndex:    summary.HIndex,
		Counts:    counts,
	}
}
