// Package pipeline runs one fetch-normalize-write cycle.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/geotech-lab/scholarsync/internal/config"
	"github.com/geotech-lab/scholarsync/internal/history"
	"github.com/geotech-lab/scholarsync/internal/output"
	"github.com/geotech-lab/scholarsync/internal/provider"
	"github.com/geotech-lab/scholarsync/internal/record"
	"github.com/geotech-lab/scholarsync/internal/report"
)

// Pipeline fetches one profile and writes the output documents.
type Pipeline struct {
	Config   *config.Config
	Provider provider.ProfileProvider

	// Out receives progress lines; nil discards them.
	Out io.Writer

	// Now defaults to time.Now.
	Now func() time.Time
}

// RunResult describes a successful run.
type RunResult struct {
	UserID   string                 `json:"userId"`
	Name     string                 `json:"name"`
	Provider string                 `json:"provider"`
	Summary  report.SummaryDocument `json:"summary"`
	Counts   *report.Counts         `json:"counts,omitempty"` // nil when no publication list was returned
	Skipped  int                    `json:"skipped"`
	Snapshot string                 `json:"snapshot,omitempty"`
}

// Run performs the fetch and writes the summary document, then the
// publications document when the provider returned at least one publication.
// An empty list leaves the existing publications document in place.
//
// A fetch failure returns an error before any file is touched. Per-publication
// detail failures are reported and skipped without failing the run.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	rep := NewReporter(p.Out)
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	userID := p.Config.ResolvedUserID()
	rep.Fetching(userID)

	author, err := p.Provider.FetchAuthor(ctx, userID)
	if err != nil {
		rep.FetchFailed(err)
		return nil, err
	}
	rep.ProfileFound(author.DisplayName())

	citations, hIndex := record.Extract(*author)
	summary := report.NewSummary(now(), citations, hIndex, p.Config.ProfileURL())
	if err := output.WriteJSON(p.Config.SummaryPath, summary); err != nil {
		return nil, fmt.Errorf("writing %s: %w", p.Config.SummaryPath, err)
	}
	rep.SummaryWritten(p.Config.SummaryPath, summary)

	res := &RunResult{
		UserID:   userID,
		Name:     author.DisplayName(),
		Provider: p.Provider.Name(),
		Summary:  summary,
	}

	if author.HasPublications() {
		rep.PublicationsFound(len(author.Publications))

		asm := report.Assembler{OnSkip: rep.PublicationSkipped, Now: now}
		if f, ok := p.Provider.(report.DetailFetcher); ok {
			asm.Fetcher = f
		}
		built, err := asm.Build(ctx, author.Publications)
		if err != nil {
			return nil, fmt.Errorf("assembling publications: %w", err)
		}
		if err := output.WriteJSON(p.Config.PublicationsPath, built.Document); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.Config.PublicationsPath, err)
		}
		rep.PublicationsWritten(p.Config.PublicationsPath, built.Document.Counts)

		counts := built.Document.Counts
		res.Counts = &counts
		res.Skipped = built.Skipped
	}

	if p.Config.HistoryPath != "" {
		snap := history.NewSnapshot(now(), userID, res.Provider, summary, res.Counts)
		if err := history.Append(p.Config.HistoryPath, snap); err != nil {
			rep.Warn("recording history: %v", err)
		} else {
			res.Snapshot = snap.ID
		}
	}

	rep.Done()
	return res, nil
}
