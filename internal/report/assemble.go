package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geotech-lab/scholarsync/internal/record"
	"github.com/geotech-lab/scholarsync/internal/venue"
)

// ErrPublicationDetailFailed marks a publication whose detail could not be
// fetched. The publication is skipped and assembly continues.
var ErrPublicationDetailFailed = errors.New("publication detail failed")

// DetailFetcher fills a publication stub with its full detail.
type DetailFetcher interface {
	FetchPublication(ctx context.Context, pub record.RawPublication) (record.RawPublication, error)
}

// Assembler builds a PublicationsDocument from raw publication records.
type Assembler struct {
	// Fetcher fills stubs; nil means stubs are used as returned.
	Fetcher DetailFetcher

	// OnSkip is called for every publication dropped from the document.
	OnSkip func(pub record.RawPublication, err error)

	// Now returns the document timestamp; defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of Assembler.Build.
type Result struct {
	Document *PublicationsDocument
	Skipped  int
}

// Build fetches, classifies and orders publications. A failure on one
// publication is reported through OnSkip and never aborts the batch.
// Only context cancellation stops the loop early.
func (a *Assembler) Build(ctx context.Context, pubs []record.RawPublication) (*Result, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	doc := NewPublicationsDocument(now())
	res := &Result{Document: doc}

	for _, pub := range pubs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		filled, err := a.fill(ctx, pub)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Skipped++
			if a.OnSkip != nil {
				a.OnSkip(pub, err)
			}
			continue
		}

		doc.Add(venue.ClassifyPublication(filled), ToEntry(filled))
	}

	doc.SortByYear()
	return res, nil
}

func (a *Assembler) fill(ctx context.Context, pub record.RawPublication) (record.RawPublication, error) {
	if a.Fetcher == nil {
		return pub, nil
	}
	filled, err := a.Fetcher.FetchPublication(ctx, pub)
	if err != nil {
		return record.RawPublication{}, fmt.Errorf("%w: %v", ErrPublicationDetailFailed, err)
	}
	return filled, nil
}

// ToEntry maps a filled publication to its output entry.
func ToEntry(p record.RawPublication) PublicationEntry {
	return PublicationEntry{
		Title:     p.TitleOrEmpty(),
		Authors:   p.AuthorsOrEmpty(),
		Venue:     p.VenueName(),
		Year:      p.YearOrEmpty(),
		Citations: p.CitationsOrZero(),
	}
}
