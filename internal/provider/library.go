package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/geotech-lab/scholarsync/internal/config"
	"github.com/geotech-lab/scholarsync/internal/record"
	"github.com/geotech-lab/scholarsync/internal/report"
	"github.com/geotech-lab/scholarsync/internal/scholar"
)

var _ report.DetailFetcher = (*Library)(nil)

// Library fetches the full profile through the scholar client: basics,
// indices and publication stubs, plus one detail request per publication.
type Library struct {
	client *scholar.Client
}

// NewLibrary builds a Library provider from configuration.
func NewLibrary(cfg *config.Config) *Library {
	return NewLibraryWithClient(scholar.NewClient(
		scholar.WithBaseURL(cfg.Host),
		scholar.WithTimeout(cfg.Timeout),
		scholar.WithRequestInterval(cfg.RequestInterval),
	))
}

// NewLibraryWithClient wraps an existing scholar client.
func NewLibraryWithClient(c *scholar.Client) *Library {
	return &Library{client: c}
}

// Name implements ProfileProvider.
func (l *Library) Name() string { return config.ProviderLibrary }

// FetchAuthor implements ProfileProvider.
func (l *Library) FetchAuthor(ctx context.Context, userID string) (*record.AuthorRecord, error) {
	author, err := l.client.SearchAuthorID(ctx, resolveID(userID))
	if err != nil {
		return nil, classifyError(err)
	}
	if err := l.client.Fill(ctx, author, scholar.SectionBasics, scholar.SectionIndices, scholar.SectionPublications); err != nil {
		return nil, classifyError(err)
	}
	return authorToRecord(author), nil
}

// FetchPublication implements report.DetailFetcher.
func (l *Library) FetchPublication(ctx context.Context, pub record.RawPublication) (record.RawPublication, error) {
	sp := scholar.Publication{AuthorPubID: pub.ID}
	if err := l.client.FillPublication(ctx, &sp); err != nil {
		return record.RawPublication{}, err
	}
	return pub.Merge(publicationToRecord(sp)), nil
}

func authorToRecord(a *scholar.Author) *record.AuthorRecord {
	rec := &record.AuthorRecord{
		Name:    a.Name,
		CitedBy: a.CitedBy,
		HIndex:  a.HIndex,
	}
	if a.HasSection(scholar.SectionPublications) {
		rec.Publications = make([]record.RawPublication, 0, len(a.Publications))
		for _, p := range a.Publications {
			rec.Publications = append(rec.Publications, publicationToRecord(p))
		}
	}
	return rec
}

// publicationToRecord maps a scholar publication; Venue resolves to the
// most specific venue field available.
func publicationToRecord(p scholar.Publication) record.RawPublication {
	return record.RawPublication{
		ID:        p.AuthorPubID,
		Title:     p.Title,
		Authors:   p.Authors,
		Venue:     p.Venue(),
		Journal:   p.Journal,
		Year:      p.Year,
		Citations: p.NumCitations,
	}
}

// classifyError maps scholar client errors onto ErrFetchFailed and
// ErrParseFailed.
func classifyError(err error) error {
	switch {
	case errors.Is(err, scholar.ErrInvalidResponse):
		return fmt.Errorf("%w: %v", ErrParseFailed, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
}
