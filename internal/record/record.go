// Package record defines the raw author and publication records returned by
// profile providers, before they are normalized into output documents.
package record

// AuthorRecord is an author profile as returned by a provider.
// Nil fields were absent in the source.
type AuthorRecord struct {
	Name    *string
	CitedBy *int
	HIndex  *int

	// Publications is nil when the provider does not return a publication list.
	Publications []RawPublication
}

// RawPublication is a publication as returned by a provider.
// Any field may be absent; accessors apply the defaults ("" or 0).
type RawPublication struct {
	// ID is the provider handle used to fetch the publication's detail.
	ID string

	Title     *string
	Authors   *string
	Venue     *string
	Journal   *string
	Year      *string
	Citations *int
}

// DisplayName returns the author name, or "Unknown" when absent.
func (a AuthorRecord) DisplayName() string {
	if a.Name == nil || *a.Name == "" {
		return "Unknown"
	}
	return *a.Name
}

// HasPublications reports whether the record carries at least one publication.
func (a AuthorRecord) HasPublications() bool {
	return len(a.Publications) > 0
}

// TitleOrEmpty returns the title or "".
func (p RawPublication) TitleOrEmpty() string { return stringOr(p.Title) }

// AuthorsOrEmpty returns the author list or "".
func (p RawPublication) AuthorsOrEmpty() string { return stringOr(p.Authors) }

// YearOrEmpty returns the publication year as text or "".
func (p RawPublication) YearOrEmpty() string { return stringOr(p.Year) }

// CitationsOrZero returns the per-publication citation count, never negative.
func (p RawPublication) CitationsOrZero() int { return nonNegative(p.Citations) }

// VenueName returns the venue, falling back to the journal name, then "".
func (p RawPublication) VenueName() string {
	if p.Venue != nil {
		return *p.Venue
	}
	return stringOr(p.Journal)
}

// Merge returns p with every field present in detail overriding p's value.
// Fields absent from detail keep the stub value.
func (p RawPublication) Merge(detail RawPublication) RawPublication {
	out := p
	if detail.ID != "" {
		out.ID = detail.ID
	}
	if detail.Title != nil {
		out.Title = detail.Title
	}
	if detail.Authors != nil {
		out.Authors = detail.Authors
	}
	if detail.Venue != nil {
		out.Venue = detail.Venue
	}
	if detail.Journal != nil {
		out.Journal = detail.Journal
	}
	if detail.Year != nil {
		out.Year = detail.Year
	}
	if detail.Citations != nil {
		out.Citations = detail.Citations
	}
	return out
}

// String returns a pointer to s, for building records.
func String(s string) *string { return &s }

// Int returns a pointer to n, for building records.
func Int(n int) *int { return &n }

func stringOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNegative(n *int) int {
	if n == nil || *n < 0 {
		return 0
	}
	return *n
}
