// Package scholar is a small client for public Google Scholar profile pages.
// It looks up an author by profile ID, fills the citation indices and the
// publication list, and fills individual publications from their detail
// pages.
package scholar

// Section names an Author section filled by Client.Fill.
type Section string

const (
	SectionBasics       Section = "basics"
	SectionIndices      Section = "indices"
	SectionPublications Section = "publications"
)

// Author is a Scholar profile. Nil fields were not filled or not found.
type Author struct {
	ScholarID   string
	Name        *string
	Affiliation *string

	// Indices, all-time and since the rolling start year.
	CitedBy   *int
	CitedBy5y *int
	HIndex    *int
	HIndex5y  *int
	I10Index  *int

	// Publications holds stubs from the profile list; nil until filled.
	Publications []Publication

	Filled []Section

	// firstPage is the cstart=0 page fetched by SearchAuthorID, reused by Fill.
	firstPage *profilePage
}

// Publication is a publication as shown on Scholar.
// Stubs carry Title, Citation, Year and NumCitations; Client.FillPublication
// adds the detail page fields.
type Publication struct {
	// AuthorPubID is the citation_for_view handle, e.g. "s55YrBYAAAAJ:u5HHmVD_uO8C".
	AuthorPubID string

	Title *string
	// Citation is the grey venue line of the profile list, year removed.
	Citation     *string
	Year         *string
	NumCitations *int

	// Detail page fields.
	Authors     *string
	PubDate     *string
	Journal     *string
	Conference  *string
	Book        *string
	Source      *string
	Volume      *string
	Issue       *string
	Pages       *string
	Publisher   *string
	Description *string

	IsFilled bool
}

// Venue returns the most specific venue the publication carries:
// Journal, Conference, Book, Source, then the list Citation line.
func (p Publication) Venue() *string {
	for _, v := range []*string{p.Journal, p.Conference, p.Book, p.Source, p.Citation} {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

// HasSection reports whether the section was filled.
func (a *Author) HasSection(s Section) bool {
	for _, f := range a.Filled {
		if f == s {
			return true
		}
	}
	return false
}
