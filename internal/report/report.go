// Package report assembles the summary and publications documents written
// for the website.
package report

import (
	"slices"
	"strings"
	"time"

	"github.com/geotech-lab/scholarsync/internal/venue"
)

// TimestampFormat is the ISO-8601 UTC layout used for lastUpdated.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// SummaryDocument is the content of scholar-data.json.
type SummaryDocument struct {
	LastUpdated string `json:"lastUpdated"`
	Citations   int    `json:"citations"`
	HIndex      int    `json:"hIndex"`
	ScholarURL  string `json:"scholarUrl"`
}

// PublicationEntry is one publication in publications-data.json.
// Year stays text because source years may be blank or non-numeric.
type PublicationEntry struct {
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Venue     string `json:"venue"`
	Year      string `json:"year"`
	Citations int    `json:"citations"`
}

// Counts holds the number of entries per category.
type Counts struct {
	International int `json:"international"`
	Korean        int `json:"korean"`
	Conference    int `json:"conference"`
}

// Total returns the number of entries across all categories.
func (c Counts) Total() int {
	return c.International + c.Korean + c.Conference
}

// PublicationsDocument is the content of publications-data.json.
type PublicationsDocument struct {
	LastUpdated   string             `json:"lastUpdated"`
	International []PublicationEntry `json:"international"`
	Korean        []PublicationEntry `json:"korean"`
	Conference    []PublicationEntry `json:"conference"`
	Counts        Counts             `json:"counts"`
}

// FormatTimestamp renders t in UTC using TimestampFormat.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// NewSummary builds the summary document.
func NewSummary(now time.Time, citations, hIndex int, scholarURL string) SummaryDocument {
	return SummaryDocument{
		LastUpdated: FormatTimestamp(now),
		Citations:   citations,
		HIndex:      hIndex,
		ScholarURL:  scholarURL,
	}
}

// NewPublicationsDocument returns a document with empty (non-nil) sequences.
func NewPublicationsDocument(now time.Time) *PublicationsDocument {
	return &PublicationsDocument{
		LastUpdated:   FormatTimestamp(now),
		International: []PublicationEntry{},
		Korean:        []PublicationEntry{},
		Conference:    []PublicationEntry{},
	}
}

// Add appends an entry to the category's sequence and refreshes the counts.
func (d *PublicationsDocument) Add(c venue.Category, e PublicationEntry) {
	seq := d.sequence(c)
	*seq = append(*seq, e)
	d.refreshCounts()
}

// Entries returns the entries of one category.
func (d *PublicationsDocument) Entries(c venue.Category) []PublicationEntry {
	return *d.sequence(c)
}

// SortByYear orders every category by year, newest first.
// Years compare as strings, so "" sorts after any year and "9" sorts
// before "10". Equal years keep insertion order.
func (d *PublicationsDocument) SortByYear() {
	for _, c := range venue.Categories {
		SortEntriesByYear(*d.sequence(c))
	}
}

// SortEntriesByYear stable-sorts entries by year descending, string order.
func SortEntriesByYear(entries []PublicationEntry) {
	slices.SortStableFunc(entries, func(a, b PublicationEntry) int {
		return strings.Compare(b.Year, a.Year)
	})
}

func (d *PublicationsDocument) refreshCounts() {
	d.Counts = Counts{
		International: len(d.International),
		Korean:        len(d.Korean),
		Conference:    len(d.Conference),
	}
}

// sequence maps a category to its slice; unknown categories land in
// International, the default bucket.
func (d *PublicationsDocument) sequence(c venue.Category) *[]PublicationEntry {
	switch c {
	case venue.Korean:
		return &d.Korean
	case venue.Conference:
		return &d.Conference
	default:
		return &d.International
	}
}
