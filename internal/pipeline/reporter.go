package pipeline

import (
	"fmt"
	"io"

	"github.com/geotech-lab/scholarsync/internal/record"
	"github.com/geotech-lab/scholarsync/internal/report"
)

// Reporter prints run progress in human-readable form.
type Reporter struct {
	w io.Writer
}

// NewReporter returns a Reporter writing to w. A nil w discards output.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w}
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) Fetching(userID string) {
	r.printf("Fetching data for Google Scholar user: %s\n", userID)
}

func (r *Reporter) ProfileFound(name string) {
	r.printf("Profile: %s\n", name)
}

func (r *Reporter) FetchFailed(err error) {
	r.printf("Error fetching scholar data: %v\n", err)
	r.printf("Failed to fetch Google Scholar data. Keeping existing data.\n")
}

func (r *Reporter) SummaryWritten(path string, s report.SummaryDocument) {
	r.printf("Updated %s:\n", path)
	r.printf("  Citations: %d\n", s.Citations)
	r.printf("  h-index: %d\n", s.HIndex)
	r.printf("  Last Updated: %s\n", s.LastUpdated)
}

func (r *Reporter) PublicationsFound(n int) {
	r.printf("\nFound %d publications\n", n)
}

func (r *Reporter) PublicationSkipped(pub record.RawPublication, err error) {
	r.printf("Error processing publication: %v\n", err)
}

func (r *Reporter) PublicationsWritten(path string, c report.Counts) {
	r.printf("\nUpdated %s:\n", path)
	r.printf("  International: %d\n", c.International)
	r.printf("  Korean: %d\n", c.Korean)
	r.printf("  Conference: %d\n", c.Conference)
}

// Warn reports a non-fatal problem.
func (r *Reporter) Warn(format string, args ...any) {
	r.printf("Warning: "+format+"\n", args...)
}

func (r *Reporter) Done() {
	r.printf("\nSuccessfully updated Google Scholar data!\n")
}
