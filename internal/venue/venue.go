// Package venue classifies publications into venue buckets by keyword
// matching on the free-text venue name.
package venue

import (
	"strings"

	"github.com/geotech-lab/scholarsync/internal/record"
)

// Category is the venue bucket a publication belongs to.
type Category string

const (
	International Category = "international"
	Korean        Category = "korean"
	Conference    Category = "conference"
)

// Categories lists every category in output order.
var Categories = []Category{International, Korean, Conference}

// KoreanKeywords mark Korean-language journals and Korean institutions.
var KoreanKeywords = []string{"한국", "korean", "ksce", "kgs", "kes", "대한토목", "지반공학", "터널"}

// ConferenceKeywords mark conference and proceedings venues.
var ConferenceKeywords = []string{"conference", "symposium", "congress", "workshop", "proc.", "proceedings"}

// Classify returns the category of a venue name.
// Korean markers are checked before conference markers, so a Korean
// symposium is Korean. Anything unmatched is International.
func Classify(venueName string) Category {
	v := strings.ToLower(venueName)
	if containsAny(v, KoreanKeywords) {
		return Korean
	}
	if containsAny(v, ConferenceKeywords) {
		return Conference
	}
	return International
}

// ClassifyPublication classifies a raw publication by its resolved venue.
// Publications with no venue but a journal name are classified on the
// journal name; the fallback is intentional.
func ClassifyPublication(p record.RawPublication) Category {
	return Classify(p.VenueName())
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
