package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotech-lab/scholarsync/internal/venue"
)

func years(entries []PublicationEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Year
	}
	return out
}

func TestNewSummary(t *testing.T) {
	now := time.Date(2024, 3, 5, 6, 7, 8, 0, time.FixedZone("KST", 9*3600))
	s := NewSummary(now, 120, 8, "https://scholar.google.co.kr/citations?user=x&hl=ko")

	assert.Equal(t, "2024-03-04T21:07:08.000000Z", s.LastUpdated)
	assert.Equal(t, 120, s.Citations)
	assert.Equal(t, 8, s.HIndex)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"lastUpdated": "2024-03-04T21:07:08.000000Z",
		"citations": 120,
		"hIndex": 8,
		"scholarUrl": "https://scholar.google.co.kr/citations?user=x&hl=ko"
	}`, string(data))
}

func TestSortEntriesByYear(t *testing.T) {
	entries := []PublicationEntry{
		{Title: "a", Year: "2019"},
		{Title: "b", Year: ""},
		{Title: "c", Year: "2021"},
	}
	SortEntriesByYear(entries)
	assert.Equal(t, []string{"2021", "2019", ""}, years(entries))
}

func TestSortEntriesByYear_StringOrder(t *testing.T) {
	// String comparison: "9" > "10" and "2020a" > "2020".
	entries := []PublicationEntry{
		{Year: "10"},
		{Year: "9"},
		{Year: "2020"},
		{Year: "2020a"},
	}
	SortEntriesByYear(entries)
	assert.Equal(t, []string{"9", "2020a", "2020", "10"}, years(entries))
}

func TestSortEntriesByYear_Stable(t *testing.T) {
	entries := []PublicationEntry{
		{Title: "first", Year: "2020"},
		{Title: "newer", Year: "2022"},
		{Title: "second", Year: "2020"},
		{Title: "third", Year: "2020"},
	}
	SortEntriesByYear(entries)

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{"newer", "first", "second", "third"}, titles)
}

func TestPublicationsDocument_CountsMatchSequences(t *testing.T) {
	doc := NewPublicationsDocument(time.Unix(0, 0))
	doc.Add(venue.Korean, PublicationEntry{Year: "2020"})
	doc.Add(venue.International, PublicationEntry{Year: "2018"})
	doc.Add(venue.Korean, PublicationEntry{Year: "2021"})
	doc.Add(venue.Category("bogus"), PublicationEntry{Year: "2017"})

	for _, c := range venue.Categories {
		assert.Len(t, doc.Entries(c), countOf(doc.Counts, c), "category %s", c)
	}
	assert.Equal(t, Counts{International: 2, Korean: 2, Conference: 0}, doc.Counts)
	assert.Equal(t, 4, doc.Counts.Total())
}

func TestPublicationsDocument_EmptyArraysNotNull(t *testing.T) {
	doc := NewPublicationsDocument(time.Unix(0, 0))
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"international", "korean", "conference"} {
		assert.Equal(t, []any{}, raw[key], key)
	}
	assert.Equal(t, map[string]any{"international": 0.0, "korean": 0.0, "conference": 0.0}, raw["counts"])
}

func countOf(c Counts, cat venue.Category) int {
	switch cat {
	case venue.Korean:
		return c.Korean
	case venue.Conference:
		return c.Conference
	default:
		return c.International
	}
}
