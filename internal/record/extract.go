package record

// Extract returns the citation count and h-index of an author record.
// Missing or negative values become 0.
func Extract(a AuthorRecord) (citations, hIndex int) {
	return nonNegative(a.CitedBy), nonNegative(a.HIndex)
}
