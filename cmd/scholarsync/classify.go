package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geotech-lab/scholarsync/internal/venue"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <venue>...",
	Short: "Show the category assigned to venue names",
	Long: `Classify venue names the same way the publication list is bucketed.

Korean markers are checked first, then conference markers; anything else
is international. Matching is case-insensitive.

Examples:
  scholarsync classify "Tunnelling and Underground Space Technology"
  scholarsync classify "KSCE Journal of Civil Engineering" "Proc. ITA WTC"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

// ClassifyResult is one classified venue.
type ClassifyResult struct {
	Venue    string         `json:"venue"`
	Category venue.Category `json:"category"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	results := classifyVenues(args)

	if jsonOutput {
		return outputJSON(results)
	}

	width := 0
	for _, r := range results {
		width = max(width, len(r.Category))
	}
	for _, r := range results {
		fmt.Printf("%-*s  %s\n", width, r.Category, r.Venue)
	}
	return nil
}

func classifyVenues(names []string) []ClassifyResult {
	results := make([]ClassifyResult, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		results = append(results, ClassifyResult{Venue: name, Category: venue.Classify(name)})
	}
	return results
}
