// Package main provides the scholarsync CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/geotech-lab/scholarsync/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// jsonOutput switches command results and errors to JSON
	jsonOutput bool

	// configPath is the YAML config file; empty means scholarsync.yml if present
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors (unknown flags etc.) are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scholarsync",
	Short: "Sync Google Scholar citation metrics to JSON files",
	Long: `scholarsync fetches citation metrics and the publication list of a
Google Scholar profile and writes them to JSON files for a static website.

Running scholarsync without a subcommand is the same as 'scholarsync update'.

Environment Variables:
  SCHOLAR_USER_ID            Google Scholar profile ID (default s55YrBYAAAAJ)
  SCHOLAR_PROVIDER           library or scrape (default library)
  SCHOLAR_HOST               Google Scholar host (default https://scholar.google.co.kr)
  SCHOLAR_LANG               hl parameter of the profile URL (default ko)
  SCHOLAR_SUMMARY_PATH       summary output file (default scholar-data.json)
  SCHOLAR_PUBLICATIONS_PATH  publications output file (default publications-data.json)
  SCHOLAR_HISTORY_PATH       run history JSONL file (default disabled)
  SCHOLAR_TIMEOUT            HTTP timeout (default 30s)
  SCHOLAR_REQUEST_INTERVAL   minimum gap between requests (default none)

A .env file in the working directory is loaded before the environment is read.`,
	Args:          cobra.NoArgs,
	RunE:          runUpdate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for SCHOLAR_USER_ID and friends)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default "+config.DefaultConfigFile+" if present)")
	addUpdateFlags(rootCmd)
	rootCmd.Version = Version
}

// mustLoadConfig loads and validates configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
