package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/geotech-lab/scholarsync/internal/config"
	"github.com/geotech-lab/scholarsync/internal/pipeline"
	"github.com/geotech-lab/scholarsync/internal/provider"
)

var (
	updateUser     string
	updateProvider string
	updateHistory  string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch the profile and rewrite the output files",
	Long: `Fetch citation metrics (and, with the library provider, the publication
list) for a Google Scholar profile and rewrite the JSON output files.

If the profile cannot be fetched or parsed, the existing files are left
untouched and the command exits with code 3. Publications whose detail
page fails are reported and skipped; the run still succeeds.

Examples:
  scholarsync update
  scholarsync update --user s55YrBYAAAAJ --provider scrape
  scholarsync update --history .scholarsync/history.jsonl --json`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	addUpdateFlags(updateCmd)
	rootCmd.AddCommand(updateCmd)
}

func addUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&updateUser, "user", "", "Google Scholar profile ID (overrides SCHOLAR_USER_ID)")
	cmd.Flags().StringVar(&updateProvider, "provider", "", "Fetch strategy: library or scrape")
	cmd.Flags().StringVar(&updateHistory, "history", "", "Append a run snapshot to this JSONL file")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	applyUpdateFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	p, err := provider.New(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	var out io.Writer = os.Stdout
	if jsonOutput {
		// Keep stdout for the JSON result
		out = os.Stderr
	}

	run := &pipeline.Pipeline{Config: cfg, Provider: p, Out: out}
	res, err := run.Run(cmd.Context())
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if jsonOutput {
		outputJSON(res)
	}
	return nil
}

// applyUpdateFlags overlays explicitly set flags onto cfg.
func applyUpdateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("user") {
		cfg.UserID = updateUser
	}
	if flags.Changed("provider") {
		cfg.Provider = updateProvider
	}
	if flags.Changed("history") {
		cfg.HistoryPath = updateHistory
	}
}

// exitCodeFor maps a run error to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, provider.ErrFetchFailed), errors.Is(err, provider.ErrParseFailed):
		return ExitFetchError
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	default:
		return ExitError
	}
}
