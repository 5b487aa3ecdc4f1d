package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/geotech-lab/scholarsync/internal/config"
	"github.com/geotech-lab/scholarsync/internal/history"
	"github.com/geotech-lab/scholarsync/internal/provider"
	"github.com/geotech-lab/scholarsync/internal/report"
	"github.com/geotech-lab/scholarsync/internal/venue"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"fetch failed", fmt.Errorf("%w: HTTP 503", provider.ErrFetchFailed), ExitFetchError},
		{"parse failed", fmt.Errorf("%w: no statistics", provider.ErrParseFailed), ExitFetchError},
		{"invalid config", fmt.Errorf("%w: provider", config.ErrInvalidConfig), ExitConfigError},
		{"write failure", errors.New("writing scholar-data.json: permission denied"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestApplyUpdateFlags(t *testing.T) {
	cfg := config.Default()
	cfg.HistoryPath = "from-env.jsonl"

	cmd := updateCmd
	if err := cmd.ParseFlags([]string{"--user", "abc123", "--provider", "scrape"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	applyUpdateFlags(cmd, cfg)

	if cfg.UserID != "abc123" {
		t.Errorf("UserID = %q, want abc123", cfg.UserID)
	}
	if cfg.Provider != config.ProviderScrape {
		t.Errorf("Provider = %q, want scrape", cfg.Provider)
	}
	if cfg.HistoryPath != "from-env.jsonl" {
		t.Errorf("HistoryPath = %q, unset flag should not override", cfg.HistoryPath)
	}
}

func TestClassifyVenues(t *testing.T) {
	got := classifyVenues([]string{
		"  Tunnelling and Underground Space Technology ",
		"KSCE Journal of Civil Engineering",
		"Proc. World Tunnel Congress",
	})
	want := []ClassifyResult{
		{"Tunnelling and Underground Space Technology", venue.International},
		{"KSCE Journal of Civil Engineering", venue.Korean},
		{"Proc. World Tunnel Congress", venue.Conference},
	}
	if len(got) != len(want) {
		t.Fatalf("classifyVenues() returned %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("classifyVenues()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFormatSnapshotHuman(t *testing.T) {
	s := history.Snapshot{
		FetchedAt: "2025-01-02T03:04:05.000000Z",
		UserID:    "s55YrBYAAAAJ",
		Provider:  "scrape",
		Citations: 120,
		HIndex:    8,
	}
	line := formatSnapshotHuman(s)
	if !strings.Contains(line, "citations=120 h-index=8") {
		t.Errorf("formatSnapshotHuman() = %q", line)
	}
	if strings.Contains(line, "korean=") {
		t.Errorf("snapshot without counts should omit them: %q", line)
	}

	s.Counts = &report.Counts{International: 3, Korean: 2, Conference: 1}
	line = formatSnapshotHuman(s)
	if !strings.HasSuffix(line, "international=3 korean=2 conference=1") {
		t.Errorf("formatSnapshotHuman() = %q", line)
	}
}
