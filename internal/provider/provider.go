// Package provider fetches author records from Google Scholar using one of
// two interchangeable strategies.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/geotech-lab/scholarsync/internal/config"
	"github.com/geotech-lab/scholarsync/internal/record"
)

var (
	// ErrFetchFailed indicates a transport error, timeout or HTTP failure.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrParseFailed indicates the response lacked the expected markup or
	// held non-numeric statistics.
	ErrParseFailed = errors.New("parse failed")
)

// ProfileProvider retrieves an author record for a profile ID.
type ProfileProvider interface {
	Name() string
	FetchAuthor(ctx context.Context, userID string) (*record.AuthorRecord, error)
}

// New returns the provider named by cfg.Provider.
func New(cfg *config.Config) (ProfileProvider, error) {
	switch cfg.Provider {
	case config.ProviderLibrary:
		return NewLibrary(cfg), nil
	case config.ProviderScrape:
		return NewScrape(cfg), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", config.ErrInvalidConfig, cfg.Provider)
	}
}

// resolveID substitutes the default profile when id is empty.
func resolveID(id string) string {
	if id == "" {
		return config.DefaultUserID
	}
	return id
}
