package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/geotech-lab/scholarsync/internal/config"
	"github.com/geotech-lab/scholarsync/internal/record"
	"github.com/geotech-lab/scholarsync/internal/scholar"
)

// Statistic cell positions on the profile page.
const (
	citationsCell = 0
	hIndexCell    = 2 // all-time h-index; cell 1 is since-year citations
	minStatCells  = 2
)

// Scrape reads citation count and h-index directly from the profile page.
// It returns no publications.
type Scrape struct {
	httpClient *http.Client
	host       string
}

// NewScrape builds a Scrape provider from configuration.
func NewScrape(cfg *config.Config) *Scrape {
	return &Scrape{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		host:       cfg.Host,
	}
}

// Name implements ProfileProvider.
func (s *Scrape) Name() string { return config.ProviderScrape }

// FetchAuthor implements ProfileProvider.
func (s *Scrape) FetchAuthor(ctx context.Context, userID string) (*record.AuthorRecord, error) {
	doc, err := s.fetchProfile(ctx, resolveID(userID))
	if err != nil {
		return nil, err
	}

	cells := doc.Find(scholar.StatCellSelector)
	if cells.Length() < minStatCells {
		return nil, fmt.Errorf("%w: found %d statistic cells, need at least %d", ErrParseFailed, cells.Length(), minStatCells)
	}

	citations, err := scholar.ParseCount(cells.Eq(citationsCell).Text())
	if err != nil {
		return nil, fmt.Errorf("%w: citations: %v", ErrParseFailed, err)
	}
	rec := &record.AuthorRecord{CitedBy: &citations}

	if cells.Length() > hIndexCell {
		hIndex, err := scholar.ParseCount(cells.Eq(hIndexCell).Text())
		if err != nil {
			return nil, fmt.Errorf("%w: h-index: %v", ErrParseFailed, err)
		}
		rec.HIndex = &hIndex
	}

	if name := strings.TrimSpace(doc.Find(scholar.NameSelector).Text()); name != "" {
		rec.Name = &name
	}
	return rec, nil
}

func (s *Scrape) fetchProfile(ctx context.Context, userID string) (*goquery.Document, error) {
	reqURL := config.ProfileURL(s.host, userID, scholar.DefaultLanguage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; scholarsync)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrFetchFailed, resp.StatusCode, reqURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading page: %v", ErrFetchFailed, err)
	}
	return doc, nil
}
