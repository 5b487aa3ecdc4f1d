package scholar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Google Scholar host used for page fetches.
	BaseURL = "https://scholar.google.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// PageSize is the number of publication rows requested per profile page.
	PageSize = 100

	// DefaultLanguage is the page language; field labels are parsed in English.
	DefaultLanguage = "en"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Client fetches and parses Google Scholar profile pages.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRequestInterval spaces requests at least d apart. Zero disables pacing.
func WithRequestInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

// NewClient creates a Scholar client. Requests are unpaced by default.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Request.URL)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 300:
		return &APIError{StatusCode: resp.StatusCode, URL: resp.Request.URL.String()}
	}
	return nil
}

// fetch GETs {baseURL}/citations?{query} and parses the HTML.
func (c *Client) fetch(ctx context.Context, query url.Values) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	query.Set("hl", DefaultLanguage)
	reqURL := c.baseURL + "/citations?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading page: %v", ErrNetworkError, err)
	}
	return doc, nil
}

func (c *Client) fetchProfilePage(ctx context.Context, scholarID string, cstart int) (*profilePage, error) {
	q := url.Values{}
	q.Set("user", scholarID)
	q.Set("cstart", strconv.Itoa(cstart))
	q.Set("pagesize", strconv.Itoa(PageSize))

	doc, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	return parseProfilePage(doc)
}

// SearchAuthorID looks up an author by Scholar profile ID and fills the
// basics section.
func (c *Client) SearchAuthorID(ctx context.Context, scholarID string) (*Author, error) {
	if scholarID == "" {
		return nil, errors.New("scholar ID is required")
	}
	page, err := c.fetchProfilePage(ctx, scholarID, 0)
	if err != nil {
		return nil, err
	}

	author := &Author{ScholarID: scholarID, firstPage: page}
	author.applyBasics(page)
	return author, nil
}

// Fill fetches the requested sections of an author profile.
// The first profile page is reused when SearchAuthorID already fetched it;
// further publication pages are fetched until a short page.
func (c *Client) Fill(ctx context.Context, author *Author, sections ...Section) error {
	if len(sections) == 0 {
		sections = []Section{SectionBasics, SectionIndices, SectionPublications}
	}

	page := author.firstPage
	if page == nil {
		var err error
		page, err = c.fetchProfilePage(ctx, author.ScholarID, 0)
		if err != nil {
			return err
		}
		author.firstPage = page
	}

	for _, s := range sections {
		switch s {
		case SectionBasics:
			author.applyBasics(page)
		case SectionIndices:
			author.applyIndices(page.stats)
		case SectionPublications:
			pubs, err := c.collectPublications(ctx, author.ScholarID, page)
			if err != nil {
				return err
			}
			author.Publications = pubs
		default:
			return fmt.Errorf("unknown section %q", s)
		}
		author.markFilled(s)
	}
	return nil
}

func (c *Client) collectPublications(ctx context.Context, scholarID string, first *profilePage) ([]Publication, error) {
	pubs := append([]Publication{}, first.rows...)
	rows := len(first.rows)
	for cstart := PageSize; rows == PageSize; cstart += PageSize {
		page, err := c.fetchProfilePage(ctx, scholarID, cstart)
		if err != nil {
			return nil, fmt.Errorf("publications page at %d: %w", cstart, err)
		}
		pubs = append(pubs, page.rows...)
		rows = len(page.rows)
	}
	return pubs, nil
}

// FillPublication fetches the detail page of a publication stub.
func (c *Client) FillPublication(ctx context.Context, pub *Publication) error {
	if pub.AuthorPubID == "" {
		return fmt.Errorf("%w: publication has no citation ID", ErrInvalidResponse)
	}

	q := url.Values{}
	q.Set("view_op", "view_citation")
	q.Set("citation_for_view", pub.AuthorPubID)

	doc, err := c.fetch(ctx, q)
	if err != nil {
		return err
	}
	return parseDetailPage(doc, pub)
}

func (a *Author) applyBasics(page *profilePage) {
	a.Name = page.name
	a.Affiliation = page.affiliation
}

// applyIndices maps the statistics cells to the index fields.
// Missing cells leave the field nil.
func (a *Author) applyIndices(stats []int) {
	targets := []**int{&a.CitedBy, &a.CitedBy5y, &a.HIndex, &a.HIndex5y, &a.I10Index}
	for i, target := range targets {
		if i < len(stats) {
			v := stats[i]
			*target = &v
		}
	}
}

func (a *Author) markFilled(s Section) {
	if !a.HasSection(s) {
		a.Filled = append(a.Filled, s)
	}
}
