package scholar

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Profile page selectors.
const (
	NameSelector        = "#gsc_prf_in"
	AffiliationSelector = ".gsc_prf_il"
	// StatCellSelector matches the citation statistics cells, in order:
	// citations (all, since), h-index (all, since), i10-index (all, since).
	StatCellSelector  = "#gsc_rsb_st td.gsc_rsb_std"
	PublicationRowSel = "#gsc_a_b tr.gsc_a_tr"
	captchaSelector   = "#gs_captcha_f, #captcha-form, #gs_captcha_ccl"
)

// Detail page selectors.
const (
	detailTitleSelector = "#gsc_oci_title"
	detailRowSelector   = "#gsc_oci_table .gs_scl"
)

var (
	citedByRegex = regexp.MustCompile(`Cited by (\d+)`)
	spaceRegex   = regexp.MustCompile(`\s+`)
)

// profilePage is what one profile page yields.
type profilePage struct {
	name        *string
	affiliation *string
	stats       []int
	rows        []Publication
}

// parseProfilePage extracts basics, statistics and publication rows.
func parseProfilePage(doc *goquery.Document) (*profilePage, error) {
	nameSel := doc.Find(NameSelector)
	if nameSel.Length() == 0 {
		if doc.Find(captchaSelector).Length() > 0 {
			return nil, ErrRateLimited
		}
		return nil, fmt.Errorf("%w: no profile name on page", ErrInvalidResponse)
	}

	page := &profilePage{
		name: optionalText(nameSel),
	}
	if aff := doc.Find(AffiliationSelector).First(); aff.Length() > 0 {
		page.affiliation = optionalText(aff)
	}

	stats, err := ParseStatCells(doc)
	if err != nil {
		return nil, err
	}
	page.stats = stats

	doc.Find(PublicationRowSel).Each(func(_ int, s *goquery.Selection) {
		page.rows = append(page.rows, parsePublicationRow(s))
	})

	return page, nil
}

// ParseStatCells returns the numeric statistics cells in page order.
// Thousands separators are ignored; any other non-numeric cell is an error.
func ParseStatCells(doc *goquery.Document) ([]int, error) {
	var values []int
	var parseErr error
	doc.Find(StatCellSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		n, err := ParseCount(s.Text())
		if err != nil {
			parseErr = fmt.Errorf("%w: statistic cell %d: %v", ErrInvalidResponse, i, err)
			return false
		}
		values = append(values, n)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return values, nil
}

// ParseCount parses a displayed count such as "1,234".
func ParseCount(text string) (int, error) {
	cleaned := strings.NewReplacer(",", "", "\u00a0", "", " ", "").Replace(strings.TrimSpace(text))
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count: %q", text)
	}
	return n, nil
}

// parsePublicationRow reads one row of the profile publication table.
func parsePublicationRow(s *goquery.Selection) Publication {
	var pub Publication

	link := s.Find("a.gsc_a_at").First()
	pub.Title = optionalText(link)
	href, ok := link.Attr("href")
	if !ok || href == "" {
		href, _ = link.Attr("data-href")
	}
	pub.AuthorPubID = citationForView(href)

	gray := s.Find("div.gs_gray")
	if gray.Length() >= 2 {
		venue := gray.Eq(1).Clone()
		venue.Find("span.gs_oph").Remove()
		pub.Citation = optionalText(venue)
	}

	if cites := s.Find("a.gsc_a_ac"); cites.Length() > 0 {
		n := 0
		if text := strings.TrimSpace(cites.Text()); text != "" {
			if v, err := ParseCount(text); err == nil {
				n = v
			}
		}
		pub.NumCitations = &n
	}

	pub.Year = optionalText(s.Find("span.gsc_a_h").First())
	return pub
}

// citationForView extracts the citation_for_view parameter from a link.
func citationForView(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("citation_for_view")
}

// parseDetailPage fills pub from a view_citation page.
func parseDetailPage(doc *goquery.Document, pub *Publication) error {
	title := doc.Find(detailTitleSelector)
	if title.Length() == 0 {
		if doc.Find(captchaSelector).Length() > 0 {
			return ErrRateLimited
		}
		return fmt.Errorf("%w: no publication title on detail page", ErrInvalidResponse)
	}
	if t := optionalText(title); t != nil {
		pub.Title = t
	}

	doc.Find(detailRowSelector).Each(func(_ int, row *goquery.Selection) {
		field := strings.ToLower(cleanText(row.Find(".gsc_oci_field").Text()))
		valueSel := row.Find(".gsc_oci_value")
		value := cleanText(valueSel.Text())

		switch field {
		case "authors", "inventors":
			pub.Authors = joinAuthors(value)
		case "publication date":
			pub.PubDate = nonEmpty(value)
			if year := yearFromDate(value); year != "" {
				pub.Year = &year
			}
		case "journal":
			pub.Journal = nonEmpty(value)
		case "conference":
			pub.Conference = nonEmpty(value)
		case "book":
			pub.Book = nonEmpty(value)
		case "source":
			pub.Source = nonEmpty(value)
		case "volume":
			pub.Volume = nonEmpty(value)
		case "issue":
			pub.Issue = nonEmpty(value)
		case "pages":
			pub.Pages = nonEmpty(value)
		case "publisher":
			pub.Publisher = nonEmpty(value)
		case "description":
			pub.Description = nonEmpty(value)
		case "total citations":
			if m := citedByRegex.FindStringSubmatch(valueSel.Find("a").First().Text()); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					pub.NumCitations = &n
				}
			}
		}
	})

	pub.IsFilled = true
	return nil
}

// joinAuthors turns "A Kim, B Lee" into "A Kim and B Lee".
func joinAuthors(value string) *string {
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	if len(names) == 0 {
		return nil
	}
	joined := strings.Join(names, " and ")
	return &joined
}

// yearFromDate returns the year of a "2019/5/1" style date.
func yearFromDate(date string) string {
	year, _, _ := strings.Cut(strings.TrimSpace(date), "/")
	return year
}

func cleanText(s string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}

func optionalText(s *goquery.Selection) *string {
	if s.Length() == 0 {
		return nil
	}
	return nonEmpty(cleanText(s.Text()))
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
