package scraper

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"github.com/kojima2223-star/Fumotoppara/internal/logger"
)

const (
	DefaultCalendarURL = "https://reserve.fumotoppara.net/reserved/reserved-calendar-list"
	UserAgent          = "fumo-watch/1.0 (github.com/kojima2223-star/Fumotoppara)"
	Timeout            = 30 * time.Second
)

// CellInfo describes the cell a detection resolved, for logging and for the
// debug artifact dump.
type CellInfo struct {
	RowLabel    string `json:"row_label"`
	ColumnLabel string `json:"column_label"`
	Text        string `json:"text"`
	HTML        string `json:"html,omitempty"`
}

// Scraper fetches the reservation calendar over plain HTTP.
// Pages rendered client-side need the browser package instead.
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a new Scraper for the given calendar URL.
func New(url string) *Scraper {
	if url == "" {
		url = DefaultCalendarURL
	}
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// Fetch retrieves the calendar page and parses it into a document.
func (s *Scraper) Fetch() (*goquery.Document, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Detect classifies the (category, dateLabel) cell of the calendar document.
// Detection failures of any kind, including a panic from an unexpected page
// layout, map to Unknown; a detection never aborts the run.
func Detect(doc *goquery.Document, category, dateLabel string) (status availability.Status, cell *CellInfo) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Detection panicked, reporting unknown", logger.Fields{
				"panic": fmt.Sprint(r),
			})
			status = availability.Unknown
			cell = nil
		}
	}()

	status, cell, tableFound := detectFromTable(doc, category, dateLabel)
	if tableFound {
		return status, cell
	}

	// No usable table layout; fall back to scanning date-labeled elements
	// for availability icons.
	return detectFromIcons(doc, dateLabel)
}
