package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"github.com/kojima2223-star/Fumotoppara/internal/logger"
)

// datePattern matches header labels like "12/31" or "1/2（木）".
var datePattern = regexp.MustCompile(`\d{1,2}\s*/\s*\d{1,2}`)

// detectFromTable runs the table-layout detection path. tableFound reports
// whether a calendar-shaped table was located at all; when it is false the
// caller may try the icon fallback path.
func detectFromTable(doc *goquery.Document, category, dateLabel string) (availability.Status, *CellInfo, bool) {
	table := findCalendarTable(doc)
	if table == nil {
		return availability.Unknown, nil, false
	}

	headers := headerTexts(table)
	logger.Debug("Calendar header resolved", logger.Fields{
		"columns": len(headers),
	})

	dateIdx := findDateColumn(headers, dateLabel)
	if dateIdx < 0 {
		logger.Warn("Date label not found in calendar header", logger.Fields{
			"date_label": dateLabel,
		})
		return availability.Unknown, nil, true
	}

	// Header rows lead with one or more label cells (an empty spacer in the
	// current layout), so the data-cell index is shifted left by however many
	// non-date headers precede the first date column.
	tdIdx := dateIdx - leadingNonDateHeaders(headers)
	if tdIdx < 0 {
		logger.Warn("Header layout mismatch: negative data-cell index", logger.Fields{
			"date_index": dateIdx,
		})
		return availability.Unknown, nil, true
	}

	row, rowLabel := findCategoryRow(table, category)
	if row == nil {
		logger.Warn("Category row not found in calendar", logger.Fields{
			"category": category,
		})
		return availability.Unknown, nil, true
	}

	cells := row.Find("td")
	if tdIdx >= cells.Length() {
		logger.Warn("Data-cell index out of range", logger.Fields{
			"td_index": tdIdx,
			"cells":    cells.Length(),
		})
		return availability.Unknown, nil, true
	}

	cell := cells.Eq(tdIdx)
	text := cellText(cell)
	html, _ := cell.Html()

	info := &CellInfo{
		RowLabel:    rowLabel,
		ColumnLabel: headers[dateIdx],
		Text:        text,
		HTML:        html,
	}
	return availability.ClassifyCell(text), info, true
}

// findCalendarTable picks the table whose header row carries the most
// date-like labels. Returns nil when no table has any.
func findCalendarTable(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestScore := 0

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		score := 0
		for _, h := range headerTexts(table) {
			if datePattern.MatchString(h) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = table
		}
	})

	return best
}

// headerTexts returns the normalized texts of the first row's header cells.
func headerTexts(table *goquery.Selection) []string {
	headerRow := table.Find("tr").First()
	cells := headerRow.Find("th")
	if cells.Length() == 0 {
		// Some revisions of the page render header cells as <td>.
		cells = headerRow.Find("td")
	}

	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, th *goquery.Selection) {
		texts = append(texts, normalizeSpace(th.Text()))
	})
	return texts
}

// findDateColumn returns the index of the first header containing the date
// label as a substring, or -1.
func findDateColumn(headers []string, dateLabel string) int {
	for i, h := range headers {
		if strings.Contains(h, dateLabel) {
			return i
		}
	}
	return -1
}

// leadingNonDateHeaders counts the label cells before the first date column.
func leadingNonDateHeaders(headers []string) int {
	for i, h := range headers {
		if datePattern.MatchString(h) {
			return i
		}
	}
	return len(headers)
}

// findCategoryRow finds the row whose leading header cell contains the
// category label, returning the row and the matched label text.
func findCategoryRow(table *goquery.Selection, category string) (*goquery.Selection, string) {
	var found *goquery.Selection
	var label string

	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		head := normalizeSpace(row.Find("th").First().Text())
		if head != "" && strings.Contains(head, category) {
			found = row
			label = head
			return false
		}
		return true
	})

	return found, label
}

// cellText reads a cell's content through a chain of fallbacks so rendering
// differences between page revisions do not break classification:
// rendered text, then the cell's own alternate-text attributes, then
// alternate text on descendant icon elements, then the raw content with
// markup stripped.
func cellText(cell *goquery.Selection) string {
	if t := normalizeSpace(cell.Text()); t != "" {
		return t
	}

	for _, attr := range []string{"aria-label", "alt", "title"} {
		if v, ok := cell.Attr(attr); ok {
			if t := normalizeSpace(v); t != "" {
				return t
			}
		}
	}

	var fromIcons string
	cell.Find("img, i, span").EachWithBreak(func(_ int, icon *goquery.Selection) bool {
		for _, attr := range []string{"alt", "aria-label", "title"} {
			if v, ok := icon.Attr(attr); ok {
				if t := normalizeSpace(v); t != "" {
					fromIcons = t
					return false
				}
			}
		}
		return true
	})
	if fromIcons != "" {
		return fromIcons
	}

	if html, err := cell.Html(); err == nil {
		return normalizeSpace(stripTags(html))
	}
	return ""
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(html string) string {
	return tagPattern.ReplaceAllString(html, " ")
}

var spacePattern = regexp.MustCompile(`\s+`)

// normalizeSpace collapses runs of whitespace (including newlines inside
// header cells) into single spaces and trims the ends.
func normalizeSpace(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}
