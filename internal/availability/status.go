package availability

import "strings"

// Status is the availability read off a single calendar cell.
// The string values are the glyphs the reservation calendar itself uses,
// so they double as the cache-file representation.
type Status string

const (
	Available Status = "○"       // open slots
	Limited   Status = "△"       // a few slots remaining
	Full      Status = "×"       // sold out
	Unknown   Status = "UNKNOWN" // detection failed or cell unreadable
	None      Status = ""        // no previous observation recorded
)

// circle glyph variants differ between fonts and page revisions
var circleVariants = []string{"〇", "○", "◯"}

// Name returns a lowercase english name for logs and reports.
func (s Status) Name() string {
	switch s {
	case Available:
		return "available"
	case Limited:
		return "limited"
	case Full:
		return "full"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// ParseStatus maps a cached status string back to a Status.
// An empty string means no previous observation; anything unrecognized
// is treated as Unknown rather than an error.
func ParseStatus(s string) Status {
	switch Status(strings.TrimSpace(s)) {
	case Available:
		return Available
	case Limited:
		return Limited
	case Full:
		return Full
	case None:
		return None
	default:
		return Unknown
	}
}

// ClassifyCell classifies a calendar cell's text by symbol precedence:
// a circle glyph wins over a triangle (or the remaining-count marker 残),
// which wins over a cross. Cells showing "残1" style counts are Limited.
func ClassifyCell(text string) Status {
	for _, c := range circleVariants {
		if strings.Contains(text, c) {
			return Available
		}
	}
	if strings.Contains(text, "△") || strings.Contains(text, "残") {
		return Limited
	}
	if strings.Contains(text, "×") || strings.Contains(text, "✕") {
		return Full
	}
	return Unknown
}

// Icon keyword lists for pages that mark availability with icon elements
// instead of plain glyph cells. Checked in Full → Limited → Available order
// so "soldout" never reads as available via a stray "available" alt text.
var (
	fullKeywords      = []string{"soldout", "sold-out", "sold out", "full", "close", "満"}
	limitedKeywords   = []string{"few", "limited", "remain", "残", "わずか"}
	availableKeywords = []string{"available", "open", "vacant", "空"}
)

// ClassifyIcon classifies icon metadata (alt/title/class/aria-label values)
// against the keyword lists. All values are matched case-insensitively.
func ClassifyIcon(attrs ...string) Status {
	joined := strings.ToLower(strings.Join(attrs, " "))
	for _, kw := range fullKeywords {
		if strings.Contains(joined, kw) {
			return Full
		}
	}
	for _, kw := range limitedKeywords {
		if strings.Contains(joined, kw) {
			return Limited
		}
	}
	for _, kw := range availableKeywords {
		if strings.Contains(joined, kw) {
			return Available
		}
	}
	return Unknown
}
