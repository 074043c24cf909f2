package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"golang.org/x/net/html"
)

// detectFromIcons is the secondary detection path for layouts without a
// calendar table. It scans elements whose own text carries the date label
// and inspects availability icons near them.
func detectFromIcons(doc *goquery.Document, dateLabel string) (availability.Status, *CellInfo) {
	status := availability.Unknown
	var info *CellInfo

	doc.Find("td, th, li, div, span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(normalizeSpace(ownText(sel)), dateLabel) {
			return true
		}

		st := classifyIcons(sel)
		if st == availability.Unknown {
			// The icon often sits in a sibling cell of the date label.
			st = classifyIcons(sel.Parent())
		}
		if st == availability.Unknown {
			return true
		}

		status = st
		html, _ := sel.Parent().Html()
		info = &CellInfo{
			ColumnLabel: normalizeSpace(sel.Text()),
			Text:        string(st),
			HTML:        html,
		}
		return false
	})

	return status, info
}

// classifyIcons classifies the first descendant icon element whose
// alt/title/class/aria-label metadata matches an availability keyword.
func classifyIcons(sel *goquery.Selection) availability.Status {
	status := availability.Unknown

	sel.Find("img, i, span").EachWithBreak(func(_ int, icon *goquery.Selection) bool {
		attrs := []string{
			icon.AttrOr("alt", ""),
			icon.AttrOr("title", ""),
			icon.AttrOr("class", ""),
			icon.AttrOr("aria-label", ""),
		}
		if st := availability.ClassifyIcon(attrs...); st != availability.Unknown {
			status = st
			return false
		}
		return true
	})

	return status
}

// ownText returns the element's direct text content, excluding descendants,
// so a wrapping container does not match every date on the page.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				b.WriteString(child.Data)
			}
		}
	}
	return b.String()
}
