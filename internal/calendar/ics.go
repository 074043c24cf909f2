// Package calendar writes an iCalendar reminder for the watched date when a
// slot opens, so the notification can be dropped straight into a calendar.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
)

// NextDateFromLabel resolves a calendar header label like "12/31" to its next
// occurrence on or after the reference time. Returns the zero time when the
// label is not an M/D date.
func NextDateFromLabel(label string, now time.Time) time.Time {
	var month, day int
	if _, err := fmt.Sscanf(strings.TrimSpace(label), "%d/%d", &month, &day); err != nil {
		return time.Time{}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}

	candidate := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if candidate.Before(today) {
		candidate = candidate.AddDate(1, 0, 0)
	}
	// Reject labels like 2/30 that Date normalized into the next month.
	if candidate.Day() != day {
		return time.Time{}
	}
	return candidate
}

// GenerateICS generates an all-day iCalendar event for the observation.
func GenerateICS(obs *availability.Observation, date time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Fumotoppara Watch//fumo-watch//JA\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s-%s@reserve.fumotoppara.net\r\n",
		date.Format("20060102"), sanitizeUID(obs.Category)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", obs.CheckedAt.UTC().Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", date.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", date.AddDate(0, 0, 1).Format("20060102")))

	summary := fmt.Sprintf("ふもとっぱら %s（%s）", obs.Category, statusNote(obs.Status))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("予約状況: %s（前回 %s）\n%s",
		string(obs.Status), string(obs.Previous), obs.SourceURL)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
	ics.WriteString(fmt.Sprintf("URL:%s\r\n", obs.SourceURL))

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func statusNote(s availability.Status) string {
	switch s {
	case availability.Available:
		return "空きあり"
	case availability.Limited:
		return "残りわずか"
	default:
		return string(s)
	}
}

// sanitizeUID keeps UIDs ASCII-safe.
func sanitizeUID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "slot"
	}
	return b.String()
}

// escapeICS escapes text per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
