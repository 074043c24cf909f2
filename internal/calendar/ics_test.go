package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
)

func TestNextDateFromLabel(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		label string
		want  time.Time
	}{
		{"later this year", "12/31", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"already passed rolls to next year", "3/15", time.Date(2027, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"today resolves to today", "8/20", time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)},
		{"tolerates surrounding space", " 12/31 ", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"not a date", "キャンプ", time.Time{}},
		{"impossible day", "2/30", time.Time{}},
		{"out of range month", "13/1", time.Time{}},
		{"empty", "", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDateFromLabel(tt.label, now)
			if !got.Equal(tt.want) {
				t.Errorf("NextDateFromLabel(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestGenerateICS(t *testing.T) {
	obs := availability.NewObservation(
		"キャンプ宿泊", "12/31",
		availability.Limited, availability.Full,
		"https://reserve.fumotoppara.net/reserved/reserved-calendar-list",
	)
	date := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)

	ics := GenerateICS(obs, date)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"DTSTART;VALUE=DATE:20261231",
		"DTEND;VALUE=DATE:20270101",
		"キャンプ宿泊",
		"URL:https://reserve.fumotoppara.net/reserved/reserved-calendar-list",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("GenerateICS() missing %q:\n%s", want, ics)
		}
	}

	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("ICS output must end with CRLF-terminated END:VCALENDAR")
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a,b", "a\\,b"},
		{"a;b", "a\\;b"},
		{"line1\nline2", "line1\\nline2"},
		{"back\\slash", "back\\\\slash"},
	}

	for _, tt := range tests {
		if got := escapeICS(tt.in); got != tt.want {
			t.Errorf("escapeICS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
