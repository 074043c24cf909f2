package availability

import "testing"

func TestClassifyCell(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Status
	}{
		{"full-width circle", "〇", Available},
		{"white circle", "○", Available},
		{"circle with trailing note", "○ 予約可", Available},
		{"triangle", "△", Limited},
		{"triangle with remaining count", "△ 残1", Limited},
		{"remaining count only", "残2", Limited},
		{"cross", "×", Full},
		{"multiplication x variant", "✕", Full},
		{"dash placeholder", "ー", Unknown},
		{"empty", "", Unknown},
		{"unrelated text", "受付終了", Unknown},
		{"circle wins over cross", "○ ×", Available},
		{"triangle wins over cross", "△ ×", Limited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCell(tt.text); got != tt.want {
				t.Errorf("ClassifyCell(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyIcon(t *testing.T) {
	tests := []struct {
		name  string
		attrs []string
		want  Status
	}{
		{"soldout alt", []string{"soldout"}, Full},
		{"sold-out class", []string{"icon icon-sold-out"}, Full},
		{"close keyword", []string{"", "closed"}, Full},
		{"japanese full", []string{"満"}, Full},
		{"few remaining", []string{"few remaining"}, Limited},
		{"limited class", []string{"cal-limited"}, Limited},
		{"japanese remaining", []string{"残りわずか"}, Limited},
		{"available title", []string{"Available"}, Available},
		{"open class", []string{"slot-open"}, Available},
		{"japanese vacancy", []string{"空きあり"}, Available},
		{"full wins over available", []string{"soldout", "available"}, Full},
		{"no keywords", []string{"calendar-cell", "day"}, Unknown},
		{"empty attrs", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyIcon(tt.attrs...); got != tt.want {
				t.Errorf("ClassifyIcon(%v) = %v, want %v", tt.attrs, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"○", Available},
		{"△", Limited},
		{"×", Full},
		{"UNKNOWN", Unknown},
		{"", None},
		{"  △\n", Limited},
		{"garbage", Unknown},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStatusName(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Available, "available"},
		{Limited, "limited"},
		{Full, "full"},
		{Unknown, "unknown"},
		{None, "none"},
	}

	for _, tt := range tests {
		if got := tt.status.Name(); got != tt.want {
			t.Errorf("Status(%q).Name() = %q, want %q", string(tt.status), got, tt.want)
		}
	}
}
