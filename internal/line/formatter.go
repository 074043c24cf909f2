package line

import (
	"fmt"
	"strings"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
)

// statusLabel renders a status with its glyph and a short reading.
func statusLabel(s availability.Status) string {
	switch s {
	case availability.Available:
		return "○ 空きあり"
	case availability.Limited:
		return "△ 残りわずか"
	case availability.Full:
		return "× 満員"
	case availability.None:
		return "ー 記録なし"
	default:
		return "？ 不明"
	}
}

// FormatText formats an observation as a plain text notification.
func FormatText(obs *availability.Observation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🚨 ふもとっぱら（%s）%s に空きが出ました！\n\n", obs.Category, obs.DateLabel))
	b.WriteString(fmt.Sprintf("現在: %s\n", statusLabel(obs.Status)))
	b.WriteString(fmt.Sprintf("前回: %s\n", statusLabel(obs.Previous)))
	b.WriteString("\n" + obs.SourceURL)

	return b.String()
}

// FormatFlex formats an observation as a flex-bubble card with the same
// fields as the text message plus a reservation button.
func FormatFlex(obs *availability.Observation) Message {
	row := func(label, value string) Message {
		return Message{
			"type":   "box",
			"layout": "baseline",
			"contents": []Message{
				{"type": "text", "text": label, "size": "sm", "color": "#8c8c8c", "flex": 2},
				{"type": "text", "text": value, "size": "sm", "wrap": true, "flex": 5},
			},
		}
	}

	bubble := Message{
		"type": "bubble",
		"header": Message{
			"type":   "box",
			"layout": "vertical",
			"contents": []Message{
				{"type": "text", "text": "ふもとっぱら空き状況", "weight": "bold", "size": "md"},
			},
		},
		"body": Message{
			"type":    "box",
			"layout":  "vertical",
			"spacing": "sm",
			"contents": []Message{
				row("区分", obs.Category),
				row("日付", obs.DateLabel),
				row("現在", statusLabel(obs.Status)),
				row("前回", statusLabel(obs.Previous)),
			},
		},
		"footer": Message{
			"type":   "box",
			"layout": "vertical",
			"contents": []Message{
				{
					"type":  "button",
					"style": "primary",
					"action": Message{
						"type":  "uri",
						"label": "予約ページを開く",
						"uri":   obs.SourceURL,
					},
				},
			},
		},
	}

	return Message{
		"type":     "flex",
		"altText":  fmt.Sprintf("ふもとっぱら（%s）%s: %s", obs.Category, obs.DateLabel, statusLabel(obs.Status)),
		"contents": bubble,
	}
}
