// Package config loads the watcher's settings from environment variables,
// the contract the scheduled-job deployment uses. Flags on the CLI override
// individual values after loading.
package config

import (
	"fmt"
	"strings"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"github.com/kojima2223-star/Fumotoppara/internal/notifier"
	"github.com/spf13/viper"
)

const (
	DefaultCalendarURL   = "https://reserve.fumotoppara.net/reserved/reserved-calendar-list"
	DefaultCategoryLabel = "キャンプ宿泊"
	DefaultDateLabel     = "12/31"
	DefaultCacheFile     = "last_status.txt"
	DefaultHTMLDumpDir   = "html_dump"
	DefaultShotDir       = "shots"
)

// Config holds one run's settings. Loaded once at start, immutable after.
type Config struct {
	CalendarURL   string
	CategoryLabel string
	DateLabel     string

	Policy availability.Policy

	ChannelToken    string
	SendMode        notifier.SendMode
	ToUserID        string
	ToGroupID       string
	UserIDs         []string
	MessageOverride string

	CacheFile   string
	GistID      string
	GithubToken string

	HTMLDumpDir string
	ShotDir     string

	UseBrowser bool
	ChromePath string
	LogLevel   string
}

// envBindings maps viper keys to the environment variable names the original
// deployment already exports.
var envBindings = map[string]string{
	"calendar_url":     "FUMO_CALENDAR_URL",
	"category_label":   "TARGET_CATEGORY_LABEL",
	"date_label":       "TARGET_DATE_LABEL",
	"notify_policy":    "NOTIFY_POLICY",
	"notify_diff_only": "NOTIFY_DIFF_ONLY",
	"channel_token":    "LINE_CHANNEL_TOKEN",
	"send_mode":        "LINE_SEND_MODE",
	"to_user_id":       "LINE_TO_USER_ID",
	"to_group_id":      "LINE_TO_GROUP_ID",
	"user_ids":         "LINE_USER_IDS",
	"message":          "LINE_MESSAGE",
	"cache_file":       "FUMO_CACHE_FILE",
	"gist_id":          "FUMO_GIST_ID",
	"github_token":     "FUMO_GITHUB_TOKEN",
	"html_dump_dir":    "FUMO_HTML_DUMP_DIR",
	"shot_dir":         "FUMO_SHOT_DIR",
	"use_browser":      "FUMO_USE_BROWSER",
	"chrome_path":      "FUMO_CHROME_PATH",
	"log_level":        "FUMO_LOG_LEVEL",
}

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("calendar_url", DefaultCalendarURL)
	v.SetDefault("category_label", DefaultCategoryLabel)
	v.SetDefault("date_label", DefaultDateLabel)
	v.SetDefault("notify_policy", "")
	v.SetDefault("notify_diff_only", "0")
	v.SetDefault("send_mode", string(notifier.ModePush))
	v.SetDefault("cache_file", DefaultCacheFile)
	v.SetDefault("html_dump_dir", DefaultHTMLDumpDir)
	v.SetDefault("shot_dir", DefaultShotDir)
	v.SetDefault("use_browser", true)
	v.SetDefault("log_level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	policy, err := resolvePolicy(v.GetString("notify_policy"), v.GetString("notify_diff_only"))
	if err != nil {
		return nil, err
	}

	sendMode, err := notifier.ParseSendMode(v.GetString("send_mode"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		CalendarURL:     v.GetString("calendar_url"),
		CategoryLabel:   v.GetString("category_label"),
		DateLabel:       v.GetString("date_label"),
		Policy:          policy,
		ChannelToken:    v.GetString("channel_token"),
		SendMode:        sendMode,
		ToUserID:        v.GetString("to_user_id"),
		ToGroupID:       v.GetString("to_group_id"),
		UserIDs:         splitIDs(v.GetString("user_ids")),
		MessageOverride: v.GetString("message"),
		CacheFile:       v.GetString("cache_file"),
		GistID:          v.GetString("gist_id"),
		GithubToken:     v.GetString("github_token"),
		HTMLDumpDir:     v.GetString("html_dump_dir"),
		ShotDir:         v.GetString("shot_dir"),
		UseBrowser:      v.GetBool("use_browser"),
		ChromePath:      v.GetString("chrome_path"),
		LogLevel:        v.GetString("log_level"),
	}

	if cfg.CategoryLabel == "" {
		return nil, fmt.Errorf("category label must not be empty")
	}
	if cfg.DateLabel == "" {
		return nil, fmt.Errorf("date label must not be empty")
	}

	return cfg, nil
}

// resolvePolicy prefers the named policy; the legacy NOTIFY_DIFF_ONLY=1
// switch from earlier deployments maps to on-change.
func resolvePolicy(name, diffOnly string) (availability.Policy, error) {
	if name != "" {
		return availability.ParsePolicy(name)
	}
	if diffOnly == "1" {
		return availability.PolicyOnChange, nil
	}
	return availability.PolicyAlways, nil
}

// PushTarget returns the push-mode recipient; a group ID takes precedence
// over a user ID.
func (c *Config) PushTarget() string {
	if c.ToGroupID != "" {
		return c.ToGroupID
	}
	return c.ToUserID
}

// UseGistCache reports whether the gist-backed status cache is configured.
func (c *Config) UseGistCache() bool {
	return c.GistID != "" && c.GithubToken != ""
}

func splitIDs(csv string) []string {
	var ids []string
	for _, part := range strings.Split(csv, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
