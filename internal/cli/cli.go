package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"github.com/kojima2223-star/Fumotoppara/internal/browser"
	"github.com/kojima2223-star/Fumotoppara/internal/calendar"
	"github.com/kojima2223-star/Fumotoppara/internal/config"
	"github.com/kojima2223-star/Fumotoppara/internal/line"
	"github.com/kojima2223-star/Fumotoppara/internal/logger"
	"github.com/kojima2223-star/Fumotoppara/internal/notifier"
	"github.com/kojima2223-star/Fumotoppara/internal/scraper"
	"github.com/kojima2223-star/Fumotoppara/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess           = 0
	ExitError             = 1
	ExitMissingCredential = 2
	ExitMissingRecipient  = 3
)

var (
	flagURL       string
	flagCategory  string
	flagDateLabel string
	flagPolicy    string
	flagCacheFile string
	flagFormat    string
	flagDryRun    bool
	flagNoBrowser bool
	flagFlexCard  bool
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fumo-watch",
		Short: "Check Fumotoppara reservation availability and notify via LINE",
		Long: `A one-shot checker for the Fumotoppara campground reservation calendar.
Reads the availability cell for a category and date, compares it with the
status cached from the previous run, and sends a LINE notification when the
configured policy says to. Designed to be run from cron or a CI scheduler.`,
		RunE: runCheck,
	}

	// Flags override the environment configuration for one run.
	cmd.Flags().StringVar(&flagURL, "url", "", "Calendar page URL (default: official reservation calendar)")
	cmd.Flags().StringVar(&flagCategory, "category", "", "Category row label to watch (e.g. キャンプ宿泊)")
	cmd.Flags().StringVar(&flagDateLabel, "date", "", "Date column label to watch (e.g. 12/31)")
	cmd.Flags().StringVar(&flagPolicy, "policy", "", "Notify policy: always, on-change, or reopened")
	cmd.Flags().StringVar(&flagCacheFile, "cache-file", "", "Path of the last-status cache file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the notification instead of calling the LINE API")
	cmd.Flags().BoolVar(&flagNoBrowser, "no-browser", false, "Fetch the page over plain HTTP instead of headless Chrome")
	cmd.Flags().BoolVar(&flagFlexCard, "flex", false, "Attach a flex-bubble card to the notification")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runCheck is the main command logic: one fetch, one detection, at most one
// notification, one cache write.
func runCheck(cmd *cobra.Command, args []string) error {
	started := time.Now()

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := applyFlagOverrides(cfg); err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	// Credential and recipient checks happen before touching the page, so a
	// misconfigured scheduler job fails fast with a distinct exit code.
	if !flagDryRun && cfg.ChannelToken == "" {
		logger.Error("LINE channel token is not set", nil, nil)
		os.Exit(ExitMissingCredential)
	}

	send, err := buildNotifier(cfg)
	if err != nil {
		if errors.Is(err, notifier.ErrMissingRecipient) {
			logger.Error("No recipient configured for send mode", logger.Fields{
				"send_mode": string(cfg.SendMode),
			}, err)
			os.Exit(ExitMissingRecipient)
		}
		return err
	}

	cache, err := newCache(cfg)
	if err != nil {
		return fmt.Errorf("initializing status cache: %w", err)
	}
	previous, err := cache.Load()
	if err != nil {
		return fmt.Errorf("loading cached status: %w", err)
	}
	logger.Debug("Loaded previous status", logger.Fields{
		"previous": previous.Name(),
	})

	// Fetch failures never abort the run: the status becomes Unknown and the
	// cache still gets written, so the next run sees the gap.
	doc, screenshot := fetchDocument(cfg)

	status := availability.Unknown
	var cell *scraper.CellInfo
	if doc != nil {
		status, cell = scraper.Detect(doc, cfg.CategoryLabel, cfg.DateLabel)
	}
	logger.Info("Detected availability", logger.Fields{
		"category":   cfg.CategoryLabel,
		"date_label": cfg.DateLabel,
		"status":     status.Name(),
		"previous":   previous.Name(),
	})

	saveArtifacts(cfg, cell, screenshot)

	obs := availability.NewObservation(cfg.CategoryLabel, cfg.DateLabel, status, previous, cfg.CalendarURL)

	notified := false
	if availability.ShouldNotify(previous, status, cfg.Policy) {
		if err := send.Notify(obs); err != nil {
			logger.Error("Notification delivery failed", logger.Fields{
				"send_mode": string(cfg.SendMode),
			}, err)
			os.Exit(ExitError)
		}
		notified = true
		saveReminder(cfg, obs)
	} else {
		logger.Info("Notification suppressed by policy", logger.Fields{
			"policy": string(cfg.Policy),
		})
	}

	if err := cache.Save(status); err != nil {
		return fmt.Errorf("saving status cache: %w", err)
	}

	report := &RunReport{
		CheckedAt:   obs.CheckedAt,
		CalendarURL: cfg.CalendarURL,
		Category:    cfg.CategoryLabel,
		DateLabel:   cfg.DateLabel,
		Previous:    string(previous),
		Current:     string(status),
		Policy:      string(cfg.Policy),
		Notified:    notified,
		DryRun:      flagDryRun,
	}
	if cell != nil {
		report.CellText = cell.Text
	}
	if err := WriteOutput(os.Stdout, report, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Info("Run complete", logger.Fields{
		"status":      status.Name(),
		"notified":    notified,
		"duration_ms": time.Since(started).Milliseconds(),
	})

	os.Exit(ExitSuccess)
	return nil
}

// applyFlagOverrides lets explicit flags win over environment configuration.
func applyFlagOverrides(cfg *config.Config) error {
	if flagURL != "" {
		cfg.CalendarURL = flagURL
	}
	if flagCategory != "" {
		cfg.CategoryLabel = flagCategory
	}
	if flagDateLabel != "" {
		cfg.DateLabel = flagDateLabel
	}
	if flagPolicy != "" {
		policy, err := availability.ParsePolicy(flagPolicy)
		if err != nil {
			return err
		}
		cfg.Policy = policy
	}
	if flagCacheFile != "" {
		cfg.CacheFile = flagCacheFile
	}
	if flagNoBrowser {
		cfg.UseBrowser = false
	}
	return nil
}

func buildNotifier(cfg *config.Config) (notifier.Notifier, error) {
	if flagDryRun {
		return notifier.NewDryRunNotifier(), nil
	}

	client, err := line.NewClient(cfg.ChannelToken)
	if err != nil {
		return nil, err
	}
	n, err := notifier.NewLINENotifier(client, cfg.SendMode, cfg.PushTarget(), cfg.UserIDs)
	if err != nil {
		return nil, err
	}
	if flagFlexCard {
		n = n.WithFlexCard()
	}
	if cfg.MessageOverride != "" {
		n = n.WithMessageOverride(cfg.MessageOverride)
	}
	return n, nil
}

func newCache(cfg *config.Config) (storage.Cache, error) {
	if cfg.UseGistCache() {
		return storage.NewGistCache(cfg.GistID, cfg.GithubToken)
	}
	return storage.NewFileCache(cfg.CacheFile)
}

// fetchDocument retrieves the calendar page, through headless Chrome by
// default since the calendar table is built client-side. Any fetch or parse
// failure logs a warning and returns a nil document.
func fetchDocument(cfg *config.Config) (*goquery.Document, []byte) {
	if !cfg.UseBrowser {
		doc, err := scraper.New(cfg.CalendarURL).Fetch()
		if err != nil {
			logger.Warn("Fetching calendar page failed", logger.Fields{
				"url": cfg.CalendarURL,
			})
			logger.Debug("Fetch error detail", logger.Fields{"error": err.Error()})
			return nil, nil
		}
		return doc, nil
	}

	var opts []browser.Option
	if cfg.ChromePath != "" {
		opts = append(opts, browser.WithExecPath(cfg.ChromePath))
	}
	pageHTML, screenshot, err := browser.New(opts...).RenderHTML(context.Background(), cfg.CalendarURL)
	if err != nil {
		logger.Warn("Rendering calendar page failed", logger.Fields{
			"url": cfg.CalendarURL,
		})
		logger.Debug("Render error detail", logger.Fields{"error": err.Error()})
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		logger.Warn("Parsing rendered page failed", nil)
		return nil, screenshot
	}
	return doc, screenshot
}

// saveArtifacts writes the debug dumps. Artifact failures are warnings only.
func saveArtifacts(cfg *config.Config, cell *scraper.CellInfo, screenshot []byte) {
	writer := storage.NewArtifactWriter(cfg.HTMLDumpDir, cfg.ShotDir)

	if cell != nil && cell.HTML != "" {
		if path, err := writer.SaveCellHTML(cell.HTML); err != nil {
			logger.Warn("Saving cell HTML failed", logger.Fields{"error": err.Error()})
		} else {
			logger.Debug("Saved cell HTML", logger.Fields{"path": path})
		}
	}
	if len(screenshot) > 0 {
		if path, err := writer.SaveScreenshot(screenshot); err != nil {
			logger.Warn("Saving screenshot failed", logger.Fields{"error": err.Error()})
		} else {
			logger.Debug("Saved screenshot", logger.Fields{"path": path})
		}
	}
}

// saveReminder writes an iCalendar reminder alongside a sent notification so
// the watched date can be added to a calendar with one click.
func saveReminder(cfg *config.Config, obs *availability.Observation) {
	date := calendar.NextDateFromLabel(obs.DateLabel, time.Now())
	if date.IsZero() {
		return
	}
	ics := calendar.GenerateICS(obs, date)
	writer := storage.NewArtifactWriter(cfg.HTMLDumpDir, cfg.ShotDir)
	if path, err := writer.SaveReminder(ics); err != nil {
		logger.Warn("Saving reminder failed", logger.Fields{"error": err.Error()})
	} else {
		logger.Debug("Saved reminder", logger.Fields{"path": path})
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
