package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./pressfeed.db" description:"Path to the SQLite database file"`
	ContentDir string `long:"content-dir" env:"CONTENT_DIR" default:"./content" description:"Directory containing article content files"`

	// Feed configuration
	PageSize           int `long:"page-size" env:"PAGE_SIZE" default:"10" description:"Number of articles per feed page"`
	TrendingWindowDays int `long:"trending-window-days" env:"TRENDING_WINDOW_DAYS" default:"7" description:"Trailing window in days for trending like counts"`
	ExcerptLength      int `long:"excerpt-length" env:"EXCERPT_LENGTH" default:"100" description:"Maximum excerpt length in characters"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://blog.example.com)"`
	SessionTTL        int    `long:"session-ttl" env:"SESSION_TTL" default:"3600" description:"Feed session idle lifetime in seconds"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for maintenance tasks"`

	// Application metadata
	SiteTitle       string `long:"site-title" env:"SITE_TITLE" default:"Pressfeed" description:"Site title used in feed output"`
	SiteDescription string `long:"site-description" env:"SITE_DESCRIPTION" default:"Long-form articles" description:"Site description used in feed output"`
	Timezone        string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug           bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:             raw.DBPath,
		ContentDir:         raw.ContentDir,
		PageSize:           raw.PageSize,
		TrendingWindowDays: raw.TrendingWindowDays,
		ExcerptLength:      raw.ExcerptLength,
		Port:               raw.Port,
		BaseUrl:            raw.BaseUrl,
		SessionTTL:         raw.SessionTTL,
		SchedulerInterval:  raw.SchedulerInterval,
		WorkerCount:        raw.WorkerCount,
		SiteTitle:          raw.SiteTitle,
		SiteDescription:    raw.SiteDescription,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d", cfg.PageSize)
	}
	if cfg.TrendingWindowDays < 1 {
		return nil, fmt.Errorf("trending window must be at least one day, got %d", cfg.TrendingWindowDays)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
