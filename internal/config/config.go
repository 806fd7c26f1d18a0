package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"domainwatch/internal/common"
)

// Config is everything the bot needs to run.
// Secrets and channel ids come from the environment (optionally a .env
// file); tunables come from an optional YAML file
type Config struct {
	Token           string
	StatusChannelId string
	ReportChannelId string
	AlertRoleId     string
	WatchlistFile   string

	MainCycle     time.Duration
	CheckInterval time.Duration
	StatusRefresh time.Duration
	ReportWeekday time.Weekday
	ReportHour    int
	WhoisTimeout  time.Duration
	Restrictions  []common.Restriction
	TLDs          []string // nil means the checker default list
}

type fileConfig struct {
	MainCycleSecs     int    `yaml:"main_cycle_secs"`
	CheckIntervalMins int    `yaml:"check_interval_mins"`
	StatusRefreshMins int    `yaml:"status_refresh_mins"`
	ReportWeekday     string `yaml:"report_weekday"`
	ReportHour        *int   `yaml:"report_hour"`
	WhoisTimeoutSecs  int    `yaml:"whois_timeout_secs"`
	RateLimit         struct {
		Requests int `yaml:"requests"`
		PerSecs  int `yaml:"per_secs"`
	} `yaml:"rate_limit"`
	TLDs []string `yaml:"tlds"`
}

func Load() (Config, error) {

	// A .env file is optional, the real environment wins
	_ = godotenv.Load()

	cfg := Config{
		Token:           os.Getenv("BOT_TOKEN"),
		StatusChannelId: os.Getenv("STATUS_CHANNEL_ID"),
		ReportChannelId: os.Getenv("REPORT_CHANNEL_ID"),
		AlertRoleId:     os.Getenv("ALERT_ROLE_ID"),
		WatchlistFile:   os.Getenv("WATCHLIST_FILE"),

		MainCycle:     30 * time.Second,
		CheckInterval: 24 * time.Hour,
		StatusRefresh: 30 * time.Minute,
		ReportWeekday: time.Sunday,
		ReportHour:    9,
		WhoisTimeout:  10 * time.Second,
		Restrictions:  []common.Restriction{{Requests: 30, Duration: time.Minute}},
	}
	if cfg.Token == "" {
		return Config{}, fmt.Errorf("BOT_TOKEN is not set")
	}
	if cfg.ReportChannelId == "" {
		return Config{}, fmt.Errorf("REPORT_CHANNEL_ID is not set")
	}
	if cfg.WatchlistFile == "" {
		cfg.WatchlistFile = "domain_watchlist.json"
	}

	filename := os.Getenv("CONFIG_FILE")
	if filename == "" {
		filename = "config.yaml"
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("could not read config file %s: %w", filename, err)
	}

	var fileCfg fileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("could not decode config file %s: %w", filename, err)
	}
	return apply(cfg, fileCfg)
}

func apply(cfg Config, fileCfg fileConfig) (Config, error) {
	if fileCfg.MainCycleSecs > 0 {
		cfg.MainCycle = time.Duration(fileCfg.MainCycleSecs) * time.Second
	}
	if fileCfg.CheckIntervalMins > 0 {
		cfg.CheckInterval = time.Duration(fileCfg.CheckIntervalMins) * time.Minute
	}
	if fileCfg.StatusRefreshMins > 0 {
		cfg.StatusRefresh = time.Duration(fileCfg.StatusRefreshMins) * time.Minute
	}
	if fileCfg.ReportWeekday != "" {
		weekday, err := parseWeekday(fileCfg.ReportWeekday)
		if err != nil {
			return Config{}, err
		}
		cfg.ReportWeekday = weekday
	}
	if fileCfg.ReportHour != nil {
		if *fileCfg.ReportHour < 0 || *fileCfg.ReportHour > 23 {
			return Config{}, fmt.Errorf("report hour %d out of range", *fileCfg.ReportHour)
		}
		cfg.ReportHour = *fileCfg.ReportHour
	}
	if fileCfg.WhoisTimeoutSecs > 0 {
		cfg.WhoisTimeout = time.Duration(fileCfg.WhoisTimeoutSecs) * time.Second
	}
	if fileCfg.RateLimit.Requests > 0 && fileCfg.RateLimit.PerSecs > 0 {
		cfg.Restrictions = []common.Restriction{{
			Requests: fileCfg.RateLimit.Requests,
			Duration: time.Duration(fileCfg.RateLimit.PerSecs) * time.Second,
		}}
	}
	if len(fileCfg.TLDs) > 0 {
		cfg.TLDs = fileCfg.TLDs
	}
	return cfg, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(name string) (time.Weekday, error) {
	if weekday, ok := weekdays[strings.ToLower(name)]; ok {
		return weekday, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
