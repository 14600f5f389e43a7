package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Name string }

type APICfg struct {
	BaseURL      string
	Token        string
	TimeoutSec   int
	ReadyWaitSec int
}

type ListCfg struct {
	DebounceMs     int
	PageSizes      []int
	DefaultPerPage int
	FetchTimeoutMs int
}

type LogCfg struct {
	Level  string
	Format string // console | json
	Output string // stdout | file | both
	File   string
}

type SandboxCfg struct {
	Port            string
	Token           string // empty disables auth
	LatencyMs       int
	RateLimitPerMin int
	Envelope        string // forces one shape for every resource when set
	Seed            int64
	DatabaseURL     string // empty keeps the rows in memory
}

type Cfg struct {
	App     AppCfg
	API     APICfg
	List    ListCfg
	Log     LogCfg
	Sandbox SandboxCfg
}

func (c ListCfg) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

func (c ListCfg) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

func (c APICfg) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func (c APICfg) ReadyWait() time.Duration {
	return time.Duration(c.ReadyWaitSec) * time.Second
}

func (c SandboxCfg) Latency() time.Duration {
	return time.Duration(c.LatencyMs) * time.Millisecond
}

// Load reads .env (if present) and the process environment
func Load() (Cfg, error) {
	// 1) Load .env into process env, never overriding what is already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("ignoring unreadable .env")
	}

	// 2) Read from env via viper
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "sandbox")
	v.SetDefault("APP_NAME", "enrolladmin")
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api/v1")
	v.SetDefault("API_TOKEN", "")
	v.SetDefault("API_TIMEOUT_SEC", 30)
	v.SetDefault("API_READY_WAIT_SEC", 10)
	v.SetDefault("LIST_DEBOUNCE_MS", 400)
	v.SetDefault("LIST_PAGE_SIZES", "10,25,50,100")
	v.SetDefault("LIST_DEFAULT_PER_PAGE", 10)
	v.SetDefault("LIST_FETCH_TIMEOUT_MS", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_FILE", "logs/enrolladmin.log")
	v.SetDefault("SANDBOX_PORT", "8080")
	v.SetDefault("SANDBOX_TOKEN", "")
	v.SetDefault("SANDBOX_LATENCY_MS", 0)
	v.SetDefault("RATE_LIMIT_PER_MIN", 300)
	v.SetDefault("SANDBOX_ENVELOPE", "")
	v.SetDefault("SANDBOX_SEED", 42)
	v.SetDefault("SANDBOX_DATABASE_URL", "")

	sizes, err := parseSizes(v.GetString("LIST_PAGE_SIZES"))
	if err != nil {
		return Cfg{}, err
	}

	cfg := Cfg{
		App: AppCfg{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		API: APICfg{
			BaseURL:      strings.TrimRight(strings.TrimSpace(v.GetString("API_BASE_URL")), "/"),
			Token:        strings.TrimSpace(v.GetString("API_TOKEN")),
			TimeoutSec:   v.GetInt("API_TIMEOUT_SEC"),
			ReadyWaitSec: v.GetInt("API_READY_WAIT_SEC"),
		},
		List: ListCfg{
			DebounceMs:     v.GetInt("LIST_DEBOUNCE_MS"),
			PageSizes:      sizes,
			DefaultPerPage: v.GetInt("LIST_DEFAULT_PER_PAGE"),
			FetchTimeoutMs: v.GetInt("LIST_FETCH_TIMEOUT_MS"),
		},
		Log: LogCfg{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
			Output: strings.ToLower(v.GetString("LOG_OUTPUT")),
			File:   v.GetString("LOG_FILE"),
		},
		Sandbox: SandboxCfg{
			Port:            v.GetString("SANDBOX_PORT"),
			Token:           strings.TrimSpace(v.GetString("SANDBOX_TOKEN")),
			LatencyMs:       v.GetInt("SANDBOX_LATENCY_MS"),
			RateLimitPerMin: v.GetInt("RATE_LIMIT_PER_MIN"),
			Envelope:        strings.ToLower(strings.TrimSpace(v.GetString("SANDBOX_ENVELOPE"))),
			Seed:            v.GetInt64("SANDBOX_SEED"),
			DatabaseURL:     strings.TrimSpace(v.GetString("SANDBOX_DATABASE_URL")),
		},
	}

	// 3) Fail fast on bad settings
	if err := cfg.Validate(); err != nil {
		return Cfg{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting
func (c Cfg) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL %q must be an absolute URL", c.API.BaseURL)
	}
	if c.API.TimeoutSec < 0 {
		return fmt.Errorf("API_TIMEOUT_SEC must not be negative")
	}
	if len(c.List.PageSizes) == 0 {
		return fmt.Errorf("LIST_PAGE_SIZES must list at least one size")
	}
	for _, s := range c.List.PageSizes {
		if s < 1 {
			return fmt.Errorf("LIST_PAGE_SIZES: size %d must be positive", s)
		}
	}
	if !slices.Contains(c.List.PageSizes, c.List.DefaultPerPage) {
		return fmt.Errorf("LIST_DEFAULT_PER_PAGE %d is not one of LIST_PAGE_SIZES %v", c.List.DefaultPerPage, c.List.PageSizes)
	}
	if c.List.DebounceMs < 0 || c.List.FetchTimeoutMs < 0 {
		return fmt.Errorf("LIST_DEBOUNCE_MS and LIST_FETCH_TIMEOUT_MS must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT %q must be console or json", c.Log.Format)
	}
	switch c.Log.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("LOG_OUTPUT %q must be stdout, file or both", c.Log.Output)
	}
	switch c.Sandbox.Envelope {
	case "", "bare", "paged", "wrapped":
	default:
		return fmt.Errorf("SANDBOX_ENVELOPE %q must be bare, paged or wrapped", c.Sandbox.Envelope)
	}
	if c.Sandbox.RateLimitPerMin < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must not be negative")
	}
	return nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("LIST_PAGE_SIZES: %q is not a number", part)
		}
		if !slices.Contains(sizes, n) {
			sizes = append(sizes, n)
		}
	}
	return sizes, nil
}
