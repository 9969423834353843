package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            int           `yaml:"port"`
	UpstreamURL     string        `yaml:"upstream_url"`
	ResultsPath     string        `yaml:"results_path"`
	VotePath        string        `yaml:"vote_path"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	FadeDelay       time.Duration `yaml:"fade_delay"`
	RemoveDelay     time.Duration `yaml:"remove_delay"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	DiscardStale    bool          `yaml:"discard_stale"`
	StaticDir       string        `yaml:"static_dir"`
	Candidates      []string      `yaml:"candidates"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	MetricsAddr     string        `yaml:"metrics_addr"`
	DatabasePath    string        `yaml:"database_path"`
	LogFormat       string        `yaml:"log_format"`
	LogLevel        string        `yaml:"log_level"`
	ConfigFile      string        `yaml:"-"`
}

// AddFlags registers every setting on fs. Unset flags keep their zero
// value and fall back to the environment, the config file, then defaults.
func AddFlags(fs *pflag.FlagSet, cfg *Config) {
	// Network config (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.UpstreamURL, "upstream", "u", "", "Voting server base URL")
	fs.StringVar(&cfg.ResultsPath, "results-path", "", "Results endpoint path")
	fs.StringVar(&cfg.VotePath, "vote-path", "", "Vote form action path")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on")

	// Page timing
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", 0, "Results refresh period")
	fs.DurationVar(&cfg.FadeDelay, "fade-delay", 0, "Delay before the banner fades")
	fs.DurationVar(&cfg.RemoveDelay, "remove-delay", 0, "Delay between banner fade and removal")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", 0, "Timeout of each results request")
	fs.BoolVar(&cfg.DiscardStale, "discard-stale", false, "Drop results responses older than the rendered one")

	fs.StringVar(&cfg.StaticDir, "static-dir", "", "Directory holding the wasm bundle")
	fs.StringSliceVar(&cfg.Candidates, "candidates", nil, "Candidates shown on the vote form")
	fs.StringSliceVar(&cfg.AllowedOrigins, "allowed-origins", nil, "Cross-origin pages allowed to call the relay")
	fs.StringVarP(&cfg.DatabasePath, "db", "d", "", "Upstream SQLite database file")

	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file")
}

// ParseFlags parses args and resolves the full configuration
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("chainvote", pflag.ContinueOnError)
	AddFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return Resolve(cfg)
}

// Resolve fills unset fields from .env, the environment, the config file
// and defaults, in that order of precedence after flags
func Resolve(cfg Config) (Config, error) {
	// A missing .env file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := fromEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CHAINVOTE_CONFIG")
	}
	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		merge(&cfg, file)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func fromEnv(cfg *Config) error {
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}

	envString(&cfg.UpstreamURL, "UPSTREAM_URL")
	envString(&cfg.ResultsPath, "RESULTS_PATH")
	envString(&cfg.VotePath, "VOTE_PATH")
	envString(&cfg.MetricsAddr, "METRICS_ADDR")
	envString(&cfg.StaticDir, "STATIC_DIR")
	envString(&cfg.DatabasePath, "DATABASE_PATH")
	envString(&cfg.LogFormat, "LOG_FORMAT")
	envString(&cfg.LogLevel, "LOG_LEVEL")

	for _, d := range []struct {
		dst *time.Duration
		key string
	}{
		{&cfg.RefreshInterval, "REFRESH_INTERVAL"},
		{&cfg.FadeDelay, "FADE_DELAY"},
		{&cfg.RemoveDelay, "REMOVE_DELAY"},
		{&cfg.FetchTimeout, "FETCH_TIMEOUT"},
	} {
		if err := envDuration(d.dst, d.key); err != nil {
			return err
		}
	}

	if !cfg.DiscardStale {
		if v := os.Getenv("DISCARD_STALE"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.New("invalid DISCARD_STALE env variable")
			}
			cfg.DiscardStale = b
		}
	}

	if len(cfg.Candidates) == 0 {
		if v := os.Getenv("CANDIDATES"); v != "" {
			cfg.Candidates = splitList(v)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
			cfg.AllowedOrigins = splitList(v)
		}
	}
	return nil
}

func envString(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

func envDuration(dst *time.Duration, key string) error {
	if *dst != 0 {
		return nil
	}
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// merge copies file values into fields still unset
func merge(cfg *Config, file Config) {
	if cfg.Port == 0 {
		cfg.Port = file.Port
	}
	for _, s := range []struct{ dst, src *string }{
		{&cfg.UpstreamURL, &file.UpstreamURL},
		{&cfg.ResultsPath, &file.ResultsPath},
		{&cfg.VotePath, &file.VotePath},
		{&cfg.MetricsAddr, &file.MetricsAddr},
		{&cfg.StaticDir, &file.StaticDir},
		{&cfg.DatabasePath, &file.DatabasePath},
		{&cfg.LogFormat, &file.LogFormat},
		{&cfg.LogLevel, &file.LogLevel},
	} {
		if *s.dst == "" {
			*s.dst = *s.src
		}
	}
	for _, d := range []struct{ dst, src *time.Duration }{
		{&cfg.RefreshInterval, &file.RefreshInterval},
		{&cfg.FadeDelay, &file.FadeDelay},
		{&cfg.RemoveDelay, &file.RemoveDelay},
		{&cfg.FetchTimeout, &file.FetchTimeout},
	} {
		if *d.dst == 0 {
			*d.dst = *d.src
		}
	}
	cfg.DiscardStale = cfg.DiscardStale || file.DiscardStale
	if len(cfg.Candidates) == 0 {
		cfg.Candidates = file.Candidates
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = file.AllowedOrigins
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = 3318
	}
	if cfg.ResultsPath == "" {
		cfg.ResultsPath = "/results-data"
	}
	if cfg.VotePath == "" {
		cfg.VotePath = "/vote"
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = 5 * time.Second
	}
	if cfg.FadeDelay == 0 {
		cfg.FadeDelay = 4 * time.Second
	}
	if cfg.RemoveDelay == 0 {
		cfg.RemoveDelay = 500 * time.Millisecond
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "static"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "database.db"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func (cfg Config) validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.RefreshInterval < 0 || cfg.FadeDelay < 0 || cfg.RemoveDelay < 0 || cfg.FetchTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q (use text or json)", cfg.LogFormat)
	}
	return nil
}

// RequireUpstream checks that commands talking to the voting server have
// its URL
func (cfg Config) RequireUpstream() error {
	if cfg.UpstreamURL == "" {
		return errors.New("upstream URL required (use -u or UPSTREAM_URL env)")
	}
	return nil
}
