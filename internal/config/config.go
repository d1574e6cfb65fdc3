package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Addr     string `yaml:"addr"`
	GRPCPort int    `yaml:"grpc_port"`
	DBPath   string `yaml:"db_path"`
	Debug    bool   `yaml:"debug"`
	MockMode bool   `yaml:"mock"`

	Controller ControllerConfig `yaml:"controller"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	Web        WebConfig        `yaml:"web"`

	// PollInterval is how often stations are refreshed for the websocket feed.
	PollInterval     time.Duration `yaml:"poll_interval"`
	PersistSnapshots bool          `yaml:"persist_snapshots"`
	// SnapshotRetention bounds how long rate snapshots are kept.
	SnapshotRetention time.Duration `yaml:"snapshot_retention"`
	// MockScenario sizes the synthetic controller: default, crowded or minimal.
	MockScenario string `yaml:"mock_scenario"`
	MockSeed     int64  `yaml:"mock_seed"`
	// OUIFile is an optional "XX:XX:XX Vendor" text file for vendor lookups.
	OUIFile string `yaml:"oui_file"`
}

// ControllerConfig describes the wireless controller API.
type ControllerConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Site              string        `yaml:"site"`
	APIToken          string        `yaml:"api_token"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

// AuthConfig enables HTTP basic auth when PasswordHash is set.
type AuthConfig struct {
	Username string `yaml:"username"`
	// PasswordHash is a bcrypt hash.
	PasswordHash string `yaml:"password_hash"`
}

// LogConfig controls the optional rotating log file.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// WebConfig tunes the HTTP surface.
type WebConfig struct {
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
	// MutationsPerMinute caps write requests per client address.
	MutationsPerMinute int `yaml:"mutations_per_minute"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		GRPCPort: 9000,
		DBPath:   getDefaultDBPath(),
		Controller: ControllerConfig{
			Site:              "default",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Auth: AuthConfig{Username: "admin"},
		Log: LogConfig{
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
		Web: WebConfig{
			BroadcastInterval: 5 * time.Second,
			AllowedOrigins: []string{
				"http://localhost:8080",
				"http://127.0.0.1:8080",
				"http://[::1]:8080",
			},
			MutationsPerMinute: 30,
		},
		PollInterval:      30 * time.Second,
		PersistSnapshots:  true,
		SnapshotRetention: 7 * 24 * time.Hour,
		MockScenario:      "default",
		MockSeed:          1,
	}
}

// Load builds the configuration from defaults, an optional YAML file
// (-config or WDASH_CONFIG), WDASH_* environment variables and finally the
// command line flags in args, each layer overriding the previous one.
func Load(args []string) (*Config, error) {
	cfg := Default()

	path := getEnv("WDASH_CONFIG", "")
	if p, ok := configFlag(args); ok {
		path = p
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	fs := flag.NewFlagSet("wdash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("config", path, "Path to YAML configuration file")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	fs.IntVar(&cfg.GRPCPort, "grpc", cfg.GRPCPort, "gRPC health server port (0 disables)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")
	fs.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Serve synthetic data from an in-process controller")
	fs.StringVar(&cfg.Controller.BaseURL, "controller", cfg.Controller.BaseURL, "Controller API base URL")
	fs.StringVar(&cfg.Controller.Site, "site", cfg.Controller.Site, "Controller site name")
	fs.DurationVar(&cfg.Controller.Timeout, "controller-timeout", cfg.Controller.Timeout, "Controller request timeout")
	fs.Float64Var(&cfg.Controller.RequestsPerSecond, "controller-rps", cfg.Controller.RequestsPerSecond, "Outbound request rate limit")
	fs.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "Station poll interval")
	fs.BoolVar(&cfg.PersistSnapshots, "persist", cfg.PersistSnapshots, "Persist station rate snapshots")
	fs.DurationVar(&cfg.SnapshotRetention, "retention", cfg.SnapshotRetention, "How long rate snapshots are kept")
	fs.StringVar(&cfg.MockScenario, "mock-scenario", cfg.MockScenario, "Mock controller scenario (default, crowded, minimal)")
	fs.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "Rotating log file (empty for stdout only)")
	fs.StringVar(&cfg.OUIFile, "oui", cfg.OUIFile, "OUI vendor text file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Controller.BaseURL == "" && !c.MockMode {
		errs = append(errs, errors.New("controller base URL is required unless -mock is set"))
	}
	if c.Controller.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("controller requests per second must be positive, got %v", c.Controller.RequestsPerSecond))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %s", c.PollInterval))
	}
	if c.Web.BroadcastInterval <= 0 {
		errs = append(errs, fmt.Errorf("broadcast interval must be positive, got %s", c.Web.BroadcastInterval))
	}
	if c.SnapshotRetention <= 0 {
		errs = append(errs, fmt.Errorf("snapshot retention must be positive, got %s", c.SnapshotRetention))
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("grpc port out of range: %d", c.GRPCPort))
	}
	return errors.Join(errs...)
}

// AuthEnabled reports whether basic auth protects the API.
func (c *Config) AuthEnabled() bool {
	return c.Auth.PasswordHash != ""
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = getEnv("WDASH_ADDR", c.Addr)
	c.GRPCPort = getEnvInt("WDASH_GRPC", c.GRPCPort)
	c.DBPath = getEnv("WDASH_DB", c.DBPath)
	c.Debug = getEnvBool("WDASH_DEBUG", c.Debug)
	c.MockMode = getEnvBool("WDASH_MOCK", c.MockMode)
	c.Controller.BaseURL = getEnv("WDASH_CONTROLLER_URL", c.Controller.BaseURL)
	c.Controller.Site = getEnv("WDASH_CONTROLLER_SITE", c.Controller.Site)
	c.Controller.APIToken = getEnv("WDASH_CONTROLLER_TOKEN", c.Controller.APIToken)
	c.Controller.Timeout = getEnvDuration("WDASH_CONTROLLER_TIMEOUT", c.Controller.Timeout)
	c.Controller.RequestsPerSecond = getEnvFloat("WDASH_CONTROLLER_RPS", c.Controller.RequestsPerSecond)
	c.Auth.Username = getEnv("WDASH_ADMIN_USER", c.Auth.Username)
	c.Auth.PasswordHash = getEnv("WDASH_ADMIN_HASH", c.Auth.PasswordHash)
	c.Log.File = getEnv("WDASH_LOG_FILE", c.Log.File)
	c.PollInterval = getEnvDuration("WDASH_POLL", c.PollInterval)
	c.PersistSnapshots = getEnvBool("WDASH_PERSIST", c.PersistSnapshots)
	c.SnapshotRetention = getEnvDuration("WDASH_RETENTION", c.SnapshotRetention)
	c.MockScenario = getEnv("WDASH_MOCK_SCENARIO", c.MockScenario)
	c.OUIFile = getEnv("WDASH_OUI_FILE", c.OUIFile)
	if origins := getEnv("WDASH_ALLOWED_ORIGINS", ""); origins != "" {
		c.Web.AllowedOrigins = splitList(origins)
	}
}

// configFlag finds -config before the full flag set is parsed, so the file
// layer can sit underneath env and flags.
func configFlag(args []string) (string, bool) {
	for i, a := range args {
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in the user's home
// directory, creating the directory if needed.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("could not get user home directory, using current dir", "error", err)
		return "wdash.db"
	}

	dir := filepath.Join(home, ".wdash")
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Warn("could not create .wdash directory, using current dir", "error", err)
		return "wdash.db"
	}

	return filepath.Join(dir, "wdash.db")
}
