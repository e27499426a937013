package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSheetName       = "Your Workout Log"
	DefaultWorksheet       = "Sheet1"
	DefaultRefreshInterval = 60 * time.Second
	DefaultPort            = 8501

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// spreadsheet
	SheetName         string `toml:"sheet_name"`
	Worksheet         string `toml:"worksheet"`
	SourceFile        string `toml:"source_file"`
	CredentialsFile   string `toml:"credentials_file"`
	CredentialsSecret string `toml:"credentials_secret"`
	GCPProject        string `toml:"gcp_project"`
	// seconds
	RefreshInterval int `toml:"refresh_interval"`
	// cache
	CacheBackend  string `toml:"cache_backend"`
	MemoryCacheMB int    `toml:"memory_cache_mb"`
	RedisHost     string `toml:"redis_host"`
	RedisPort     string `toml:"redis_port"`
	// web
	RefreshRateLimitPerMin int      `toml:"refresh_rate_limit_per_min"`
	AllowedOrigins         []string `toml:"allowed_origins"`
	ShowErrorDetails       bool     `toml:"show_error_details"`
	MCPEnabled             bool     `toml:"mcp_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the section of the TOML file for the given env, then applies defaults
// and the environment overrides.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config %s has no section for env: %s", path, env)
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}

	cfg.applyDefaults()
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.SheetName == "" {
		c.SheetName = DefaultSheetName
	}
	if c.Worksheet == "" {
		c.Worksheet = DefaultWorksheet
	}
	if c.CacheBackend == "" {
		c.CacheBackend = CacheBackendMemory
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
}

// applyEnv lets GOOGLE_SHEET_NAME, GOOGLE_SHEET_WORKSHEET and REFRESH_INTERVAL win over the file.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("GOOGLE_SHEET_NAME"); ok && v != "" {
		c.SheetName = v
	}
	if v, ok := lookup("GOOGLE_SHEET_WORKSHEET"); ok && v != "" {
		c.Worksheet = v
	}
	if v, ok := lookup("REFRESH_INTERVAL"); ok && v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			log.Warnf("invalid REFRESH_INTERVAL [%s], keeping %d: %s", v, c.RefreshInterval, err)
		} else {
			c.RefreshInterval = seconds
		}
	}
}

// Validate checks existence only. A non-positive refresh interval falls back to the default.
func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = int(DefaultRefreshInterval.Seconds())
	}

	switch c.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("cache backend %s needs redis_host", CacheBackendRedis)
		}
	default:
		return fmt.Errorf("unknown cache backend: %s", c.CacheBackend)
	}

	if c.SourceFile != "" {
		if _, err := os.Stat(c.SourceFile); err != nil {
			return fmt.Errorf("source file: %w", err)
		}
	}

	return nil
}

func (c *Config) RefreshDuration() time.Duration {
	if c.RefreshInterval <= 0 {
		return DefaultRefreshInterval
	}
	return time.Duration(c.RefreshInterval) * time.Second
}

func (c *Config) MemoryCacheBytes() int {
	if c.MemoryCacheMB <= 0 {
		return 0
	}
	return c.MemoryCacheMB * 1024 * 1024
}
