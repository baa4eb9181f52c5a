package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHOPFLOOR_"

// DefaultPublicKey is the RSA key the MES backend expects login passwords to
// be encrypted with.
const DefaultPublicKey = `MFwwDQYJKoZIhvcNAQEBBQADSwAwSAJBAKoR8mX0rGKLqzcWmOzbfj64K8ZIgOdH
nzkXSOVOZbFu/TJhZ7rFAN+eaGkl3C4buccQd/EjEsj9ir7ijT7h96MCAwEAAQ==`

type Config struct {
	API struct {
		BaseURL    string `yaml:"base_url"`
		TimeoutMs  int    `yaml:"timeout_ms"`
		MaxRetries int    `yaml:"max_retries"`
		// RateLimit caps outgoing requests per second; 0 disables it.
		RateLimit float64 `yaml:"rate_limit"`
	} `yaml:"api"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"db"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`

	Submit struct {
		ThrottleMs int `yaml:"throttle_ms"`
	} `yaml:"submit"`

	Auth struct {
		PublicKey string `yaml:"public_key"`
	} `yaml:"auth"`

	Org struct {
		SysOrgCode string `yaml:"sys_org_code"`
	} `yaml:"org"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

// Default returns a Config with every key set to its built-in value.
func Default() *Config {
	var cfg Config
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.API.TimeoutMs = 30000
	cfg.API.MaxRetries = 1
	cfg.Database.Path = DefaultDBPath()
	cfg.Cache.TTLSeconds = 300
	cfg.Submit.ThrottleMs = 3000
	cfg.Auth.PublicKey = DefaultPublicKey
	cfg.Org.SysOrgCode = "30"
	cfg.Log.Level = "info"
	return &cfg
}

// DefaultDBPath returns ~/.shopfloor/shopfloor.db, or a relative path when
// the home directory cannot be resolved.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".shopfloor", "shopfloor.db")
	}
	return filepath.Join(home, ".shopfloor", "shopfloor.db")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".shopfloor", "config.yaml")
	}
	return filepath.Join(home, ".shopfloor", "config.yaml")
}

// Load builds the configuration: defaults, then the YAML file at path (a
// missing file is not an error), then SHOPFLOOR_* environment overrides.
// A .env file in the working directory is loaded first so both ${VAR}
// placeholders in the YAML and the overrides can see its values; variables
// already set in the environment win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Support ${ENV_VAR} placeholders in YAML config.
		data = []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.TimeoutMs <= 0 {
		return fmt.Errorf("api.timeout_ms must be positive, got %d", c.API.TimeoutMs)
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must not be negative, got %d", c.API.MaxRetries)
	}
	if c.Submit.ThrottleMs < 0 {
		return fmt.Errorf("submit.throttle_ms must not be negative, got %d", c.Submit.ThrottleMs)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("db.path is required")
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}

func (c *Config) ThrottleWindow() time.Duration {
	return time.Duration(c.Submit.ThrottleMs) * time.Millisecond
}

// CacheTTL is zero when caching is disabled.
func (c *Config) CacheTTL() time.Duration {
	if c.Redis.Address == "" || c.Cache.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func applyEnv(cfg *Config) {
	setString(&cfg.API.BaseURL, "API_BASE_URL")
	setInt(&cfg.API.TimeoutMs, "API_TIMEOUT_MS", 1)
	setInt(&cfg.API.MaxRetries, "API_MAX_RETRIES", 0)
	if v := os.Getenv(EnvPrefix + "API_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.API.RateLimit = f
		}
	}
	setString(&cfg.Database.Path, "DB_PATH")
	setString(&cfg.Redis.Address, "REDIS_ADDRESS")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB", 0)
	setInt(&cfg.Cache.TTLSeconds, "CACHE_TTL_SECONDS", 0)
	setInt(&cfg.Submit.ThrottleMs, "SUBMIT_THROTTLE_MS", 0)
	setString(&cfg.Auth.PublicKey, "AUTH_PUBLIC_KEY")
	setString(&cfg.Org.SysOrgCode, "ORG_SYS_ORG_CODE")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Metrics.Textfile, "METRICS_TEXTFILE")
}

func setString(dst *string, name string) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		*dst = v
	}
}

// setInt ignores values that do not parse or fall below min.
func setInt(dst *int, name string, min int) {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n >= min {
		*dst = n
	}
}
