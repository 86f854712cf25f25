package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultPort        = 8080
	DefaultAPIBaseURL  = "https://musicthread.app"
	DefaultSiteBaseURL = "https://musicthread.app"
	DefaultFeedBaseURL = "https://feed.musicthread.app"
)

type Config struct {
	Port        int    `yaml:"port" validate:"min=1,max=65535"`
	APIBaseURL  string `yaml:"api_base_url" validate:"required,http_url"`
	SiteBaseURL string `yaml:"site_base_url" validate:"required,http_url"` // human-facing thread/link pages
	FeedBaseURL string `yaml:"feed_base_url" validate:"required,http_url"` // canonical feed URLs (rel="self", feed id)

	// status for paths that are not /thread/<key>, older deployments answered 400
	InvalidPathStatus int `yaml:"invalid_path_status" validate:"oneof=400 404"`
	// run link descriptions through bluemonday before embedding them in entry content
	SanitizeDescriptions bool `yaml:"sanitize_descriptions"`

	SecureHeaders      bool     `yaml:"secure_headers"` // adds HSTS, enable only behind TLS
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	MetricsEnabled     bool     `yaml:"metrics_enabled"`

	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"min=0"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout" validate:"min=0"` // 0 keeps the transport default

	RateLimit RateLimit `yaml:"rate_limit"`

	Log Log `yaml:"log"`
}

// RateLimit bounds feed requests per client. Every feed request costs one
// upstream call.
type RateLimit struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerMinute float64 `yaml:"requests_per_minute" validate:"gt=0"`
	Burst             int     `yaml:"burst" validate:"min=1"`
	// use X-Forwarded-For instead of the peer address, only behind a proxy
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

func Default() *Config {
	return &Config{
		Port:               DefaultPort,
		APIBaseURL:         DefaultAPIBaseURL,
		SiteBaseURL:        DefaultSiteBaseURL,
		FeedBaseURL:        DefaultFeedBaseURL,
		InvalidPathStatus:  404,
		CORSAllowedOrigins: []string{"*"},
		MetricsEnabled:     true,
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       10 * time.Second,
		RateLimit: RateLimit{
			Enabled:           true,
			RequestsPerMinute: 60,
			Burst:             30,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the yaml file at configPath on top of Default(), applies
// environment overrides and validates the result. An empty configPath skips
// the file.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		configFile, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("can't read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(configFile, cfg); err != nil {
			return nil, fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored, existing variables are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("can't load env file %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: must be an integer", port)
		}
		c.Port = p
	}
	if v := os.Getenv("API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
