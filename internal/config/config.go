// Package config loads cv-coach settings from defaults, an optional config file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/cv-coach/internal/extraction"
	"github.com/jonathan/cv-coach/internal/llm"
	"github.com/jonathan/cv-coach/internal/sections"
	"github.com/jonathan/cv-coach/internal/server/ratelimit"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CV_COACH_MAX_UPLOAD_BYTES.
const EnvPrefix = "CV_COACH"

// Config is the full application configuration.
type Config struct {
	Port           int      `mapstructure:"port"`
	APIKey         string   `mapstructure:"api_key"`
	ModelTier      string   `mapstructure:"model_tier"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`

	// Parsing
	RejectEmptyResult bool     `mapstructure:"reject_empty_result"` // 422 when no section has entries
	HeaderStrategy    string   `mapstructure:"header_strategy"`     // "pattern" or "token"
	SplitBullets      bool     `mapstructure:"split_bullets"`       // split entries on "-" lines too
	Accept            []string `mapstructure:"accept"`              // document kinds accepted by /parse-cv

	// Logging
	LogJSON bool `mapstructure:"log_json"`
	Debug   bool `mapstructure:"debug"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// AI
	AITimeout    time.Duration `mapstructure:"ai_timeout"`
	AIMaxRetries int           `mapstructure:"ai_max_retries"`
}

// RateLimitConfig mirrors ratelimit.Config in a file/env friendly shape.
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DefaultLimit  int           `mapstructure:"default_limit"`
	DefaultWindow time.Duration `mapstructure:"default_window"`
	Whitelist     []string      `mapstructure:"whitelist"`
	Blacklist     []string      `mapstructure:"blacklist"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	kinds := make([]string, len(extraction.AllKinds))
	for i, k := range extraction.AllKinds {
		kinds[i] = string(k)
	}

	return Config{
		Port:              8080,
		ModelTier:         string(llm.TierStandard),
		AllowedOrigins:    []string{"http://localhost:5173", "http://localhost:3000"},
		MaxUploadBytes:    10 << 20,
		RejectEmptyResult: true,
		HeaderStrategy:    string(sections.StrategyPattern),
		Accept:            kinds,
		RateLimit: RateLimitConfig{
			Enabled:       true,
			DefaultLimit:  300,
			DefaultWindow: time.Minute,
		},
		AITimeout:    90 * time.Second,
		AIMaxRetries: 2,
	}
}

// NewViper returns a viper instance with defaults and environment bindings in
// place. Callers may bind command line flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()

	v.SetDefault("port", d.Port)
	v.SetDefault("api_key", "")
	v.SetDefault("model_tier", d.ModelTier)
	v.SetDefault("allowed_origins", d.AllowedOrigins)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("reject_empty_result", d.RejectEmptyResult)
	v.SetDefault("header_strategy", d.HeaderStrategy)
	v.SetDefault("split_bullets", d.SplitBullets)
	v.SetDefault("accept", d.Accept)
	v.SetDefault("log_json", d.LogJSON)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.default_limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate_limit.default_window", d.RateLimit.DefaultWindow)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})
	v.SetDefault("ai_timeout", d.AITimeout)
	v.SetDefault("ai_max_retries", d.AIMaxRetries)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional names used by the frontend and hosting platforms.
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")

	return v
}

// Load reads the optional config file at path into v and decodes the result.
// An empty path skips the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.HeaderStrategy = strings.ToLower(strings.TrimSpace(cfg.HeaderStrategy))
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("'port' must be between 1 and 65535, got %d", c.Port))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("'max_upload_bytes' must be positive"))
	}
	switch sections.Strategy(c.HeaderStrategy) {
	case sections.StrategyPattern, sections.StrategyToken:
	default:
		errs = append(errs, fmt.Errorf("'header_strategy' must be %q or %q, got %q",
			sections.StrategyPattern, sections.StrategyToken, c.HeaderStrategy))
	}
	switch llm.ModelTier(c.ModelTier) {
	case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
	default:
		errs = append(errs, fmt.Errorf("'model_tier' must be lite, standard or advanced, got %q", c.ModelTier))
	}
	if len(c.Accept) == 0 {
		errs = append(errs, fmt.Errorf("'accept' must list at least one document kind"))
	} else if _, err := extraction.ParseKinds(c.Accept); err != nil {
		errs = append(errs, fmt.Errorf("'accept': %w", err))
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit <= 0 || c.RateLimit.DefaultWindow <= 0) {
		errs = append(errs, fmt.Errorf("'rate_limit' default limit and window must be positive"))
	}
	if c.AIMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("'ai_max_retries' must be non-negative"))
	}
	if c.AITimeout < 0 {
		errs = append(errs, fmt.Errorf("'ai_timeout' must be non-negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config error: %w", errors.Join(errs...))
	}
	return nil
}

// AcceptedKinds returns Accept as extraction kinds. Call Validate first.
func (c *Config) AcceptedKinds() []extraction.Kind {
	kinds, _ := extraction.ParseKinds(c.Accept)
	return kinds
}

// LLMConfig builds the model configuration for the AI client.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Timeout = c.AITimeout
	cfg.MaxRetries = c.AIMaxRetries
	return cfg
}

// RateLimiterConfig builds the limiter configuration with the default endpoint table.
func (c *Config) RateLimiterConfig() *ratelimit.Config {
	rl := ratelimit.DefaultConfig()
	rl.Enabled = c.RateLimit.Enabled
	rl.DefaultLimit = c.RateLimit.DefaultLimit
	rl.DefaultWindow = c.RateLimit.DefaultWindow
	rl.Whitelist = ratelimit.ParseIPList(c.RateLimit.Whitelist)
	rl.Blacklist = ratelimit.ParseIPList(c.RateLimit.Blacklist)
	return rl
}
