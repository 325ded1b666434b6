package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperifyio/pagegrade/internal/analyze"
)

// Config holds runtime configuration shared by the CLI and the server.
type Config struct {
	// LLM
	LLMBaseURL   string
	LLMModel     string
	LLMAPIKey    string
	SystemPrompt string

	// Page fetch
	FetchTimeout    time.Duration
	FetchAttempts   int
	RedirectMaxHops int

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	// Server
	ListenAddr        string
	RateLimitPerSec   float64
	RateLimitBurst    int
	ServerReleaseMode bool

	Verbose bool
}

// Defaults used by the command-line flags and by ApplyFileConfig to tell an
// explicitly set flag from an untouched one.
const (
	DefaultModel           = analyze.DefaultModel
	DefaultFetchTimeout    = 15 * time.Second
	DefaultFetchAttempts   = 2
	DefaultRedirectMaxHops = 5
	DefaultListenAddr      = ":8080"
	DefaultRateLimitPerSec = 2.0
	DefaultRateLimitBurst  = 5
)

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		LLMModel:        DefaultModel,
		FetchTimeout:    DefaultFetchTimeout,
		FetchAttempts:   DefaultFetchAttempts,
		RedirectMaxHops: DefaultRedirectMaxHops,
		ListenAddr:      DefaultListenAddr,
		RateLimitPerSec: DefaultRateLimitPerSec,
		RateLimitBurst:  DefaultRateLimitBurst,
	}
}

// HasCredential reports whether a model API key is configured.
func (c Config) HasCredential() bool {
	return strings.TrimSpace(c.LLMAPIKey) != ""
}

// ValidateConfig performs minimal schema validation.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model must not be empty")
	}
	if cfg.FetchTimeout < 0 || cfg.FetchAttempts < 0 || cfg.RedirectMaxHops < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.RateLimitPerSec < 0 || cfg.RateLimitBurst < 0 {
		return errors.New("config: negative rate limit is not allowed")
	}
	return nil
}

// ApplyDefaults fills every zero-valued field that has a default.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if strings.TrimSpace(cfg.LLMModel) == "" {
		cfg.LLMModel = DefaultModel
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.FetchAttempts == 0 {
		cfg.FetchAttempts = DefaultFetchAttempts
	}
	if cfg.RedirectMaxHops == 0 {
		cfg.RedirectMaxHops = DefaultRedirectMaxHops
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.RateLimitPerSec == 0 {
		cfg.RateLimitPerSec = DefaultRateLimitPerSec
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = DefaultRateLimitBurst
	}
}

// ResolveConfig layers the environment, the optional config file and the
// defaults under the values already set in cfg (typically from flags), then
// validates the result.
func ResolveConfig(cfg Config, configPath string) (Config, error) {
	ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := LoadConfigFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", configPath, err)
		}
		if err := ApplyFileConfig(&cfg, fc); err != nil {
			return cfg, err
		}
	}
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
