package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Durations use Go
// syntax such as "15s" or "24h".
type FileConfig struct {
	LLM struct {
		BaseURL      string `yaml:"base" json:"base"`
		Model        string `yaml:"model" json:"model"`
		APIKey       string `yaml:"key" json:"key"`
		SystemPrompt string `yaml:"systemPrompt" json:"systemPrompt"`
	} `yaml:"llm" json:"llm"`

	Fetch struct {
		Timeout      string `yaml:"timeout" json:"timeout"`
		Attempts     int    `yaml:"attempts" json:"attempts"`
		RedirectHops int    `yaml:"redirectHops" json:"redirectHops"`
	} `yaml:"fetch" json:"fetch"`

	Cache struct {
		Dir         string `yaml:"dir" json:"dir"`
		MaxAge      string `yaml:"maxAge" json:"maxAge"`
		Clear       bool   `yaml:"clear" json:"clear"`
		StrictPerms bool   `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	Server struct {
		Listen    string  `yaml:"listen" json:"listen"`
		RateLimit float64 `yaml:"rateLimit" json:"rateLimit"`
		Burst     int     `yaml:"burst" json:"burst"`
		Release   bool    `yaml:"release" json:"release"`
	} `yaml:"server" json:"server"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig, choosing by extension and
// trying YAML then JSON otherwise.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays file values onto cfg wherever cfg still holds the
// zero value or the flag default, so explicit flags win over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if (cfg.LLMModel == "" || cfg.LLMModel == DefaultModel) && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.SystemPrompt == "" && fc.LLM.SystemPrompt != "" {
		cfg.SystemPrompt = fc.LLM.SystemPrompt
	}

	if fc.Fetch.Timeout != "" && (cfg.FetchTimeout == 0 || cfg.FetchTimeout == DefaultFetchTimeout) {
		d, err := time.ParseDuration(fc.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("fetch.timeout: %w", err)
		}
		cfg.FetchTimeout = d
	}
	if (cfg.FetchAttempts == 0 || cfg.FetchAttempts == DefaultFetchAttempts) && fc.Fetch.Attempts > 0 {
		cfg.FetchAttempts = fc.Fetch.Attempts
	}
	if (cfg.RedirectMaxHops == 0 || cfg.RedirectMaxHops == DefaultRedirectMaxHops) && fc.Fetch.RedirectHops > 0 {
		cfg.RedirectMaxHops = fc.Fetch.RedirectHops
	}

	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if fc.Cache.MaxAge != "" && cfg.CacheMaxAge == 0 {
		d, err := time.ParseDuration(fc.Cache.MaxAge)
		if err != nil {
			return fmt.Errorf("cache.maxAge: %w", err)
		}
		cfg.CacheMaxAge = d
	}
	cfg.CacheClear = cfg.CacheClear || fc.Cache.Clear
	cfg.CacheStrictPerms = cfg.CacheStrictPerms || fc.Cache.StrictPerms

	if (cfg.ListenAddr == "" || cfg.ListenAddr == DefaultListenAddr) && fc.Server.Listen != "" {
		cfg.ListenAddr = fc.Server.Listen
	}
	if (cfg.RateLimitPerSec == 0 || cfg.RateLimitPerSec == DefaultRateLimitPerSec) && fc.Server.RateLimit > 0 {
		cfg.RateLimitPerSec = fc.Server.RateLimit
	}
	if (cfg.RateLimitBurst == 0 || cfg.RateLimitBurst == DefaultRateLimitBurst) && fc.Server.Burst > 0 {
		cfg.RateLimitBurst = fc.Server.Burst
	}
	cfg.ServerReleaseMode = cfg.ServerReleaseMode || fc.Server.Release
	cfg.Verbose = cfg.Verbose || fc.Verbose
	return nil
}
