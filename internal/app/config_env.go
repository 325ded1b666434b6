package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvToConfig fills unset fields of cfg from the environment. OPENAI_API_KEY
// is preferred over LLM_API_KEY for the credential.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.LLMAPIKey == "" {
		v := os.Getenv("OPENAI_API_KEY")
		if v == "" {
			v = os.Getenv("LLM_API_KEY")
		}
		cfg.LLMAPIKey = v
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = os.Getenv("SYSTEM_PROMPT")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.Getenv("CACHE_DIR")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	}
	if cfg.CacheMaxAge == 0 {
		if d, err := time.ParseDuration(os.Getenv("CACHE_MAX_AGE")); err == nil {
			cfg.CacheMaxAge = d
		}
	}
	if !cfg.Verbose {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("VERBOSE"))) {
		case "1", "true", "yes", "on":
			cfg.Verbose = true
		}
	}
}
