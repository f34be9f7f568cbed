// Package config loads and validates the process configuration from the
// environment. All secrets are read here once and injected explicitly; no
// component reads ambient state at request time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the full server configuration.
type Config struct {
	Env  string
	Port string `validate:"required"`

	// Token is the shared secret callers must present as the `t` query
	// parameter.
	Token string `validate:"required"`

	Provider string `validate:"required,oneof=openai gemini"`
	APIKey   string
	Model    string
	BaseURL  string

	MaxAttempts int `validate:"min=1,max=5"`

	// RulesFile optionally points to a YAML lexicon overriding the built-in
	// banned word lists.
	RulesFile string

	AllowedOrigins []string
}

// Load reads .env.local (if present), the environment, and validates the
// result. A missing upstream API key is not fatal here: the server starts
// degraded and the story route reports the misconfiguration.
func Load() (*Config, error) {
	godotenv.Load(".env.local")

	cfg := &Config{
		Env:       os.Getenv("ENV"),
		Port:      envOr("PORT", "8080"),
		Token:     os.Getenv("FAIRYKIPP_TOKEN"),
		Provider:  envOr("LLM_PROVIDER", "openai"),
		Model:     os.Getenv("LLM_MODEL"),
		BaseURL:   os.Getenv("LLM_BASE_URL"),
		RulesFile: os.Getenv("FAIRYKIPP_RULES_FILE"),
	}

	switch cfg.Provider {
	case "gemini":
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg.MaxAttempts = 2
	if raw := os.Getenv("MAX_ATTEMPTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing MAX_ATTEMPTS: %w", err)
		}
		cfg.MaxAttempts = n
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
