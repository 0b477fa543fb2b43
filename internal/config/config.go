package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Duration is a time.Duration that reads "20s"-style strings from JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// LLMConfig selects the chat completion backend.
type LLMConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
}

type Config struct {
	Addr     string `json:"addr"`
	LogLevel string `json:"log_level"`
	// Locale is the default card and guidance language for new drafts.
	Locale   string `json:"locale"`
	FontPath string `json:"font_path"`
	MockAI   bool   `json:"mock_ai"`

	LLM       LLMConfig `json:"llm"`
	AITimeout Duration  `json:"ai_timeout"`

	SessionTTL    Duration `json:"session_ttl"`
	CardOutputDir string   `json:"card_output_dir"`
	PromptsPath   string   `json:"prompts_path"`
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Locale:   "en",
		FontPath: "font.ttf",
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "deepseek-v3",
			BaseURL:  "https://api.qnaigc.com/v1",
		},
		AITimeout:   Duration(20 * time.Second),
		SessionTTL:  Duration(6 * time.Hour),
		PromptsPath: "data/prompts.csv",
	}
}

// Load starts from Default, applies the JSON file at path when path is
// non-empty, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Locale = getEnv("LOCALE", cfg.Locale)
	cfg.FontPath = getEnv("FONT_PATH", cfg.FontPath)
	cfg.LLM.Provider = getEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.CardOutputDir = getEnv("CARD_OUTPUT_DIR", cfg.CardOutputDir)
	cfg.PromptsPath = getEnv("PROMPTS_PATH", cfg.PromptsPath)

	if v := os.Getenv("MOCK_AI"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MOCK_AI: %w", err)
		}
		cfg.MockAI = b
	}
	for key, dst := range map[string]*Duration{
		"AI_TIMEOUT":  &cfg.AITimeout,
		"SESSION_TTL": &cfg.SessionTTL,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = Duration(d)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", c.Locale, err)
	}
	if c.AITimeout <= 0 {
		return errors.New("ai_timeout must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if !c.UseMock() {
		switch strings.ToLower(c.LLM.Provider) {
		case "openai", "deepseek":
		default:
			return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
		}
	}
	return nil
}

// UseMock reports whether guidance must run offline, either by request or
// because no API key is configured.
func (c Config) UseMock() bool {
	return c.MockAI || c.LLM.APIKey == ""
}
