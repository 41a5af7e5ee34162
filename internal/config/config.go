// README: Config loader; reads .env when present, then WANDER_* environment variables with defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// ImageConfig controls the image job poll loop.
type ImageConfig struct {
	StatusInterval time.Duration `env:"WANDER_IMAGE_STATUS_INTERVAL" envDefault:"2s"`
	// ResultInterval of zero means "derive from the store driver".
	ResultInterval    time.Duration `env:"WANDER_IMAGE_RESULT_INTERVAL" envDefault:"0s"`
	MaxResultAttempts int           `env:"WANDER_IMAGE_MAX_RESULT_ATTEMPTS" envDefault:"200"`
	JobTimeout        time.Duration `env:"WANDER_IMAGE_JOB_TIMEOUT" envDefault:"20m"`
}

type AIConfig struct {
	Provider    string  `env:"WANDER_AI_PROVIDER" envDefault:"groq"`
	GroqKey     string  `env:"GROQ_API_KEY"`
	GroqModel   string  `env:"WANDER_GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`
	GeminiKey   string  `env:"GEMINI_API_KEY"`
	GeminiModel string  `env:"WANDER_GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	Temperature float32 `env:"WANDER_AI_TEMPERATURE" envDefault:"0.5"`
}

type Config struct {
	HTTP struct {
		Addr string `env:"WANDER_HTTP_ADDR" envDefault:":4000"`
	}
	DB struct {
		DSN string `env:"WANDER_DB_DSN"`
	}
	Redis struct {
		Addr     string `env:"WANDER_REDIS_ADDR"`
		Password string `env:"WANDER_REDIS_PASSWORD"`
		DB       int    `env:"WANDER_REDIS_DB" envDefault:"0"`
	}
	Store struct {
		Driver string `env:"WANDER_STORE" envDefault:"memory"`
	}
	AI    AIConfig
	Horde struct {
		BaseURL     string `env:"WANDER_HORDE_URL" envDefault:"https://stablehorde.net/api"`
		APIKey      string `env:"WANDER_HORDE_API_KEY" envDefault:"0000000000"`
		ClientAgent string `env:"WANDER_HORDE_CLIENT_AGENT" envDefault:"wanderlust:1.0:unknown"`
	}
	Image ImageConfig
	Maps  struct {
		APIKey string `env:"GOOGLE_MAPS_API_KEY"`
	}
	Log struct {
		Level  string `env:"WANDER_LOG_LEVEL" envDefault:"info"`
		Format string `env:"WANDER_LOG_FORMAT" envDefault:"text"`
	}
	CORS struct {
		AllowOrigin string `env:"WANDER_CORS_ORIGIN" envDefault:"*"`
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return parse()
}

func parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if c.DB.DSN == "" {
			return errors.New("WANDER_DB_DSN is required when WANDER_STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.AI.Provider {
	case ProviderGroq:
		if c.AI.GroqKey == "" {
			return errors.New("GROQ_API_KEY is required for the groq provider")
		}
	case ProviderGemini:
		if c.AI.GeminiKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}

	if c.Image.StatusInterval <= 0 {
		return errors.New("WANDER_IMAGE_STATUS_INTERVAL must be positive")
	}
	if c.Image.MaxResultAttempts <= 0 {
		return errors.New("WANDER_IMAGE_MAX_RESULT_ATTEMPTS must be positive")
	}
	return nil
}

// ResultInterval returns the result-poll cadence: 5s when trips are persisted
// in Postgres, 3s for the in-memory store, unless overridden.
func (c Config) ResultInterval() time.Duration {
	if c.Image.ResultInterval > 0 {
		return c.Image.ResultInterval
	}
	if c.Store.Driver == StorePostgres {
		return 5 * time.Second
	}
	return 3 * time.Second
}
