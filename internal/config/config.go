package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL"`
	FrontendURL string `envconfig:"FRONTEND_URL"`

	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`

	AlphaVantageAPIKey string `envconfig:"ALPHAVANTAGE_API_KEY"`
	FinnhubAPIKey      string `envconfig:"FINNHUB_API_KEY"`
	MarketauxAPIKey    string `envconfig:"MARKETAUX_API_KEY"`

	RefreshInterval time.Duration `envconfig:"NEWS_REFRESH_INTERVAL" default:"4h"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
