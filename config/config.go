/* config.go
 * Loads the application configuration from the environment, and a .env file if one exists
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bracket-pool/api/external"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	MongoURI         string `validate:"required"`
	DBName           string `validate:"required"`
	Season           string `validate:"required,numeric,len=4"`
	DiscordProdToken string
	DiscordBetaToken string
	HTTPAddr         string `validate:"required"`
	LogLevel         string `validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat        string `validate:"oneof=text json"`
	NCAABaseURL      string `validate:"required,url"`
	// TournamentDays is a comma separated list of YYYY-MM-DD game days
	TournamentDays     string        `validate:"required"`
	ResultsTTL         time.Duration `validate:"gt=0"`
	ScoreboardCacheTTL time.Duration `validate:"gt=0"`
	UpstreamRPS        float64       `validate:"gt=0"`
	UpstreamRetries    int           `validate:"min=0,max=10"`
	RankStyle          string        `validate:"oneof=dense competition"`
	WebhookSecret      string

	days []time.Time
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:         getEnv("MONGO_URI", ""),
		DBName:           getEnv("DB_NAME", "bracket_pool"),
		Season:           getEnv("SEASON", ""),
		DiscordProdToken: getEnv("DISCORD_PROD_TOKEN", ""),
		DiscordBetaToken: getEnv("DISCORD_BETA_TOKEN", ""),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		NCAABaseURL:      getEnv("NCAA_BASE_URL", external.DefaultBaseURL),
		TournamentDays:   getEnv("TOURNAMENT_DAYS", ""),
		RankStyle:        getEnv("RANK_STYLE", "dense"),
		WebhookSecret:    getEnv("WEBHOOK_SECRET", ""),
	}

	var err error
	if cfg.ResultsTTL, err = getDuration("RESULTS_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ScoreboardCacheTTL, err = getDuration("SCOREBOARD_CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.UpstreamRPS, err = getFloat("UPSTREAM_RPS", 2); err != nil {
		return nil, err
	}
	retries, err := getFloat("UPSTREAM_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	cfg.UpstreamRetries = int(retries)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags and parses the tournament days
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	days, err := external.ParseDays(c.TournamentDays)
	if err != nil {
		return fmt.Errorf("invalid TOURNAMENT_DAYS: %w", err)
	}
	if len(days) == 0 {
		return fmt.Errorf("invalid TOURNAMENT_DAYS: no days listed")
	}
	c.days = days
	return nil
}

// Days returns the parsed tournament days, Validate must have succeeded
func (c *Config) Days() []time.Time {
	return c.days
}

// DiscordToken returns the production or beta bot token
func (c *Config) DiscordToken(beta bool) string {
	if beta {
		return c.DiscordBetaToken
	}
	return c.DiscordProdToken
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return f, nil
}
