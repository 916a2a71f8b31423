package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `validate:"required"`

	// Identity provider
	AuthDomain       string `validate:"required_if=RequireAuth true"`
	AuthClientID     string `validate:"required_if=RequireAuth true"`
	AuthClientSecret string
	AuthAudience     string
	AuthCallbackURL  string `validate:"omitempty,url"`
	AppOrigin        string `validate:"required,url"`
	SessionSecret    string `validate:"required,min=16"`
	SessionTTL       time.Duration

	// Chat function
	ChatAPIEndpoint string `validate:"required,url"`
	RequireAuth     bool
	Responder       string `validate:"oneof=echo ollama"`
	OllamaURL       string `validate:"omitempty,url"`
	OllamaModel     string
	RelayTimeout    time.Duration

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisAddr  string
	RateLimit  int `validate:"gte=0"`
	RateWindow time.Duration

	LogDir string
}

// LoadConfig reads .env (when present) and the process environment and
// validates everything the server needs.
func LoadConfig() (Config, error) {
	cfg, err := load()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadClientConfig is LoadConfig for the terminal client, which only talks to
// the chat function and never signs anyone in.
func LoadClientConfig() (Config, error) {
	cfg, err := load()
	if err != nil {
		return Config{}, err
	}
	if err := validator.New().StructPartial(cfg, "ChatAPIEndpoint"); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func load() (Config, error) {
	_ = godotenv.Load()

	port := getEnv("PORT", "8000")
	origin := strings.TrimRight(getEnv("APP_ORIGIN", "http://localhost:"+port), "/")

	requireAuth, err := strconv.ParseBool(getEnv("CHAT_REQUIRE_AUTH", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CHAT_REQUIRE_AUTH: %w", err)
	}
	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT", "20"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	rateWindow, err := time.ParseDuration(getEnv("RATE_WINDOW", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_WINDOW: %w", err)
	}
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	relayTimeout, err := time.ParseDuration(getEnv("RELAY_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RELAY_TIMEOUT: %w", err)
	}

	cfg := Config{
		Port:             port,
		AuthDomain:       getEnv("AUTH0_DOMAIN", ""),
		AuthClientID:     getEnv("AUTH0_CLIENT_ID", ""),
		AuthClientSecret: getEnv("AUTH0_CLIENT_SECRET", ""),
		AuthAudience:     getEnv("AUTH0_AUDIENCE", ""),
		AuthCallbackURL:  getEnv("AUTH0_CALLBACK_URL", origin+"/auth/callback"),
		AppOrigin:        origin,
		SessionSecret:    getEnv("SESSION_SECRET", ""),
		SessionTTL:       sessionTTL,
		ChatAPIEndpoint:  getEnv("CHAT_API_ENDPOINT", "http://127.0.0.1:"+port+"/.netlify/functions/chat"),
		RequireAuth:      requireAuth,
		Responder:        getEnv("RESPONDER", "echo"),
		OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434/api"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama3"),
		RelayTimeout:     relayTimeout,
		DBUser:           getEnv("DB_USER", ""),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBHost:           getEnv("DB_HOST", ""),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBName:           getEnv("DB_NAME", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RateLimit:        rateLimit,
		RateWindow:       rateWindow,
		LogDir:           getEnv("LOG_DIR", "./logs"),
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DatabaseEnabled reports whether a transcript database has been configured.
func (c Config) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

func (c Config) RateLimitEnabled() bool {
	return c.RedisAddr != "" && c.RateLimit > 0
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return fallback
}
