package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/srgjo27/ticketing_client/internal/platform/database"
)

type Config struct {
	Env         string
	APIBaseURL  string
	APIToken    string
	HTTPTimeout time.Duration
	Lang        string

	RedisAddr     string
	RedisPassword string
	TokenKey      string

	DB database.Config

	KafkaBrokers []string
	KafkaTopic   string

	PollInterval    time.Duration
	PollMaxAttempts int
	SuccessDelay    time.Duration
	ReservationTTL  time.Duration
	SweepInterval   time.Duration

	StatusAddr string
}

// Load reads .env when present and then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Env:         getenv("APP_ENV", "prod"),
		APIBaseURL:  strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8080/api"), "/"),
		APIToken:    os.Getenv("API_TOKEN"),
		HTTPTimeout: envDur("HTTP_TIMEOUT", 15*time.Second),
		Lang:        envLang("APP_LANG", "vi"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		TokenKey:      getenv("TOKEN_KEY", "ticketing:auth:token"),

		DB: database.Config{
			Host:     os.Getenv("DB_HOST"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getenv("DB_NAME", "ticketing_client"),
		},

		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "checkout.events"),

		PollInterval:    envDur("POLL_INTERVAL", 3*time.Second),
		PollMaxAttempts: envInt("POLL_MAX_ATTEMPTS", 100),
		SuccessDelay:    envDur("PAYMENT_SUCCESS_DELAY", 1500*time.Millisecond),
		ReservationTTL:  envDur("RESERVATION_TTL", 15*time.Minute),
		SweepInterval:   envDur("SWEEP_INTERVAL", time.Minute),

		StatusAddr: os.Getenv("STATUS_ADDR"),
	}
}

func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// envLang keeps only parseable BCP 47 tags.
func envLang(k, def string) string {
	if v := os.Getenv(k); v != "" {
		if _, err := language.Parse(v); err == nil {
			return v
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
