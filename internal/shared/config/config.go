package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	ctopics "github.com/strikeoutcenter/propsfeed/pkg/contracts/topics"
)

// Config centralizes environment variables and runtime parameters for the
// feed binaries: odds provider credentials, optional collaborator backends
// (Redis, Postgres, Kafka) and artifact/serving settings.
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string // ex: "feed-publisher", "props-report", ...

	// The Odds API
	OddsAPIKey     string
	OddsAPIBaseURL string
	OddsRegions    string
	OddsMarket     string
	Sport          string

	// Optional collaborators; empty value disables the integration.
	RedisAddr    string
	PostgresDSN  string
	KafkaBrokers string // "a:9092,b:9092"

	TopicFeedRefreshed string

	// Artifact generation
	PublicDir    string
	FeedTimezone string // IANA name the feed dates are pinned to

	// feed-publisher daemon mode; zero means run once and exit.
	RefreshInterval time.Duration

	// Ports for the current service
	HTTPPort    string // public port (feed-server)
	MetricsPort string // /metrics and /healthz only
}

// Load reads a .env file when present, then resolves every setting from the
// environment with per-service defaults.
func Load() Config {
	_ = godotenv.Load()

	svc := getEnv("SERVICE_NAME", "")
	env := getEnv("ENV", "local")

	cfg := Config{
		Env:         env,
		ServiceName: svc,

		OddsAPIKey:     getEnv("ODDS_API_KEY", ""),
		OddsAPIBaseURL: getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4"),
		OddsRegions:    getEnv("ODDS_API_REGIONS", "us"),
		OddsMarket:     getEnv("ODDS_API_MARKET", "pitcher_strikeouts"),
		Sport:          getEnv("ODDS_API_SPORT", "baseball_mlb"),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),

		TopicFeedRefreshed: getEnv("KAFKA_TOPIC_FEED", ctopics.FeedRefreshed),

		PublicDir:    getEnv("PUBLIC_DIR", "public"),
		FeedTimezone: getEnv("FEED_TIMEZONE", "America/New_York"),

		RefreshInterval: getDuration("REFRESH_INTERVAL", 0),
	}

	switch svc {
	case "feed-server":
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	case "feed-publisher":
		cfg.HTTPPort = getEnv("HTTP_PORT_PUBLISHER", "") // publisher has no public HTTP
		cfg.MetricsPort = getEnv("METRICS_PORT_PUBLISHER", "9096")
	default:
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	}

	return cfg
}

// getEnv returns the environment value or the default.
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getDuration parses a Go duration string ("15m"); invalid values fall back
// to the default rather than aborting startup.
func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
