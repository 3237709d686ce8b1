// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every runtime setting the server binaries need. Values are
// read from the environment once at startup and injected into constructors;
// nothing else in the process reads env vars.
type Config struct {
	ListenAddr     string
	AllowedOrigins []string

	// DatabaseURL takes precedence; when empty the connection string is
	// assembled from the individual POSTGRES_* variables.
	DatabaseURL string

	RedisAddr      string
	RedisDB        int
	HistorianQueue string

	// SessionTTL bounds session token lifetime; zero means tokens never expire.
	SessionTTL time.Duration

	// Media service (external video provider) credentials and client-side
	// relay configuration. The server only issues join tokens; the media
	// path itself never touches this process.
	MediaAPIKey    string
	MediaAPISecret string
	MediaServerURL string
	ICEServers     []string
}

// Load reads the configuration from the environment. Callers are expected to
// have loaded a dotenv file beforehand (godotenv autoload in main).
func Load() Config {
	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	cfg := Config{
		ListenAddr:     addr,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        GetEnvInt("REDIS_DB", 0),
		HistorianQueue: GetEnv("HISTORIAN_QUEUE_NAME", "pasapalabra_actions"),
		MediaAPIKey:    os.Getenv("LIVEKIT_API_KEY"),
		MediaAPISecret: os.Getenv("LIVEKIT_API_SECRET"),
		MediaServerURL: os.Getenv("LIVEKIT_URL"),
		SessionTTL:     getEnvDuration("TOKEN_EXPIRE_TIME", 0),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowedOrigins = []string{"https://*", "http://*"}
	}

	if ice := os.Getenv("ICE_SERVERS"); ice != "" {
		cfg.ICEServers = strings.Split(ice, ",")
	} else {
		cfg.ICEServers = []string{"stun:stun.l.google.com:19302"}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "postgres://" + os.Getenv("POSTGRES_USER") + ":" +
			os.Getenv("POSTGRES_PASSWORD") + "@" + GetEnv("PG_HOST", "localhost") + ":" +
			GetEnv("PG_PORT", "5432") + "/" + os.Getenv("PG_DATABASE")
	}

	return cfg
}

// GetEnv retrieves an environment variable's value or returns a default.
func GetEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvDuration parses a duration environment variable. "never", "0", the
// empty string, and unparsable values all resolve to the default.
func getEnvDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" || s == "never" || s == "0" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// GetEnvInt retrieves an integer environment variable or returns a default.
func GetEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
