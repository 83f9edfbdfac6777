// Package config loads application configuration from environment variables.
// Every value has a development fallback so the server can start on a fresh
// checkout; production deployments are expected to override all of them,
// in particular JWT_SECRET.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for durations and
// bcrypt cost.
type Config struct {
	Env            string   // application environment (dev/test/prod)
	Port           string   // HTTP port to listen on
	DBUser         string   // database username
	DBPass         string   // database password (optional)
	DBHost         string   // database host address
	DBPort         string   // database port number
	DBName         string   // database name
	JWTSecret      string   // secret used to sign JWTs
	AccessTTLHours int      // access token time-to-live in hours
	RefreshTTLDays int      // refresh token time-to-live in days
	BcryptCost     int      // bcrypt cost for password hashing
	AllowedOrigins []string // CORS origins for the three front ends
}

// Load reads configuration values from the environment and returns a Config.
// Missing values fall back to development defaults.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "development"),
		Port:           getenv("APP_PORT", "5000"),
		DBUser:         getenv("DB_USER", "root"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         getenv("DB_NAME", "salon_db"),
		JWTSecret:      getenv("JWT_SECRET", "sizzer-secret-key"),
		AccessTTLHours: envInt("ACCESS_TOKEN_TTL_HOURS", 168), // 7 days
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 30),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		AllowedOrigins: splitOrigins(getenv("ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:3001,http://localhost:3002")),
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Shared env helpers reused by cache.go and ratelimit.go.

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
