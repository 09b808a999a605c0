package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPPort        string
	DatabaseURL     string
	RedisAddr       string
	JWTSecret       string
	AdminUsername   string
	AdminPassword   string
	TokenTTL        time.Duration
	FrontendURL     string
	RateLimitPerMin int
	ReportCompany   string
	ReportCacheTTL  time.Duration
}

// Load reads .env when present and returns the application config.
// The credentials, signing secret and database URL have no defaults:
// the process refuses to start without them.
func Load() App {
	_ = godotenv.Load()

	cfg := App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "4000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		TokenTTL:        durationEnv("TOKEN_TTL", 24*time.Hour),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
		ReportCompany:   getEnv("REPORT_COMPANY", "Corporación R&L SERVICE"),
		ReportCacheTTL:  durationEnv("REPORT_CACHE_TTL", 5*time.Minute),
	}

	var missing []string
	for _, v := range []struct{ key, val string }{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"JWT_SECRET", cfg.JWTSecret},
		{"ADMIN_USERNAME", cfg.AdminUsername},
		{"ADMIN_PASSWORD", cfg.AdminPassword},
	} {
		if v.val == "" {
			missing = append(missing, v.key)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("variables de entorno requeridas no configuradas: %s", strings.Join(missing, ", "))
	}

	return cfg
}

// AllowedOrigins returns the CORS origin allowlist: local dev origins, the
// deployed front ends, plus FRONTEND_URL when set.
func (a App) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:3001",
		"https://sistemaasistencias.vercel.app",
		"https://sistema-asistencias.vercel.app",
	}
	if a.FrontendURL != "" {
		origins = append(origins, a.FrontendURL)
	}
	return origins
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
