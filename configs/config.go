package configs

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string
	DBSource string

	JWTSecret      string
	SeatSessionTTL time.Duration
	TotalSeats     int
	PublicBaseURL  string
	CORSOrigins    []string

	// "session" scopes GET /orders to the caller's seat session, "global" lists everything
	OrderVisibility string
	OrderListLimit  int

	RestaurantCacheTTL   time.Duration
	RestaurantCacheStale time.Duration
	RedisAddr            string
	RedisPassword        string
	RedisDB              int

	EventsDriver string // none | kafka | rabbitmq
	KafkaBrokers []string
	KafkaTopic   string
	AMQPURL      string
	AMQPExchange string

	SeedDemoData bool
}

const (
	VisibilitySession = "session"
	VisibilityGlobal  = "global"

	defaultJWTSecret = "changeme"
)

// ErrDefaultSecret is returned when release mode would sign seat tokens with the built-in key.
var ErrDefaultSecret = errors.New("JWT_SECRET must be set in release mode")

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: reading .env: %v", err)
	}

	return &Config{
		Port:     getEnv("PORT", "8000"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "foodcourt.db"),

		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		SeatSessionTTL: getDuration("SEAT_SESSION_TTL", 4*time.Hour),
		TotalSeats:     getInt("TOTAL_SEATS", 100),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		CORSOrigins:    getList("CORS_ORIGINS", []string{"*"}),

		OrderVisibility: getEnv("ORDER_VISIBILITY", VisibilitySession),
		OrderListLimit:  getInt("ORDER_LIST_LIMIT", 50),

		RestaurantCacheTTL:   getDuration("RESTAURANT_CACHE_TTL", 60*time.Second),
		RestaurantCacheStale: getDuration("RESTAURANT_CACHE_STALE", 300*time.Second),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getInt("REDIS_DB", 0),

		EventsDriver: getEnv("EVENTS_DRIVER", "none"),
		KafkaBrokers: getList("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "orders.placed"),
		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "orders_topic"),

		SeedDemoData: getBool("SEED_DEMO_DATA", true),
	}
}

// Validate rejects settings that are only acceptable for local development.
func (c *Config) Validate() error {
	if c.JWTSecret == defaultJWTSecret {
		if c.GinMode == "release" {
			return ErrDefaultSecret
		}
		log.Printf("config: JWT_SECRET not set, using the development default")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: %s=%q is not a bool, using %t", key, v, fallback)
		return fallback
	}
	return b
}

// getDuration accepts Go durations ("90s") or plain seconds ("90").
func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Printf("config: %s=%q is not a duration, using %s", key, v, fallback)
	return fallback
}

func getList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
