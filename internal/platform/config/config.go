package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	strs "whitelabel/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string
	Environment        string
	LogLevel           string
	AdminToken         string
	PlatformDomains    []string
	CORSAllowedOrigins []string
	AppUpstreamURL     string
	TenantSeedFile     string
	TenantCookieTTL    time.Duration
	VerifyRateLimit    int

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Provider ProviderConfig
	DNS      DNSConfig
	Sweep    SweepConfig
}

// DatabaseConfig configures the Postgres tenant directory. An empty URL
// selects the in-memory directory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the Redis client backing the sweep lease.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the domain event producer. No brokers means events
// are only logged.
type KafkaConfig struct {
	Brokers         []string
	DomainTopic     string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// ProviderConfig configures the edge-hosting provider client.
type ProviderConfig struct {
	BaseURL   string
	Token     string
	ProjectID string
	TeamID    string
	Timeout   time.Duration
}

// Configured reports whether provider credentials are present.
func (p ProviderConfig) Configured() bool {
	return p.Token != "" && p.ProjectID != ""
}

// DNSConfig configures the DNS-over-HTTPS resolver.
type DNSConfig struct {
	DoHEndpoint string
	Timeout     time.Duration
	AcceptedIPs []string
}

// SweepConfig configures background re-verification of pending domains.
type SweepConfig struct {
	Enabled     bool
	Interval    time.Duration
	BatchSize   int
	Concurrency int
	LeaseTTL    time.Duration
}

var (
	DefaultProviderBaseURL = "https://api.vercel.com"
	DefaultDoHEndpoint     = "https://cloudflare-dns.com/dns-query"
	DefaultTenantCookieTTL = time.Hour
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	sweepInterval := getDuration("SWEEP_INTERVAL", 10*time.Minute)
	return Server{
		Addr:               getString("WHITELABEL_ADDR", ":8080"),
		Environment:        getString("ENVIRONMENT", "local"),
		LogLevel:           getString("LOG_LEVEL", "info"),
		AdminToken:         os.Getenv("ADMIN_API_TOKEN"),
		PlatformDomains:    strs.NormalizeHosts(getList("PLATFORM_DOMAINS", []string{"localhost"})),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", nil),
		AppUpstreamURL:     os.Getenv("APP_UPSTREAM_URL"),
		TenantSeedFile:     os.Getenv("TENANT_SEED_FILE"),
		TenantCookieTTL:    getDuration("TENANT_COOKIE_TTL", DefaultTenantCookieTTL),
		VerifyRateLimit:    getInt("VERIFY_RATE_LIMIT", 30),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:         getList("KAFKA_BROKERS", nil),
			DomainTopic:     getString("KAFKA_DOMAIN_TOPIC", "tenant-domain-events"),
			Acks:            getString("KAFKA_ACKS", "all"),
			Retries:         getInt("KAFKA_RETRIES", 3),
			DeliveryTimeout: getDuration("KAFKA_DELIVERY_TIMEOUT", 30*time.Second),
		},
		Provider: ProviderConfig{
			BaseURL:   getString("VERCEL_API_URL", DefaultProviderBaseURL),
			Token:     os.Getenv("VERCEL_API_TOKEN"),
			ProjectID: os.Getenv("VERCEL_PROJECT_ID"),
			TeamID:    os.Getenv("VERCEL_TEAM_ID"),
			Timeout:   getDuration("PROVIDER_TIMEOUT", 10*time.Second),
		},
		DNS: DNSConfig{
			DoHEndpoint: getString("DOH_ENDPOINT", DefaultDoHEndpoint),
			Timeout:     getDuration("DOH_TIMEOUT", 5*time.Second),
			AcceptedIPs: getList("ACCEPTED_IPS", nil),
		},
		Sweep: SweepConfig{
			Enabled:     getString("SWEEP_ENABLED", "true") == "true",
			Interval:    sweepInterval,
			BatchSize:   getInt("SWEEP_BATCH", 100),
			Concurrency: getInt("SWEEP_CONCURRENCY", 4),
			LeaseTTL:    getDuration("SWEEP_LEASE_TTL", defaultLeaseTTL(sweepInterval)),
		},
	}
}

// defaultLeaseTTL holds the sweep lease for just under one interval so a
// replica whose ticker fires later in the same interval finds it taken.
func defaultLeaseTTL(interval time.Duration) time.Duration {
	return interval - interval/10
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt keeps fallback when the variable is unset or malformed.
func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	out := strs.DedupeAndTrim(strings.Split(os.Getenv(key), ","))
	if len(out) == 0 {
		return fallback
	}
	return out
}
