package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	ClientOrigin    string
	TokenSecret     string
	TokenStrategy   string
	TokenTTL        time.Duration
	QRSecret        string
	QRTokenTTL      time.Duration
	LoyaltyPolicy   string
	AuditInterval   time.Duration
	AuditBatch      int
	WorkerPoolSize  int
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultClientOrigin    = "http://localhost:5173"
	defaultTokenSecret     = "change-me-in-production"
	defaultTokenStrategy   = "jwt"
	defaultTokenTTL        = 24 * time.Hour
	defaultQRTokenTTL      = 5 * time.Minute
	defaultLoyaltyPolicy   = "dual-tier"
	defaultAuditInterval   = 10 * time.Minute
	defaultAuditBatch      = 50
	defaultWorkerPoolSize  = 4
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		ClientOrigin:    getString(lookup, "CLIENT_ORIGIN", defaultClientOrigin),
		TokenSecret:     getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenStrategy:   getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		QRSecret:        getString(lookup, "QR_SECRET", ""),
		QRTokenTTL:      getDuration(lookup, "QR_TOKEN_TTL", defaultQRTokenTTL),
		LoyaltyPolicy:   getString(lookup, "LOYALTY_POLICY", defaultLoyaltyPolicy),
		AuditInterval:   getDuration(lookup, "AUDIT_INTERVAL", defaultAuditInterval),
		AuditBatch:      getInt(lookup, "AUDIT_BATCH_SIZE", defaultAuditBatch),
		WorkerPoolSize:  getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("fideleatome", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		auditIntervalStr   = cfg.AuditInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ClientOrigin, "client-origin", cfg.ClientOrigin, "Allowed CORS origin of the web client")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Auth token strategy (jwt or hmac)")
	fs.StringVar(&cfg.LoyaltyPolicy, "policy", cfg.LoyaltyPolicy, "Tier policy name (dual-tier or single-tier)")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent audit workers")
	fs.IntVar(&cfg.AuditBatch, "audit-batch", cfg.AuditBatch, "Maximum customers per audit batch")
	fs.StringVar(&auditIntervalStr, "audit-interval", auditIntervalStr, "Interval between consistency audit passes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.AuditInterval, err = time.ParseDuration(auditIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid audit interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.QRSecret == "" {
		cfg.QRSecret = cfg.TokenSecret
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.AuditBatch <= 0 {
		cfg.AuditBatch = defaultAuditBatch
	}

	if cfg.AuditInterval <= 0 {
		cfg.AuditInterval = defaultAuditInterval
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.QRTokenTTL <= 0 {
		cfg.QRTokenTTL = defaultQRTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
