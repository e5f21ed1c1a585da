package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	PaymentGatewayAddress string
	RedisAddress          string
	AuthSecret            string
	TokenTTL              time.Duration

	Currency         string
	TaxRate          float64
	ShippingFee      float64
	FreeShippingOver float64

	OrderPollInterval time.Duration
	PendingRecheckAge time.Duration
	WorkerPoolSize    int
	MaxOrdersBatch    int
	ShutdownTimeout   time.Duration

	GatewayTimeout      time.Duration
	GatewayRetries      int
	GatewayRetryBackoff time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultAuthSecret        = "change-me-in-production"
	defaultTokenTTL          = 24 * time.Hour
	defaultCurrency          = "usd"
	defaultTaxRate           = 0.05
	defaultShippingFee       = 5
	defaultOrderPollInterval = 5 * time.Second
	defaultPendingRecheckAge = time.Minute
	defaultWorkerPoolSize    = 4
	defaultMaxOrdersBatch    = 32
	defaultShutdownTimeout   = 10 * time.Second
	defaultGatewayTimeout    = 10 * time.Second
	defaultGatewayRetries    = 3
	defaultGatewayBackoff    = 200 * time.Millisecond
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		PaymentGatewayAddress: getString(lookup, "PAYMENT_GATEWAY_ADDRESS", ""),
		RedisAddress:          getString(lookup, "REDIS_ADDRESS", ""),
		AuthSecret:            getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		TokenTTL:              getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		Currency:              getString(lookup, "CURRENCY", defaultCurrency),
		TaxRate:               getFloat(lookup, "TAX_RATE", defaultTaxRate),
		ShippingFee:           getFloat(lookup, "SHIPPING_FEE", defaultShippingFee),
		FreeShippingOver:      getFloat(lookup, "FREE_SHIPPING_OVER", 0),
		OrderPollInterval:     getDuration(lookup, "ORDER_POLL_INTERVAL", defaultOrderPollInterval),
		PendingRecheckAge:     getDuration(lookup, "PENDING_RECHECK_AGE", defaultPendingRecheckAge),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxOrdersBatch:        getInt(lookup, "POLL_BATCH_SIZE", defaultMaxOrdersBatch),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		GatewayTimeout:        getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		GatewayRetries:        getInt(lookup, "GATEWAY_RETRIES", defaultGatewayRetries),
		GatewayRetryBackoff:   getDuration(lookup, "GATEWAY_RETRY_BACKOFF", defaultGatewayBackoff),
	}

	fs := flag.NewFlagSet("beautytrendy", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.OrderPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentGatewayAddress, "g", cfg.PaymentGatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the product cache (optional)")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for verifying session tokens")
	fs.Float64Var(&cfg.TaxRate, "tax-rate", cfg.TaxRate, "Order tax rate")
	fs.Float64Var(&cfg.ShippingFee, "shipping-fee", cfg.ShippingFee, "Flat shipping fee")
	fs.Float64Var(&cfg.FreeShippingOver, "free-shipping-over", cfg.FreeShippingOver, "Subtotal threshold waiving the shipping fee (0 disables)")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent confirmation workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between pending order polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxOrdersBatch, "poll-batch", cfg.MaxOrdersBatch, "Maximum orders per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxOrdersBatch <= 0 {
		cfg.MaxOrdersBatch = defaultMaxOrdersBatch
	}

	if cfg.OrderPollInterval <= 0 {
		cfg.OrderPollInterval = defaultOrderPollInterval
	}

	if cfg.PendingRecheckAge <= 0 {
		cfg.PendingRecheckAge = defaultPendingRecheckAge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TaxRate < 0 {
		return nil, fmt.Errorf("tax rate must not be negative")
	}

	if cfg.ShippingFee < 0 {
		return nil, fmt.Errorf("shipping fee must not be negative")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentGatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
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

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
