package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress     string
	DatabaseURI    string
	RedisAddress   string
	KafkaBrokers   []string
	GatewayAddress string
	SessionTTL     time.Duration

	VATRate     decimal.Decimal
	DeliveryFee decimal.Decimal

	NotifyPollInterval time.Duration
	NotifyBatchSize    int
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultSessionTTL         = 24 * time.Hour
	defaultVATRate            = "10"
	defaultDeliveryFee        = "5"
	defaultNotifyPollInterval = 3 * time.Second
	defaultNotifyBatchSize    = 32
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables, and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		GatewayAddress:     getString(lookup, "PAYMENT_GATEWAY_ADDRESS", ""),
		SessionTTL:         getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		NotifyPollInterval: getDuration(lookup, "NOTIFY_POLL_INTERVAL", defaultNotifyPollInterval),
		NotifyBatchSize:    getInt(lookup, "NOTIFY_BATCH_SIZE", defaultNotifyBatchSize),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if brokers := getString(lookup, "KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitList(brokers)
	}

	fs := flag.NewFlagSet("meatmarket", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		vatRateStr         = getString(lookup, "VAT_RATE", defaultVATRate)
		deliveryFeeStr     = getString(lookup, "DELIVERY_FEE", defaultDeliveryFee)
		brokersStr         = strings.Join(cfg.KafkaBrokers, ",")
		pollIntervalStr    = cfg.NotifyPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the live tracking cache (optional)")
	fs.StringVar(&brokersStr, "brokers", brokersStr, "Comma separated Kafka brokers for event publishing (optional)")
	fs.StringVar(&cfg.GatewayAddress, "gateway", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&vatRateStr, "vat-rate", vatRateStr, "VAT percentage applied at checkout")
	fs.StringVar(&deliveryFeeStr, "delivery-fee", deliveryFeeStr, "Flat delivery fee")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent notification workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between notification dispatch polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.NotifyBatchSize, "poll-batch", cfg.NotifyBatchSize, "Maximum notifications per dispatch batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.VATRate, err = decimal.NewFromString(vatRateStr); err != nil {
		return nil, fmt.Errorf("invalid VAT rate: %w", err)
	}

	if cfg.DeliveryFee, err = decimal.NewFromString(deliveryFeeStr); err != nil {
		return nil, fmt.Errorf("invalid delivery fee: %w", err)
	}

	if cfg.NotifyPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if brokersStr != "" {
		cfg.KafkaBrokers = splitList(brokersStr)
	}

	if cfg.VATRate.IsNegative() || cfg.VATRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("VAT rate must be between 0 and 100")
	}

	if cfg.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.NotifyBatchSize <= 0 {
		cfg.NotifyBatchSize = defaultNotifyBatchSize
	}

	if cfg.NotifyPollInterval <= 0 {
		cfg.NotifyPollInterval = defaultNotifyPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
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
