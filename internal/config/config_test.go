package config

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func envMap(vars map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{
		"DATABASE_URI":            "postgres://localhost/meatmarket",
		"PAYMENT_GATEWAY_ADDRESS": "http://gateway:9090",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("run address = %q, want %q", cfg.RunAddress, defaultRunAddress)
	}
	if cfg.DatabaseURI != "postgres://localhost/meatmarket" {
		t.Fatalf("database URI = %q", cfg.DatabaseURI)
	}
	if cfg.SessionTTL != defaultSessionTTL {
		t.Fatalf("session TTL = %v, want %v", cfg.SessionTTL, defaultSessionTTL)
	}
	if !cfg.VATRate.Equal(decimal.RequireFromString(defaultVATRate)) {
		t.Fatalf("VAT rate = %s, want %s", cfg.VATRate, defaultVATRate)
	}
	if !cfg.DeliveryFee.Equal(decimal.RequireFromString(defaultDeliveryFee)) {
		t.Fatalf("delivery fee = %s, want %s", cfg.DeliveryFee, defaultDeliveryFee)
	}
	if cfg.NotifyPollInterval != defaultNotifyPollInterval {
		t.Fatalf("poll interval = %v, want %v", cfg.NotifyPollInterval, defaultNotifyPollInterval)
	}
	if cfg.NotifyBatchSize != defaultNotifyBatchSize {
		t.Fatalf("batch size = %d, want %d", cfg.NotifyBatchSize, defaultNotifyBatchSize)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Fatalf("worker pool = %d, want %d", cfg.WorkerPoolSize, defaultWorkerPoolSize)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("shutdown timeout = %v, want %v", cfg.ShutdownTimeout, defaultShutdownTimeout)
	}
	if cfg.RedisAddress != "" || len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("optional backends should stay unset, got redis=%q brokers=%v", cfg.RedisAddress, cfg.KafkaBrokers)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{
		"RUN_ADDRESS":             ":9000",
		"DATABASE_URI":            "postgres://db/shop",
		"REDIS_ADDRESS":           "redis:6379",
		"KAFKA_BROKERS":           "kafka-1:9092, kafka-2:9092",
		"PAYMENT_GATEWAY_ADDRESS": "http://pay",
		"SESSION_TTL":             "2h",
		"VAT_RATE":                "20",
		"DELIVERY_FEE":            "7.50",
		"NOTIFY_POLL_INTERVAL":    "500ms",
		"NOTIFY_BATCH_SIZE":       "64",
		"WORKER_POOL_SIZE":        "8",
		"SHUTDOWN_TIMEOUT":        "30s",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != ":9000" {
		t.Fatalf("run address = %q", cfg.RunAddress)
	}
	if cfg.RedisAddress != "redis:6379" {
		t.Fatalf("redis address = %q", cfg.RedisAddress)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "kafka-1:9092" || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("session TTL = %v", cfg.SessionTTL)
	}
	if !cfg.VATRate.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("VAT rate = %s", cfg.VATRate)
	}
	if !cfg.DeliveryFee.Equal(decimal.RequireFromString("7.50")) {
		t.Fatalf("delivery fee = %s", cfg.DeliveryFee)
	}
	if cfg.NotifyPollInterval != 500*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.NotifyPollInterval)
	}
	if cfg.NotifyBatchSize != 64 || cfg.WorkerPoolSize != 8 {
		t.Fatalf("batch = %d, pool = %d", cfg.NotifyBatchSize, cfg.WorkerPoolSize)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	args := []string{
		"-a", ":7070",
		"-d", "postgres://flag-db/shop",
		"-redis", "cache:6379",
		"-brokers", "broker-1:9092,broker-2:9092,broker-3:9092",
		"-gateway", "http://flag-gateway",
		"-vat-rate", "12.5",
		"-delivery-fee", "3",
		"-worker-pool", "2",
		"-poll-interval", "250ms",
		"-shutdown-timeout", "5s",
		"-poll-batch", "16",
	}
	cfg, err := load(args, envMap(map[string]string{
		"DATABASE_URI":            "postgres://env-db/shop",
		"PAYMENT_GATEWAY_ADDRESS": "http://env-gateway",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != ":7070" {
		t.Fatalf("run address = %q", cfg.RunAddress)
	}
	if cfg.DatabaseURI != "postgres://flag-db/shop" {
		t.Fatalf("flags should win over env, got %q", cfg.DatabaseURI)
	}
	if cfg.GatewayAddress != "http://flag-gateway" {
		t.Fatalf("gateway = %q", cfg.GatewayAddress)
	}
	if cfg.RedisAddress != "cache:6379" {
		t.Fatalf("redis = %q", cfg.RedisAddress)
	}
	if len(cfg.KafkaBrokers) != 3 {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
	if !cfg.VATRate.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("VAT rate = %s", cfg.VATRate)
	}
	if !cfg.DeliveryFee.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("delivery fee = %s", cfg.DeliveryFee)
	}
	if cfg.WorkerPoolSize != 2 || cfg.NotifyBatchSize != 16 {
		t.Fatalf("pool = %d, batch = %d", cfg.WorkerPoolSize, cfg.NotifyBatchSize)
	}
	if cfg.NotifyPollInterval != 250*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.NotifyPollInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	base := map[string]string{
		"DATABASE_URI":            "postgres://db/shop",
		"PAYMENT_GATEWAY_ADDRESS": "http://pay",
	}
	cases := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing database",
			env:     map[string]string{"PAYMENT_GATEWAY_ADDRESS": "http://pay"},
			wantErr: "database URI",
		},
		{
			name:    "missing gateway",
			env:     map[string]string{"DATABASE_URI": "postgres://db/shop"},
			wantErr: "gateway address",
		},
		{
			name:    "malformed VAT rate",
			args:    []string{"-vat-rate", "ten"},
			env:     base,
			wantErr: "invalid VAT rate",
		},
		{
			name:    "VAT rate over hundred",
			args:    []string{"-vat-rate", "150"},
			env:     base,
			wantErr: "VAT rate must be between 0 and 100",
		},
		{
			name:    "negative delivery fee",
			args:    []string{"-delivery-fee", "-1"},
			env:     base,
			wantErr: "delivery fee must not be negative",
		},
		{
			name:    "malformed delivery fee",
			args:    []string{"-delivery-fee", "free"},
			env:     base,
			wantErr: "invalid delivery fee",
		},
		{
			name:    "malformed poll interval",
			args:    []string{"-poll-interval", "soon"},
			env:     base,
			wantErr: "invalid poll interval",
		},
		{
			name:    "malformed shutdown timeout",
			args:    []string{"-shutdown-timeout", "whenever"},
			env:     base,
			wantErr: "invalid shutdown timeout",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(tc.args, envMap(tc.env))
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	cfg, err := load(
		[]string{"-worker-pool", "0", "-poll-batch", "-5", "-poll-interval", "0s", "-shutdown-timeout", "0s"},
		envMap(map[string]string{
			"DATABASE_URI":            "postgres://db/shop",
			"PAYMENT_GATEWAY_ADDRESS": "http://pay",
			"SESSION_TTL":             "-1h",
		}),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Fatalf("worker pool = %d, want default %d", cfg.WorkerPoolSize, defaultWorkerPoolSize)
	}
	if cfg.NotifyBatchSize != defaultNotifyBatchSize {
		t.Fatalf("batch size = %d, want default %d", cfg.NotifyBatchSize, defaultNotifyBatchSize)
	}
	if cfg.NotifyPollInterval != defaultNotifyPollInterval {
		t.Fatalf("poll interval = %v, want default %v", cfg.NotifyPollInterval, defaultNotifyPollInterval)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("shutdown timeout = %v, want default %v", cfg.ShutdownTimeout, defaultShutdownTimeout)
	}
	if cfg.SessionTTL != defaultSessionTTL {
		t.Fatalf("session TTL = %v, want default %v", cfg.SessionTTL, defaultSessionTTL)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a:1 ,, b:2,")
	if len(got) != 2 || got[0] != "a:1" || got[1] != "b:2" {
		t.Fatalf("splitList = %v", got)
	}
}
