// README: Config loader with env defaults for HTTP, DB, Redis, AMQP, maps, AI, and gate timings.
package config

import (
	"os"
	"strconv"
	"time"
)

type GatesConfig struct {
	// PaymentDelay is how long the simulated payment processor takes.
	PaymentDelay time.Duration
	// QRScanDelay is how long the simulated customer-side QR scan takes.
	QRScanDelay time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN may be empty; the service then runs on seeded in-memory stores.
		DSN string
	}
	Redis struct {
		Addr string
	}
	AMQP struct {
		// URL may be empty; payment events are then not published.
		URL string
	}
	Barcode struct {
		Key string
	}
	Hub struct {
		ID      string
		Address string
	}
	Maps struct {
		APIKey string
	}
	AI struct {
		GeminiKey string
	}
	Session struct {
		TTL time.Duration
	}
	Location struct {
		// SnapshotInterval caps how often a rider's position is persisted.
		SnapshotInterval time.Duration
	}
	Gates GatesConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("SPEEDY_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("SPEEDY_DB_DSN")
	cfg.Redis.Addr = envOrDefault("SPEEDY_REDIS_ADDR", "localhost:6379")
	cfg.AMQP.URL = os.Getenv("SPEEDY_AMQP_URL")
	cfg.Barcode.Key = envOrDefault("SPEEDY_BARCODE_KEY", "delivery-rider-barcode-key-2025")
	cfg.Hub.ID = envOrDefault("SPEEDY_HUB_ID", "HUB-MNL-001")
	cfg.Hub.Address = envOrDefault("SPEEDY_HUB_ADDRESS", "555 Market Street, Central Hub")
	cfg.Maps.APIKey = os.Getenv("SPEEDY_MAPS_KEY")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Session.TTL = envOrDefaultDuration("SPEEDY_SESSION_TTL", 12*time.Hour)
	cfg.Location.SnapshotInterval = envOrDefaultDuration("SPEEDY_SNAPSHOT_INTERVAL", 30*time.Second)
	cfg.Gates.PaymentDelay = envOrDefaultDuration("SPEEDY_PAYMENT_DELAY", 2*time.Second)
	cfg.Gates.QRScanDelay = envOrDefaultDuration("SPEEDY_QR_SCAN_DELAY", 2*time.Second)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
