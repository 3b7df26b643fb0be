package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SELLERBRIDGE_APP_NAME":                os.Getenv("SELLERBRIDGE_APP_NAME"),
		"SELLERBRIDGE_APP_ENV":                 os.Getenv("SELLERBRIDGE_APP_ENV"),
		"SELLERBRIDGE_APP_PORT":                os.Getenv("SELLERBRIDGE_APP_PORT"),
		"SELLERBRIDGE_DATABASE_HOST":           os.Getenv("SELLERBRIDGE_DATABASE_HOST"),
		"SELLERBRIDGE_DATABASE_PORT":           os.Getenv("SELLERBRIDGE_DATABASE_PORT"),
		"SELLERBRIDGE_DATABASE_USER":           os.Getenv("SELLERBRIDGE_DATABASE_USER"),
		"SELLERBRIDGE_DATABASE_PASSWORD":       os.Getenv("SELLERBRIDGE_DATABASE_PASSWORD"),
		"SELLERBRIDGE_DATABASE_DBNAME":         os.Getenv("SELLERBRIDGE_DATABASE_DBNAME"),
		"SELLERBRIDGE_DATABASE_SSLMODE":        os.Getenv("SELLERBRIDGE_DATABASE_SSLMODE"),
		"SELLERBRIDGE_DATABASE_MAX_OPEN_CONNS": os.Getenv("SELLERBRIDGE_DATABASE_MAX_OPEN_CONNS"),
		"SELLERBRIDGE_DATABASE_MAX_IDLE_CONNS": os.Getenv("SELLERBRIDGE_DATABASE_MAX_IDLE_CONNS"),
		"SELLERBRIDGE_MARKETPLACE_SELLER_ID":   os.Getenv("SELLERBRIDGE_MARKETPLACE_SELLER_ID"),
		"SELLERBRIDGE_MARKETPLACE_SECRET_KEY":  os.Getenv("SELLERBRIDGE_MARKETPLACE_SECRET_KEY"),
		"SELLERBRIDGE_RECONCILE_POLL_INTERVAL": os.Getenv("SELLERBRIDGE_RECONCILE_POLL_INTERVAL"),
		"SELLERBRIDGE_SKU_LOOKUP_PATTERN":      os.Getenv("SELLERBRIDGE_SKU_LOOKUP_PATTERN"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sellerbridge", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "sellerbridge", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "https://mws.amazonservices.com", cfg.Marketplace.Endpoint)
		assert.Equal(t, 30, cfg.Marketplace.TimeoutSeconds)
		assert.Equal(t, 5*time.Minute, cfg.Reconcile.PollInterval)
		assert.NotEmpty(t, cfg.Sku.LookupPattern)
	})

	t.Run("loads values from environment variables with SELLERBRIDGE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SELLERBRIDGE_APP_NAME", "test-app")
		os.Setenv("SELLERBRIDGE_APP_PORT", "9000")
		os.Setenv("SELLERBRIDGE_DATABASE_HOST", "testdb.local")
		os.Setenv("SELLERBRIDGE_DATABASE_PORT", "5433")
		os.Setenv("SELLERBRIDGE_DATABASE_PASSWORD", "testpass")
		os.Setenv("SELLERBRIDGE_MARKETPLACE_SELLER_ID", "A1SELLER")
		os.Setenv("SELLERBRIDGE_MARKETPLACE_SECRET_KEY", "shhh")
		os.Setenv("SELLERBRIDGE_SKU_LOOKUP_PATTERN", `^(?P<item_code>\w+)$`)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "A1SELLER", cfg.Marketplace.SellerID)
		assert.Equal(t, "shhh", cfg.Marketplace.SecretKey)
		assert.Equal(t, `^(?P<item_code>\w+)$`, cfg.Sku.LookupPattern)
		// MerchantID falls back to the seller id
		assert.Equal(t, "A1SELLER", cfg.Marketplace.MerchantID)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SELLERBRIDGE_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("SELLERBRIDGE_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("SELLERBRIDGE_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("rejects a poll interval below one minute", func(t *testing.T) {
		clearEnv()
		os.Setenv("SELLERBRIDGE_RECONCILE_POLL_INTERVAL", "10s")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "poll_interval")
	})

	t.Run("production requires marketplace credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("SELLERBRIDGE_APP_ENV", "production")
		os.Setenv("SELLERBRIDGE_DATABASE_PASSWORD", "pw")
		os.Setenv("SELLERBRIDGE_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "marketplace credentials")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "sellerbridge",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.example.com:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
