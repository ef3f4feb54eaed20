package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
service_name = "atlasvision-gateway"
version = "0.1.0"

[database]
dsn = "root:root@tcp(localhost:3306)/atlasvision?parseTime=true"

[kafka]
brokers = ["localhost:9092"]

[inference]
base_url = "https://inference.example.com"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "atlasvision-gateway", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.HTTP.MaxUploadSizeMB)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "atlasvision-workers", cfg.Kafka.GroupID)
	assert.Equal(t, "atlasvision.scan.created", cfg.Kafka.ScanTopic)
	assert.Equal(t, "filesystem", cfg.Storage.Driver)
	assert.Equal(t, "data/scans", cfg.Storage.RootDir)
	assert.Equal(t, 30, cfg.Inference.Timeout)
	assert.NotEmpty(t, cfg.Inference.VQAQuestion)
	assert.InDelta(t, 10.0, cfg.Pipeline.PriceAlertThreshold, 0.001)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, 300, cfg.Redis.ScanCacheTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("APP_DATABASE_DSN", "root:override@tcp(db:3306)/atlasvision")
	t.Setenv("APP_HTTP_PORT", "9000")
	t.Setenv("APP_INFERENCE_API_KEY", "secret-token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "root:override@tcp(db:3306)/atlasvision", cfg.Database.DSN)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "secret-token", cfg.Inference.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			ServiceName: "atlasvision-worker",
			HTTP:        HTTPConfig{Port: 8080},
			Database:    DatabaseConfig{DSN: "dsn"},
			Kafka:       KafkaConfig{Brokers: []string{"localhost:9092"}},
			Inference:   InferenceConfig{BaseURL: "https://inference.example.com"},
			Storage:     StorageConfig{Driver: "memory"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		cfg := base()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "dev", cfg.Environment)
	})

	t.Run("missing service name", func(t *testing.T) {
		cfg := base()
		cfg.ServiceName = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid port", func(t *testing.T) {
		cfg := base()
		cfg.HTTP.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing dsn", func(t *testing.T) {
		cfg := base()
		cfg.Database.DSN = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing brokers", func(t *testing.T) {
		cfg := base()
		cfg.Kafka.Brokers = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing inference base url", func(t *testing.T) {
		cfg := base()
		cfg.Inference.BaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("s3 requires bucket", func(t *testing.T) {
		cfg := base()
		cfg.Storage = StorageConfig{Driver: "s3"}
		assert.Error(t, cfg.Validate())
		cfg.Storage.Bucket = "atlasvision-scans"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Driver = "ftp"
		assert.Error(t, cfg.Validate())
	})
}
