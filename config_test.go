package edgepart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/edgepart/internal/logger"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "data", cfg.OutputDir)
	require.Equal(t, CompressionNone, cfg.Compression)
	require.Equal(t, 100, cfg.DefaultVertexCount)
	require.Equal(t, 2, cfg.EdgesPerVertex)
	require.Equal(t, 1, cfg.DefaultWorkerCount)
	require.Equal(t, "edgepart-manifests", cfg.KV.Bucket)
	require.Equal(t, "manifest", cfg.KV.KeyPrefix)
	require.Equal(t, 10*time.Second, cfg.KV.OperationTimeout)
	require.Empty(t, cfg.KV.URL)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			OutputDir:          "shards",
			Compression:        CompressionZstd,
			DefaultVertexCount: 10,
			EdgesPerVertex:     5,
			DefaultWorkerCount: 3,
			KV: KVConfig{
				URL:              "nats://example:4222",
				Bucket:           "graphs",
				KeyPrefix:        "job",
				OperationTimeout: 30 * time.Second,
			},
		}
		want := cfg
		SetDefaults(&cfg)

		require.Equal(t, want, cfg)
	})

	t.Run("applies partial defaults", func(t *testing.T) {
		cfg := Config{
			OutputDir: "out",
			KV:        KVConfig{Bucket: "graphs"},
		}
		SetDefaults(&cfg)

		require.Equal(t, "out", cfg.OutputDir)
		require.Equal(t, "graphs", cfg.KV.Bucket)
		require.Equal(t, 100, cfg.DefaultVertexCount)
		require.Equal(t, "manifest", cfg.KV.KeyPrefix)
		require.Equal(t, 10*time.Second, cfg.KV.OperationTimeout)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown compression", func(c *Config) { c.Compression = "gzip" }},
		{"negative vertex count", func(c *Config) { c.DefaultVertexCount = -1 }},
		{"negative edges per vertex", func(c *Config) { c.EdgesPerVertex = -2 }},
		{"zero worker count", func(c *Config) { c.DefaultWorkerCount = 0 }},
		{"negative timeout", func(c *Config) { c.KV.OperationTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	t.Run("defaults produce no warnings", func(t *testing.T) {
		rec := logger.NewRecorder()
		cfg := DefaultConfig()
		cfg.ValidateWithWarnings(rec)

		require.Empty(t, rec.Entries())
	})

	t.Run("unusual values warn", func(t *testing.T) {
		rec := logger.NewRecorder()
		cfg := DefaultConfig()
		cfg.EdgesPerVertex = 5000
		cfg.KV.OperationTimeout = 100 * time.Millisecond
		cfg.Compression = CompressionZstd
		cfg.ValidateWithWarnings(rec)

		require.Len(t, rec.Entries(), 3)
		for _, e := range rec.Entries() {
			require.Equal(t, "WARN", e.Level)
		}
	})
}

// TestConfig_YAML demonstrates that time.Duration works directly with YAML unmarshaling
func TestConfig_YAML(t *testing.T) {
	yamlConfig := `
outputDir: shards
compression: zstd
defaultVertexCount: 500
edgesPerVertex: 4
defaultWorkerCount: 8
kv:
  url: nats://localhost:4222
  bucket: graphs
  keyPrefix: job
  operationTimeout: 15s
`

	var cfg Config
	err := yaml.Unmarshal([]byte(yamlConfig), &cfg)
	require.NoError(t, err)

	require.Equal(t, "shards", cfg.OutputDir)
	require.Equal(t, CompressionZstd, cfg.Compression)
	require.Equal(t, 500, cfg.DefaultVertexCount)
	require.Equal(t, 4, cfg.EdgesPerVertex)
	require.Equal(t, 8, cfg.DefaultWorkerCount)
	require.Equal(t, "nats://localhost:4222", cfg.KV.URL)
	require.Equal(t, "graphs", cfg.KV.Bucket)
	require.Equal(t, "job", cfg.KV.KeyPrefix)
	require.Equal(t, 15*time.Second, cfg.KV.OperationTimeout)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("applies defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte("outputDir: out\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "out", cfg.OutputDir)
		require.Equal(t, 100, cfg.DefaultVertexCount)
		require.Equal(t, 10*time.Second, cfg.KV.OperationTimeout)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "absent.yaml"))
		require.ErrorIs(t, err, ErrInputNotFound)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("outputDir: [unterminated\n"), 0o644))

		_, err := LoadConfig(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("compression: lz4\n"), 0o644))

		_, err := LoadConfig(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
