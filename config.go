package edgepart

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/edgepart/internal/assignment"
)

// Supported output compression values.
const (
	CompressionNone = ""
	CompressionZstd = "zstd"
)

// KVConfig configures manifest publishing to NATS JetStream KV.
type KVConfig struct {
	// URL is the NATS server URL. Empty disables manifest publishing in the CLI.
	URL string `yaml:"url"`

	// Bucket is the KV bucket holding worker manifests.
	Bucket string `yaml:"bucket"`

	// KeyPrefix prefixes manifest keys ("{prefix}.worker-{n}").
	KeyPrefix string `yaml:"keyPrefix"`

	// OperationTimeout bounds the whole publish step.
	// Recommended: 10 seconds.
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

// Config is the configuration for a Runner.
//
// All duration fields accept standard Go duration strings like "10s".
type Config struct {
	// OutputDir receives the per-worker files 1.txt .. N.txt.
	OutputDir string `yaml:"outputDir"`

	// Compression selects the worker file encoding: "" for plain text or
	// "zstd" for ".txt.zst" files.
	Compression string `yaml:"compression"`

	// DefaultVertexCount is used by Generate when neither the request nor
	// the job document gives a vertex count.
	DefaultVertexCount int `yaml:"defaultVertexCount"`

	// EdgesPerVertex sizes Generate's edge count when the request gives none:
	// edges = EdgesPerVertex * vertices.
	EdgesPerVertex int `yaml:"edgesPerVertex"`

	// DefaultWorkerCount is used by Generate when the job document has no
	// worker_config.num_workers.
	DefaultWorkerCount int `yaml:"defaultWorkerCount"`

	// KV controls manifest publishing.
	KV KVConfig `yaml:"kv"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		OutputDir:          "data",
		Compression:        CompressionNone,
		DefaultVertexCount: 100,
		EdgesPerVertex:     2,
		DefaultWorkerCount: 1,
		KV: KVConfig{
			Bucket:           "edgepart-manifests",
			KeyPrefix:        assignment.DefaultManifestPrefix,
			OperationTimeout: 10 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}
	if cfg.DefaultVertexCount == 0 {
		cfg.DefaultVertexCount = defaults.DefaultVertexCount
	}
	if cfg.EdgesPerVertex == 0 {
		cfg.EdgesPerVertex = defaults.EdgesPerVertex
	}
	if cfg.DefaultWorkerCount == 0 {
		cfg.DefaultWorkerCount = defaults.DefaultWorkerCount
	}
	if cfg.KV.Bucket == "" {
		cfg.KV.Bucket = defaults.KV.Bucket
	}
	if cfg.KV.KeyPrefix == "" {
		cfg.KV.KeyPrefix = defaults.KV.KeyPrefix
	}
	if cfg.KV.OperationTimeout == 0 {
		cfg.KV.OperationTimeout = defaults.KV.OperationTimeout
	}
	// Note: Compression "" is valid (plain text), so no default is applied
}

// Validate checks configuration constraints.
//
// Hard Validation Rules:
//   - Compression is "" or "zstd"
//   - DefaultVertexCount >= 0 and EdgesPerVertex >= 0
//   - DefaultWorkerCount > 0
//   - KV.OperationTimeout > 0
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if cfg.Compression != CompressionNone && cfg.Compression != CompressionZstd {
		return fmt.Errorf("%w: unsupported compression %q (want \"\" or %q)",
			ErrInvalidConfig, cfg.Compression, CompressionZstd)
	}

	if cfg.DefaultVertexCount < 0 {
		return fmt.Errorf("%w: DefaultVertexCount must be >= 0, got %d", ErrInvalidConfig, cfg.DefaultVertexCount)
	}

	if cfg.EdgesPerVertex < 0 {
		return fmt.Errorf("%w: EdgesPerVertex must be >= 0, got %d", ErrInvalidConfig, cfg.EdgesPerVertex)
	}

	if cfg.DefaultWorkerCount <= 0 {
		return fmt.Errorf("%w: DefaultWorkerCount must be > 0, got %d", ErrInvalidConfig, cfg.DefaultWorkerCount)
	}

	if cfg.KV.OperationTimeout <= 0 {
		return fmt.Errorf("%w: KV.OperationTimeout must be > 0, got %v", ErrInvalidConfig, cfg.KV.OperationTimeout)
	}

	return nil
}

// ValidateWithWarnings logs warnings for valid but unusual values.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.EdgesPerVertex > 1000 {
		logger.Warn(
			"EdgesPerVertex is very high, generated graphs may hit simple graph capacity",
			"edgesPerVertex", cfg.EdgesPerVertex,
		)
	}

	if cfg.KV.OperationTimeout < time.Second {
		logger.Warn(
			"KV.OperationTimeout is very short, manifest publishing may time out",
			"timeout", cfg.KV.OperationTimeout,
			"recommended", "10s",
		)
	}

	if cfg.Compression == CompressionZstd {
		logger.Warn("worker files are zstd-compressed, readers must decompress .zst files")
	}
}

// LoadConfig reads a YAML run configuration, applies defaults and validates it.
//
// Parameters:
//   - path: YAML file using the Config field tags
//
// Returns:
//   - Config: The loaded configuration
//   - error: ErrInputNotFound, ErrIO or ErrInvalidConfig
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %w", ErrInputNotFound, err)
		}

		return Config{}, fmt.Errorf("%w: read config file: %w", ErrIO, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config file: %w", ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
