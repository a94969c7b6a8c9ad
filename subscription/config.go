package subscription

import (
	"time"

	"github.com/arloliu/edgepart/internal/logger"
	"github.com/arloliu/edgepart/types"
)

// WatcherConfig configures a ManifestWatcher.
//
// Required fields:
//   - Worker
//
// Zero values of the other fields are replaced by defaults via applyDefaults().
type WatcherConfig struct {
	// Worker is the zero-based worker index whose manifest is read.
	Worker int

	// KeyPrefix must match the publishing run's KV.KeyPrefix.
	KeyPrefix string

	MaxRetries int
	RetryBase  time.Duration
	RetryCap   time.Duration

	// Rand drives retry jitter. Optional.
	Rand types.Rand

	Logger types.Logger
}

// applyDefaults fills unset optional fields with project defaults.
func (cfg *WatcherConfig) applyDefaults() {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryBase == 0 {
		cfg.RetryBase = DefaultRetryBase
	}
	if cfg.RetryCap == 0 {
		cfg.RetryCap = DefaultRetryCap
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
}
