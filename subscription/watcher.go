package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/edgepart/types"
)

// ManifestWatcher reads one worker's manifest from a JetStream KV bucket.
//
// A ManifestWatcher is not safe for concurrent use.
type ManifestWatcher struct {
	kv      jetstream.KeyValue
	cfg     WatcherConfig
	key     string
	logger  types.Logger
	backoff *retryBackoff

	lastVersion int64
}

// NewManifestWatcher creates a watcher for cfg.Worker's manifest.
//
// Parameters:
//   - kv: Manifest bucket the run published to
//   - cfg: Watcher configuration
//
// Returns:
//   - *ManifestWatcher: The watcher
//   - error: ErrInvalidConfig if kv is nil or cfg.Worker is negative
func NewManifestWatcher(kv jetstream.KeyValue, cfg WatcherConfig) (*ManifestWatcher, error) {
	if kv == nil {
		return nil, fmt.Errorf("%w: nil manifest bucket", types.ErrInvalidConfig)
	}
	if cfg.Worker < 0 {
		return nil, fmt.Errorf("%w: worker index must be non-negative, got %d", types.ErrInvalidConfig, cfg.Worker)
	}

	cfg.applyDefaults()

	return &ManifestWatcher{
		kv:      kv,
		cfg:     cfg,
		key:     cfg.KeyPrefix + "." + types.WorkerLabel(cfg.Worker),
		logger:  cfg.Logger,
		backoff: newRetryBackoff(cfg.RetryBase, cfg.RetryCap, cfg.Rand),
	}, nil
}

// Key returns the KV key being read.
func (w *ManifestWatcher) Key() string {
	return w.key
}

// LastVersion returns the highest manifest version delivered so far.
func (w *ManifestWatcher) LastVersion() int64 {
	return w.lastVersion
}

// Fetch returns the current manifest.
//
// Transient KV failures are retried with jittered backoff up to
// MaxRetries times.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - types.WorkerManifest: The decoded manifest
//   - error: ErrManifestNotFound if no manifest exists, or the last KV error
func (w *ManifestWatcher) Fetch(ctx context.Context) (types.WorkerManifest, error) {
	w.backoff.reset()

	var lastErr error
	for attempt := 0; attempt <= w.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := w.backoff.wait(ctx); err != nil {
				return types.WorkerManifest{}, err
			}
		}

		entry, err := w.kv.Get(ctx, w.key)
		if err == nil {
			m, err := decodeManifest(entry)
			if err != nil {
				return types.WorkerManifest{}, err
			}
			w.lastVersion = max(w.lastVersion, m.Version)

			return m, nil
		}

		if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
			return types.WorkerManifest{}, fmt.Errorf("%w: %s", ErrManifestNotFound, w.key)
		}
		if ctx.Err() != nil {
			return types.WorkerManifest{}, ctx.Err()
		}

		lastErr = err
		w.logger.Warn("manifest fetch failed, retrying", "key", w.key, "attempt", attempt+1, "error", err)
	}

	return types.WorkerManifest{}, fmt.Errorf("fetch %s: %w", w.key, lastErr)
}

// Watch delivers every new manifest version to h until ctx is done.
//
// The current manifest, if any, is delivered first. Deletes are logged and
// skipped. If the underlying KV watch ends unexpectedly it is re-created
// with jittered backoff; after MaxRetries consecutive failures Watch gives up.
//
// Parameters:
//   - ctx: Context for cancellation; Watch returns nil once it is done
//   - h: Handler called for each new version
//
// Returns:
//   - error: ErrHandlerFailed wrapping the handler error, or the last KV error
func (w *ManifestWatcher) Watch(ctx context.Context, h ManifestHandler) error {
	w.backoff.reset()

	failures := 0
	for {
		progressed, err := w.watchOnce(ctx, h)
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, ErrHandlerFailed) {
			return err
		}
		if progressed {
			failures = 0
			w.backoff.reset()
		}

		failures++
		if failures > w.cfg.MaxRetries {
			return fmt.Errorf("watch %s: %w", w.key, err)
		}

		w.logger.Warn("manifest watch interrupted, retrying", "key", w.key, "failures", failures, "error", err)
		if err := w.backoff.wait(ctx); err != nil {
			return nil
		}
	}
}

// watchOnce runs one KV watch until it ends.
//
// Returns:
//   - bool: Whether any update was received
//   - error: Why the watch ended
func (w *ManifestWatcher) watchOnce(ctx context.Context, h ManifestHandler) (bool, error) {
	watcher, err := w.kv.Watch(ctx, w.key)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = watcher.Stop()
	}()

	progressed := false
	for {
		select {
		case <-ctx.Done():
			return progressed, ctx.Err()
		case entry, ok := <-watcher.Updates():
			if !ok {
				return progressed, errors.New("watch updates closed")
			}
			progressed = true

			// nil marks the end of the initial values.
			if entry == nil {
				continue
			}
			if op := entry.Operation(); op == jetstream.KeyValueDelete || op == jetstream.KeyValuePurge {
				w.logger.Info("worker manifest removed", "key", w.key, "revision", entry.Revision())
				continue
			}

			m, err := decodeManifest(entry)
			if err != nil {
				w.logger.Warn("skipping undecodable manifest", "key", w.key, "revision", entry.Revision(), "error", err)
				continue
			}
			if m.Version <= w.lastVersion {
				w.logger.Debug("skipping replayed manifest", "key", w.key, "version", m.Version)
				continue
			}

			if err := h.Handle(ctx, m); err != nil {
				return progressed, fmt.Errorf("%w: version %d: %w", ErrHandlerFailed, m.Version, err)
			}
			w.lastVersion = m.Version
		}
	}
}

func decodeManifest(entry jetstream.KeyValueEntry) (types.WorkerManifest, error) {
	var m types.WorkerManifest
	if err := json.Unmarshal(entry.Value(), &m); err != nil {
		return types.WorkerManifest{}, fmt.Errorf("decode manifest %s: %w", entry.Key(), err)
	}

	return m, nil
}
