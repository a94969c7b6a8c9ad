package assignment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/edgepart/internal/logger"
	"github.com/arloliu/edgepart/types"
)

// DefaultManifestPrefix is the default key prefix for worker manifests.
const DefaultManifestPrefix = "manifest"

// KVPublisher publishes worker manifests to NATS KV.
//
// Version monotonicity across runs is kept by discovering the highest existing
// version before the first publish.
type KVPublisher struct {
	kv        jetstream.KeyValue
	prefix    string
	keyPrefix string // cached "prefix."

	currentVersion int64
	discovered     bool

	logger types.Logger
}

// NewKVPublisher creates a new manifest publisher.
//
// Parameters:
//   - kv: NATS KV bucket for manifests
//   - prefix: Prefix for manifest keys (DefaultManifestPrefix if empty)
//   - l: Logger for publishing events (nop logger if nil)
//
// Returns:
//   - *KVPublisher: A new publisher instance
func NewKVPublisher(kv jetstream.KeyValue, prefix string, l types.Logger) *KVPublisher {
	if prefix == "" {
		prefix = DefaultManifestPrefix
	}
	if l == nil {
		l = logger.NewNop()
	}

	return &KVPublisher{
		kv:        kv,
		prefix:    prefix,
		keyPrefix: prefix + ".",
		logger:    l,
	}
}

// Key returns the KV key of a worker's manifest.
func (p *KVPublisher) Key(worker int) string {
	return p.keyPrefix + types.WorkerLabel(worker)
}

// listKeys returns the bucket's keys; an empty bucket yields no keys.
func (p *KVPublisher) listKeys(ctx context.Context) ([]string, error) {
	keys, err := p.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) || types.IsNoKeysFoundError(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: list KV keys: %w", types.ErrPublishFailed, err)
	}

	return keys, nil
}

// DiscoverHighestVersion scans KV for the highest existing manifest version.
//
// Keys outside the prefix and entries that cannot be read or decoded are
// skipped.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - error: ErrPublishFailed on KV access failure
func (p *KVPublisher) DiscoverHighestVersion(ctx context.Context) error {
	keys, err := p.listKeys(ctx)
	if err != nil {
		return err
	}

	p.logger.Debug("discovering highest manifest version", "total_keys", len(keys), "prefix", p.prefix)

	highest := int64(0)
	checked := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, p.keyPrefix) {
			continue
		}

		checked++
		entry, err := p.kv.Get(ctx, key)
		if err != nil {
			p.logger.Debug("failed to read manifest key", "key", key, "error", err)
			continue
		}

		var m types.WorkerManifest
		if err := json.Unmarshal(entry.Value(), &m); err != nil {
			p.logger.Debug("failed to unmarshal manifest", "key", key, "error", err)
			continue
		}
		highest = max(highest, m.Version)
	}

	p.currentVersion = highest
	p.discovered = true

	if highest > 0 {
		p.logger.Info("discovered existing manifests", "highest_version", highest, "checked_keys", checked)
	}

	return nil
}

// cleanupStale removes manifest keys for workers outside active.
//
// Returns:
//   - int: Number of deleted keys
//   - error: ErrPublishFailed if the keys cannot be listed; failed deletes are logged
func (p *KVPublisher) cleanupStale(ctx context.Context, active map[string]bool) (int, error) {
	keys, err := p.listKeys(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, p.keyPrefix) {
			continue
		}
		if active[key] {
			continue
		}

		p.logger.Debug("deleting stale manifest", "key", key)
		if err := p.kv.Delete(ctx, key); err != nil {
			p.logger.Warn("failed to delete stale manifest", "key", key, "error", err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		p.logger.Info("cleaned up stale manifests", "deleted_count", deleted)
	}

	return deleted, nil
}

// Publish writes one manifest per worker under "{prefix}.worker-{n}".
//
// Each manifest's Version is overwritten with the new version, which is one
// greater than the highest version seen in the bucket. Manifests of workers
// missing from manifests are deleted first.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - manifests: One manifest per worker; File.Worker selects the key
//
// Returns:
//   - int64: The published version
//   - error: ErrPublishFailed on marshaling or KV failure
func (p *KVPublisher) Publish(ctx context.Context, manifests []types.WorkerManifest) (int64, error) {
	if len(manifests) == 0 {
		p.logger.Info("no manifests to publish")
		return p.currentVersion, nil
	}

	if !p.discovered {
		if err := p.DiscoverHighestVersion(ctx); err != nil {
			return 0, err
		}
	}

	version := p.currentVersion + 1

	active := make(map[string]bool, len(manifests))
	for _, m := range manifests {
		active[p.Key(m.File.Worker)] = true
	}
	if _, err := p.cleanupStale(ctx, active); err != nil {
		p.logger.Warn("stale manifest cleanup failed, continuing with publish", "error", err)
	}

	for _, m := range manifests {
		m.Version = version
		data, err := json.Marshal(m)
		if err != nil {
			return 0, fmt.Errorf("%w: marshal manifest: %w", types.ErrPublishFailed, err)
		}

		key := p.Key(m.File.Worker)
		p.logger.Debug("publishing manifest", "key", key, "edges", m.File.Edges, "version", version)
		if _, err := p.kv.Put(ctx, key, data); err != nil {
			return 0, fmt.Errorf("%w: put %s: %w", types.ErrPublishFailed, key, err)
		}
	}

	p.currentVersion = version
	p.logger.Info("manifests published", "version", version, "workers", len(manifests))

	return version, nil
}

// CleanupAll removes every manifest key under the prefix.
func (p *KVPublisher) CleanupAll(ctx context.Context) error {
	_, err := p.cleanupStale(ctx, nil)
	return err
}

// CurrentVersion returns the last discovered or published version.
func (p *KVPublisher) CurrentVersion() int64 {
	return p.currentVersion
}
