// Package kvutil provides utilities for working with NATS JetStream KeyValue stores.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// ManifestHistory is the number of manifest revisions kept per key.
const ManifestHistory = 5

// ManifestBucketConfig returns the bucket configuration for worker manifests.
func ManifestBucketConfig(bucket string) jetstream.KeyValueConfig {
	return jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "edgepart worker manifests",
		History:     ManifestHistory,
		Storage:     jetstream.FileStorage,
	}
}

// EnsureBucket creates or opens a KV bucket with retry logic.
//
// A bucket that already exists is opened instead. Transient failures are
// retried with exponential backoff until maxRetries attempts are used or ctx
// is done.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - config: KV bucket configuration
//   - maxRetries: Maximum number of attempts (default: 3)
//
// Returns:
//   - jetstream.KeyValue: The KV bucket instance
//   - error: The last error once all attempts failed
//
// Example:
//
//	kv, err := kvutil.EnsureBucket(ctx, js, kvutil.ManifestBucketConfig("edgepart"), 3)
func EnsureBucket(
	ctx context.Context,
	js jetstream.JetStream,
	config jetstream.KeyValueConfig,
	maxRetries int,
) (jetstream.KeyValue, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := range maxRetries {
		kv, err := js.CreateKeyValue(ctx, config)
		if err == nil {
			return kv, nil
		}

		if errors.Is(err, jetstream.ErrBucketExists) {
			kv, err := js.KeyValue(ctx, config.Bucket)
			if err == nil {
				return kv, nil
			}
			lastErr = fmt.Errorf("bucket exists but failed to open: %w", err)
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled during KV bucket creation: %w", ctx.Err())
		}

		// 10ms, 20ms, 40ms...
		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * 10 * time.Millisecond //nolint:gosec // attempt is bounded by maxRetries
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to create/open KV bucket %s after %d attempts: %w",
		config.Bucket, maxRetries, lastErr)
}

// Connect dials url and opens the manifest bucket.
//
// The caller owns the returned connection and must close it.
//
// Parameters:
//   - ctx: Context bounding bucket creation
//   - url: NATS server URL
//   - bucket: Manifest bucket name
//
// Returns:
//   - *nats.Conn: Open connection
//   - jetstream.KeyValue: The manifest bucket
//   - error: Connection or bucket failure
func Connect(ctx context.Context, url, bucket string) (*nats.Conn, jetstream.KeyValue, error) {
	nc, err := nats.Connect(url, nats.Name("edgepart"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("jetstream context: %w", err)
	}

	kv, err := EnsureBucket(ctx, js, ManifestBucketConfig(bucket), 3)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return nc, kv, nil
}
