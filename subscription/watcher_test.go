package subscription

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/edgepart/internal/assignment"
	"github.com/arloliu/edgepart/internal/edgefile"
	"github.com/arloliu/edgepart/internal/logger"
	edgetest "github.com/arloliu/edgepart/testing"
	"github.com/arloliu/edgepart/types"
)

func manifestFor(worker, edges int) types.WorkerManifest {
	return types.WorkerManifest{
		Worker:      types.WorkerLabel(worker),
		WorkerCount: 2,
		File:        types.FileStat{Worker: worker, Edges: edges},
	}
}

func TestNewManifestWatcher_Validation(t *testing.T) {
	_, err := NewManifestWatcher(nil, WatcherConfig{})
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	_, nc := edgetest.StartEmbeddedNATS(t)
	kv := edgetest.CreateJetStreamKV(t, nc, "manifests")

	_, err = NewManifestWatcher(kv, WatcherConfig{Worker: -1})
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	w, err := NewManifestWatcher(kv, WatcherConfig{Worker: 3})
	require.NoError(t, err)
	require.Equal(t, "manifest.worker-3", w.Key())
}

func TestManifestWatcher_Fetch(t *testing.T) {
	_, nc := edgetest.StartEmbeddedNATS(t)
	kv := edgetest.CreateJetStreamKV(t, nc, "manifests")

	w, err := NewManifestWatcher(kv, WatcherConfig{Worker: 1, Logger: logger.NewTest(t)})
	require.NoError(t, err)

	_, err = w.Fetch(t.Context())
	require.ErrorIs(t, err, ErrManifestNotFound)

	pub := assignment.NewKVPublisher(kv, DefaultKeyPrefix, logger.NewTest(t))
	_, err = pub.Publish(t.Context(), []types.WorkerManifest{manifestFor(0, 4), manifestFor(1, 6)})
	require.NoError(t, err)

	m, err := w.Fetch(t.Context())
	require.NoError(t, err)
	require.Equal(t, int64(1), m.Version)
	require.Equal(t, "worker-1", m.Worker)
	require.Equal(t, 6, m.File.Edges)
	require.Equal(t, int64(1), w.LastVersion())
}

func TestManifestWatcher_Watch(t *testing.T) {
	_, nc := edgetest.StartEmbeddedNATS(t)
	kv := edgetest.CreateJetStreamKV(t, nc, "manifests")
	pub := assignment.NewKVPublisher(kv, DefaultKeyPrefix, logger.NewTest(t))

	_, err := pub.Publish(t.Context(), []types.WorkerManifest{manifestFor(0, 1), manifestFor(1, 1)})
	require.NoError(t, err)

	w, err := NewManifestWatcher(kv, WatcherConfig{Worker: 0, Logger: logger.NewTest(t)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	got := make(chan types.WorkerManifest, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, ManifestHandlerFunc(func(_ context.Context, m types.WorkerManifest) error {
			got <- m
			return nil
		}))
	}()

	receive := func() types.WorkerManifest {
		select {
		case m := <-got:
			return m
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for manifest")
			return types.WorkerManifest{}
		}
	}

	require.Equal(t, int64(1), receive().Version)

	_, err = pub.Publish(t.Context(), []types.WorkerManifest{manifestFor(0, 9), manifestFor(1, 1)})
	require.NoError(t, err)

	m := receive()
	require.Equal(t, int64(2), m.Version)
	require.Equal(t, 9, m.File.Edges)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	require.Equal(t, int64(2), w.LastVersion())
}

func TestManifestWatcher_WatchHandlerError(t *testing.T) {
	_, nc := edgetest.StartEmbeddedNATS(t)
	kv := edgetest.CreateJetStreamKV(t, nc, "manifests")
	pub := assignment.NewKVPublisher(kv, DefaultKeyPrefix, logger.NewTest(t))

	_, err := pub.Publish(t.Context(), []types.WorkerManifest{manifestFor(0, 1)})
	require.NoError(t, err)

	w, err := NewManifestWatcher(kv, WatcherConfig{Worker: 0})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	err = w.Watch(ctx, ManifestHandlerFunc(func(context.Context, types.WorkerManifest) error {
		return ErrManifestMismatch
	}))
	require.ErrorIs(t, err, ErrHandlerFailed)
	require.ErrorIs(t, err, ErrManifestMismatch)
	require.Zero(t, w.LastVersion())
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1.txt.zst")
	stat, err := edgefile.Write(path, []types.Edge{{From: 0, To: 1}, {From: 0, To: 3}})
	require.NoError(t, err)

	m := types.WorkerManifest{Version: 1, Worker: "worker-0", File: stat}
	require.NoError(t, Verify(m))

	tampered := m
	tampered.File.Digest++
	require.ErrorIs(t, Verify(tampered), ErrManifestMismatch)

	short := m
	short.File.Edges = 1
	require.ErrorIs(t, Verify(short), ErrManifestMismatch)

	require.NoError(t, os.Remove(path))
	require.ErrorIs(t, Verify(m), types.ErrInputNotFound)
}
