package subscription

import (
	"context"

	"github.com/arloliu/edgepart/types"
)

// ManifestHandler receives manifests delivered by ManifestWatcher.Watch.
//
// Behavior summary:
//   - Handle is called once per new manifest version, in version order.
//     Replays of a version already delivered are dropped.
//   - Calls are sequential; the watcher does not read the next update until
//     Handle returns, so a slow handler delays later versions but never
//     reorders them.
//   - A non-nil error stops Watch, which returns it wrapped in ErrHandlerFailed.
//
// Parameters:
//   - ctx: Context of the Watch call
//   - m: The manifest, already decoded
//
// Returns:
//   - error: nil to keep watching
//
// Example:
//
//	h := ManifestHandlerFunc(func(ctx context.Context, m types.WorkerManifest) error {
//	    if err := subscription.Verify(m); err != nil {
//	        return err
//	    }
//	    return loadShard(m.File.Path)
//	})
type ManifestHandler interface {
	Handle(ctx context.Context, m types.WorkerManifest) error
}

// ManifestHandlerFunc is a function adapter for ManifestHandler.
type ManifestHandlerFunc func(ctx context.Context, m types.WorkerManifest) error

// Handle implements ManifestHandler interface.
func (f ManifestHandlerFunc) Handle(ctx context.Context, m types.WorkerManifest) error {
	return f(ctx, m)
}
