package types

import "context"

// Hooks defines callbacks for run events.
//
// All hooks are optional and called synchronously on the run's goroutine, in
// the order the events happen. Hook errors are logged and never fail the run.
//
// Example:
//
//	hooks := &edgepart.Hooks{
//	    OnFileWritten: func(ctx context.Context, stat edgepart.FileStat) error {
//	        return uploader.Enqueue(ctx, stat.Path)
//	    },
//	}
type Hooks struct {
	// OnFileWritten is called after each worker file and the global graph file
	// is written.
	OnFileWritten func(ctx context.Context, stat FileStat) error

	// OnManifestsPublished is called after manifests are published to KV.
	OnManifestsPublished func(ctx context.Context, version int64, manifests []WorkerManifest) error

	// OnError is called when a run fails, before the error is returned.
	OnError func(ctx context.Context, err error) error
}
