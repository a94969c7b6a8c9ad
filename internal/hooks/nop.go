package hooks

import (
	"context"

	"github.com/arloliu/edgepart/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// It is used when no custom hooks are provided, so callers never check for nil.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.FileStat) error                = (*NopHooks)(nil).OnFileWritten
	_ func(context.Context, int64, []types.WorkerManifest) error = (*NopHooks)(nil).OnManifestsPublished
	_ func(context.Context, error) error                         = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnFileWritten:        h.OnFileWritten,
		OnManifestsPublished: h.OnManifestsPublished,
		OnError:              h.OnError,
	}
}

// Fill returns h with every nil callback replaced by its no-op.
func Fill(h *types.Hooks) types.Hooks {
	nop := NewNop()
	if h == nil {
		return nop
	}

	out := *h
	if out.OnFileWritten == nil {
		out.OnFileWritten = nop.OnFileWritten
	}
	if out.OnManifestsPublished == nil {
		out.OnManifestsPublished = nop.OnManifestsPublished
	}
	if out.OnError == nil {
		out.OnError = nop.OnError
	}

	return out
}

// OnFileWritten is a no-op implementation.
func (h *NopHooks) OnFileWritten(_ context.Context, _ types.FileStat) error {
	return nil
}

// OnManifestsPublished is a no-op implementation.
func (h *NopHooks) OnManifestsPublished(_ context.Context, _ int64, _ []types.WorkerManifest) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
