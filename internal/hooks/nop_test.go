package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/edgepart/types"
)

func TestNewNop(t *testing.T) {
	hooks := NewNop()
	ctx := context.Background()

	require.NotNil(t, hooks.OnFileWritten)
	require.NotNil(t, hooks.OnManifestsPublished)
	require.NotNil(t, hooks.OnError)

	require.NoError(t, hooks.OnFileWritten(ctx, types.FileStat{Worker: 0, Path: "data/1.txt"}))
	require.NoError(t, hooks.OnManifestsPublished(ctx, 3, nil))
	require.NoError(t, hooks.OnError(ctx, errors.New("boom")))
}

func TestFill(t *testing.T) {
	t.Run("nil hooks", func(t *testing.T) {
		h := Fill(nil)

		require.NotNil(t, h.OnFileWritten)
		require.NotNil(t, h.OnError)
	})

	t.Run("keeps custom callbacks", func(t *testing.T) {
		var written []string
		h := Fill(&types.Hooks{
			OnFileWritten: func(_ context.Context, stat types.FileStat) error {
				written = append(written, stat.Path)
				return nil
			},
		})

		require.NoError(t, h.OnFileWritten(context.Background(), types.FileStat{Path: "a"}))
		require.NoError(t, h.OnManifestsPublished(context.Background(), 1, nil))
		require.Equal(t, []string{"a"}, written)
	})
}
