package natsutil

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

func TestIsConnectivityError(t *testing.T) {
	require.False(t, IsConnectivityError(nil))
	require.False(t, IsConnectivityError(errors.New("permission denied")))
	require.False(t, IsConnectivityError(context.Canceled))

	require.True(t, IsConnectivityError(nats.ErrTimeout))
	require.True(t, IsConnectivityError(fmt.Errorf("put manifest: %w", nats.ErrConnectionClosed)))
	require.True(t, IsConnectivityError(errors.New("dial tcp 127.0.0.1:4222: connect: connection refused")))
}
