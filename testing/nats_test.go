package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartEmbeddedNATS(t *testing.T) {
	ns, nc := StartEmbeddedNATS(t)

	require.NotNil(t, ns)
	require.True(t, nc.IsConnected())
	require.True(t, ns.ReadyForConnections(1*time.Second))
	require.True(t, ns.JetStreamEnabled())
}

func TestCreateJetStreamKV(t *testing.T) {
	_, nc := StartEmbeddedNATS(t)
	kv := CreateJetStreamKV(t, nc, "edgepart-test")

	_, err := kv.Put(t.Context(), "manifest.worker-0", []byte("{}"))
	require.NoError(t, err)

	entry, err := kv.Get(t.Context(), "manifest.worker-0")
	require.NoError(t, err)
	require.Equal(t, []byte("{}"), entry.Value())
	require.Equal(t, "edgepart-test", kv.Bucket())
}
