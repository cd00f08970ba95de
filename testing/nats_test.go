package testing

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func TestStartEmbeddedNATS(t *testing.T) {
	ns, nc := StartEmbeddedNATS(t)

	require.NotNil(t, ns)
	require.True(t, nc.IsConnected())
	require.True(t, ns.ReadyForConnections(time.Second))

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	_, err = js.AccountInfo(t.Context())
	require.NoError(t, err)
}

func TestStartEmbeddedNATS_Parallel(t *testing.T) {
	t.Parallel()

	for range 3 {
		t.Run("parallel", func(t *testing.T) {
			t.Parallel()

			_, nc := StartEmbeddedNATS(t)
			require.True(t, nc.IsConnected())
		})
	}
}

func TestCreateResultCache(t *testing.T) {
	_, nc := StartEmbeddedNATS(t)
	kv := CreateResultCache(t, nc, "results")

	_, err := kv.Put(t.Context(), "k", []byte("v"))
	require.NoError(t, err)

	entry, err := kv.Get(t.Context(), "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), entry.Value())
	require.Equal(t, "results", kv.Bucket())
}

func TestNewTestLogger(t *testing.T) {
	logger := NewTestLogger(t)

	logger.Debug("debug", "k", 1)
	logger.Info("info")
	logger.Warn("warn", "odd")
	logger.Error("error", "k", "v")
}
