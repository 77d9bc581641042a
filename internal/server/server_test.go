package server

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/kvs/internal/engine"
	"github.com/ignitedb/kvs/internal/protocol"
	"github.com/ignitedb/kvs/internal/workerpool"
	"github.com/ignitedb/kvs/pkg/logger"
	"github.com/ignitedb/kvs/pkg/options"
)

func startTestServer(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir

	log := logger.New("test")
	eng, err := engine.New(&engine.Config{Options: &opts, Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	pool, err := workerpool.NewFixed(2)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	probe, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := probe.Addr().String()
	require.NoError(t, probe.Close())

	srv := New(eng, pool, log)
	go srv.Run(addr)
	waitForListener(t, addr)

	return addr
}

func waitForListener(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server never started listening on %s", addr)
}

func roundTrip(t *testing.T, addr string, req protocol.Request) protocol.Response {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, protocol.WriteRequest(conn, req))
	resp, err := protocol.ReadResponse(conn)
	require.NoError(t, err)
	return resp
}

func TestServerSetGetRemoveRoundTrip(t *testing.T) {
	addr := startTestServer(t)

	resp := roundTrip(t, addr, protocol.NewSetRequest("k", "v"))
	require.False(t, resp.IsErr())

	resp = roundTrip(t, addr, protocol.NewGetRequest("k"))
	require.False(t, resp.IsErr())
	value, ok := resp.Value()
	require.True(t, ok)
	require.Equal(t, "v", value)

	resp = roundTrip(t, addr, protocol.NewRmRequest("k"))
	require.False(t, resp.IsErr())

	resp = roundTrip(t, addr, protocol.NewGetRequest("k"))
	require.False(t, resp.IsErr())
	_, ok = resp.Value()
	require.False(t, ok)
}

func TestServerRemoveMissingKeyReturnsErr(t *testing.T) {
	addr := startTestServer(t)

	resp := roundTrip(t, addr, protocol.NewRmRequest("nope"))
	require.True(t, resp.IsErr())
}
