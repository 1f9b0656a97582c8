package api_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cwlroster/internal/api"
	"github.com/mcoot/cwlroster/internal/config"
	"github.com/mcoot/cwlroster/internal/testutil"
)

func TestServer_ServeUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	cfg := config.Default().Server
	cfg.ShutdownTimeout = time.Second
	server := api.NewServer(handler, cfg, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServer_RunInvalidAddress(t *testing.T) {
	cfg := config.Default().Server
	cfg.Port = -1
	server := api.NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())

	err := server.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, ":-1", server.Addr())
}
