package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-mining/sv2-wizard/internal/server"
)

func TestServe(t *testing.T) {
	saveAndRestoreFactories(t)

	var gotAddr string
	var status int
	runServer = func(_ context.Context, s *server.Server, addr string) error {
		gotAddr = addr
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		status = rec.Code
		return nil
	}

	t.Run("flag address", func(t *testing.T) {
		require.NoError(t, Serve(context.Background(), ServeOptions{Addr: ":9000", Metrics: true, SessionTTL: time.Hour}))
		assert.Equal(t, ":9000", gotAddr)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("environment address", func(t *testing.T) {
		t.Setenv(EnvAddr, "0.0.0.0:8181")
		require.NoError(t, Serve(context.Background(), ServeOptions{}))
		assert.Equal(t, "0.0.0.0:8181", gotAddr)
		assert.Equal(t, http.StatusNotFound, status, "metrics disabled")
	})

	t.Run("default address", func(t *testing.T) {
		t.Setenv(EnvAddr, "")
		require.NoError(t, Serve(context.Background(), ServeOptions{}))
		assert.Equal(t, server.DefaultAddr, gotAddr)
	})
}

func TestServe_RunError(t *testing.T) {
	saveAndRestoreFactories(t)
	runServer = func(context.Context, *server.Server, string) error {
		return errors.New("address in use")
	}

	assert.EqualError(t, Serve(context.Background(), ServeOptions{Addr: ":1"}), "address in use")
}
