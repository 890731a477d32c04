package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func ok(context.Context) error { return nil }

func TestHandle(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		h := NewHandler(map[string]Pinger{
			"database": PingFunc(ok),
			"redis":    nil,
		}, time.Second, nopLogger{})

		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, map[string]string{"database": "ok"}, body.Checks)
	})

	t.Run("redis down", func(t *testing.T) {
		h := NewHandler(map[string]Pinger{
			"database": PingFunc(ok),
			"redis": PingFunc(func(context.Context) error {
				return errors.New("connection refused")
			}),
		}, time.Second, nopLogger{})

		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "unavailable", body.Checks["redis"])
		assert.Equal(t, "ok", body.Checks["database"])
	})
}
