package emailjs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub"}, time.Second, nopLogger{})
	require.True(t, c.Configured())

	err := c.Send(context.Background(), map[string]string{"to_email": "jane@example.com", "price": "KES 1,500"})
	require.NoError(t, err)
	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "KES 1,500", got.TemplateParams["price"])
}

func TestSend_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL}, time.Second, nopLogger{})
	assert.False(t, c.Configured())

	err := c.Send(context.Background(), map[string]string{})
	require.ErrorIs(t, err, ErrSendFailed)
	assert.Contains(t, err.Error(), "template ID is invalid")
}
