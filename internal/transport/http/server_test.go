package httptransport

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewServerDefaults(t *testing.T) {
	srv := NewServer(ServerConfig{Address: ":0", WriteTimeout: time.Second}, http.NotFoundHandler())
	require.Equal(t, 5*time.Second, srv.ReadTimeout)
	require.Equal(t, time.Second, srv.WriteTimeout)
	require.Equal(t, 60*time.Second, srv.IdleTimeout)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := RequestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/summary", nil))

	require.Equal(t, http.StatusTeapot, rr.Code)
	require.Contains(t, buf.String(), `"status":418`)
	require.Contains(t, buf.String(), `"path":"/v1/summary"`)
}
