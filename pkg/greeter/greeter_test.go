package greeter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, time.October, 17, 9, 30, 0, 123456789, time.UTC)

func newTestHandler(tag string) *Handler {
	return NewHandler(logr.Discard(), Config{Tag: tag}, WithClock(func() time.Time { return fixedTime }))
}

func serve(h http.Handler, method string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/", strings.NewReader(`{"ignored": true}`))
	h.ServeHTTP(rec, req)
	return rec
}

func TestGreeting(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			rec := serve(newTestHandler("v1.2.3"), method)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got Greeting
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			want := Greeting{
				Message: Message,
				DT:      "2026-10-17T09:30:00.123456789Z",
				Version: "v1.2.3",
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("greeting mismatch (-want +got):\n%s", diff)
			}
			assert.Contains(t, rec.Body.String(), "v1.2.3")
		})
	}
}

func TestGreetingDefaultTag(t *testing.T) {
	rec := serve(newTestHandler(""), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"latest"`)
}

func TestGreetingIsIdempotent(t *testing.T) {
	h := newTestHandler("stable")
	first := serve(h, http.MethodGet).Body.String()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, serve(h, http.MethodGet).Body.String())
	}
}

func TestVersionStableWithRealClock(t *testing.T) {
	h := NewHandler(logr.Discard(), Config{Tag: "real"})
	a, b := h.Greet(), h.Greet()
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, a.Version, b.Version)
	_, err := time.Parse(time.RFC3339Nano, a.DT)
	require.NoError(t, err)
}

func TestPreflight(t *testing.T) {
	rec := serve(newTestHandler("v1"), http.MethodOptions)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSOrigin(t *testing.T) {
	h := NewHandler(logr.Discard(), Config{Tag: "v1", AllowOrigin: "https://example.com"})
	rec := serve(h, http.MethodGet)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodDelete, http.MethodPut, http.MethodPatch} {
		rec := serve(newTestHandler("v1"), method)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Allow"))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", clientIP(r))

	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientIP(r))
}
