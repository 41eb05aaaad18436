package probe

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferror "github.com/fission/greeter/pkg/error"
)

func fastOptions(url string, retries int) Options {
	return Options{
		URL:          url,
		Retries:      retries,
		Timeout:      time.Second,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}
}

func TestCheckHealthy(t *testing.T) {
	userAgent := make(chan string, 1)
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent <- r.UserAgent()
		_, _ = w.Write([]byte("ok"))
	}))
	defer s.Close()

	require.NoError(t, Check(context.Background(), logr.Discard(), fastOptions(s.URL, 0)))
	assert.Contains(t, <-userAgent, "greeter/")
}

func TestCheckRetriesUntilHealthy(t *testing.T) {
	var calls atomic.Int32
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer s.Close()

	require.NoError(t, Check(context.Background(), logr.Discard(), fastOptions(s.URL, 3)))
	assert.Equal(t, int32(3), calls.Load())
}

func TestCheckUnhealthy(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "warming up", http.StatusServiceUnavailable)
	}))
	defer s.Close()

	err := Check(context.Background(), logr.Discard(), fastOptions(s.URL, 1))
	require.Error(t, err)

	var fe ferror.Error
	require.True(t, errors.As(err, &fe))
	code, msg := ferror.GetHTTPError(err)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "warming up", msg)
}

func TestCheckNotFound(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	defer s.Close()

	err := Check(context.Background(), logr.Discard(), fastOptions(s.URL+"/healthz", 3))
	require.Error(t, err)
	assert.True(t, ferror.IsNotFound(err))
	assert.Contains(t, err.Error(), "health endpoint not found at "+s.URL+"/healthz")
}

func TestCheckConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := "http://" + ln.Addr().String()
	require.NoError(t, ln.Close())

	err = Check(context.Background(), logr.Discard(), fastOptions(url, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCheckBadURL(t *testing.T) {
	err := Check(context.Background(), logr.Discard(), fastOptions("http://bad host/", 0))
	require.Error(t, err)
	assert.True(t, ferror.IsInvalidArgument(err))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, "http://127.0.0.1:3000/healthz", nil)
	assert.Contains(t, buf.String(), "√")
	assert.Contains(t, buf.String(), "is healthy")

	buf.Reset()
	Report(&buf, "http://127.0.0.1:3000/healthz", errors.New("boom"))
	assert.Contains(t, buf.String(), "×")
	assert.Contains(t, buf.String(), "boom")
}

func TestWithDefaults(t *testing.T) {
	o := Options{Retries: -1}.withDefaults()
	assert.Equal(t, DefaultURL, o.URL)
	assert.Equal(t, 0, o.Retries)
	assert.Equal(t, DefaultTimeout, o.Timeout)
	assert.True(t, o.RetryWaitMax >= o.RetryWaitMin)
}
