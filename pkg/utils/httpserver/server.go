package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// StartServer listens on addr and serves handler until ctx is done.
func StartServer(ctx context.Context, logger logr.Logger, svc string, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%s: error listening on %s: %w", svc, addr, err)
	}
	return Serve(ctx, logger, svc, ln, handler)
}

// Serve serves handler on ln until ctx is done, then drains in-flight requests.
func Serve(ctx context.Context, logger logr.Logger, svc string, ln net.Listener, handler http.Handler) error {
	server := http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	l := logger.WithValues("service", svc, "addr", ln.Addr().String())
	l.Info("starting server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		l.Error(err, "server error")
		return err
	case <-ctx.Done():
	}

	l.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error(err, "server shutdown error")
		return err
	}
	return nil
}
