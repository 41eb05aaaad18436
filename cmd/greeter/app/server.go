/*
Copyright 2026 The Fission Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/fission/greeter/pkg/greeter"
	"github.com/fission/greeter/pkg/info"
	"github.com/fission/greeter/pkg/utils/httpserver"
	"github.com/fission/greeter/pkg/utils/manager"
	"github.com/fission/greeter/pkg/utils/metrics"
	otelUtils "github.com/fission/greeter/pkg/utils/otel"
	"github.com/fission/greeter/pkg/utils/profile"
)

const (
	serviceName = "greeter"

	tracerShutdownTimeout = 5 * time.Second
	// covers the http server's own drain period
	shutdownGracePeriod = 20 * time.Second
)

type Options struct {
	Config greeter.Config

	// MetricsAddr of the prometheus server; empty disables it.
	MetricsAddr string
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GetHandler returns the function's router.
func GetHandler(h *greeter.Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.HTTPMetricMiddleware)
	// the greeting handler answers every method itself so rejections carry CORS headers
	r.Handle("/", h)
	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/version", info.VersionHandler).Methods(http.MethodGet)
	return r
}

func wrapHandler(handler http.Handler, cfg greeter.Config) http.Handler {
	handler = otelUtils.GetHandlerWithOTEL(handler, serviceName, otelUtils.UrlsToIgnore("/healthz"))
	if cfg.H2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}
	return handler
}

// Run serves the greeting until ctx is done or one of the servers fails, then
// gives the servers shutdownGracePeriod to drain.
func Run(ctx context.Context, logger logr.Logger, opts Options) error {
	shutdownTracer, err := otelUtils.InitProvider(ctx, logger, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		shutdownTracer(sctx)
	}()

	cfg := opts.Config
	h := greeter.NewHandler(logger.WithName("greeter"), cfg)
	handler := wrapHandler(GetHandler(h), cfg)

	mgr, gctx := manager.New(ctx, logger)
	if opts.MetricsAddr != "" {
		mgr.Add("metrics", func(ctx context.Context) error {
			return metrics.ServeMetrics(ctx, logger, opts.MetricsAddr)
		})
	}
	profile.ProfileIfEnabled(logger, mgr)
	mgr.Add(serviceName, func(ctx context.Context) error {
		return httpserver.StartServer(ctx, logger, serviceName, cfg.Addr(), handler)
	})

	logger.Info("greeter ready to receive requests", "addr", cfg.Addr(), "version", h.Version(), "h2c", cfg.H2C)

	<-gctx.Done()
	return mgr.WaitWithTimeout(shutdownGracePeriod)
}
