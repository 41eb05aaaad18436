package metrics

import (
	"context"
	"net/http"
	"os"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fission/greeter/pkg/utils/httpserver"
)

// Addr returns METRICS_ADDR. Empty means the metrics server stays off so the
// container listens on the function port only.
func Addr() string {
	return os.Getenv("METRICS_ADDR")
}

func ServeMetrics(ctx context.Context, logger logr.Logger, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return httpserver.StartServer(ctx, logger, "metrics", addr, mux)
}
