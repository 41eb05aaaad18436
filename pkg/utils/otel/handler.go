package otel

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// UrlsToIgnore returns an otelhttp filter that skips tracing for the given path prefixes.
func UrlsToIgnore(ignoreEndpoints ...string) otelhttp.Filter {
	return func(r *http.Request) bool {
		for _, ignore := range ignoreEndpoints {
			if strings.HasPrefix(r.URL.Path, ignore) {
				return false
			}
		}
		return true
	}
}

func GetHandlerWithOTEL(h http.Handler, name string, filter ...otelhttp.Filter) http.Handler {
	opts := []otelhttp.Option{
		otelhttp.WithMessageEvents(otelhttp.ReadEvents, otelhttp.WriteEvents),
	}

	for _, f := range filter {
		opts = append(opts, otelhttp.WithFilter(f))
	}

	return otelhttp.NewHandler(h, name, opts...)
}
