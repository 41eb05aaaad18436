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

package greeter

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/trace"

	ferror "github.com/fission/greeter/pkg/error"
	"github.com/fission/greeter/pkg/utils/metrics"
	otelUtils "github.com/fission/greeter/pkg/utils/otel"
)

const (
	Message = "Hello from go"

	allowedMethods = "GET, POST, OPTIONS"
	allowedHeaders = "Content-Type"
)

type (
	// Greeting is the response body of the function.
	Greeting struct {
		Message string `json:"message"`
		DT      string `json:"dt"`
		Version string `json:"version"`
	}

	// Handler answers every request with a Greeting carrying the tag it was
	// built with. It holds no mutable state and is safe for concurrent use.
	Handler struct {
		logger      logr.Logger
		version     string
		allowOrigin string
		now         func() time.Time
	}

	Option func(*Handler)
)

// WithClock replaces time.Now as the source of the greeting timestamp.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

func NewHandler(logger logr.Logger, cfg Config, opts ...Option) *Handler {
	h := &Handler{
		logger:      logger,
		version:     cfg.Tag,
		allowOrigin: cfg.AllowOrigin,
		now:         time.Now,
	}
	if h.version == "" {
		h.version = DefaultTag
	}
	if h.allowOrigin == "" {
		h.allowOrigin = DefaultAllowOrigin
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Version() string {
	return h.version
}

func (h *Handler) Greet() Greeting {
	return Greeting{
		Message: Message,
		DT:      h.now().Format(time.RFC3339Nano),
		Version: h.version,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := otelUtils.LoggerWithTraceID(r.Context(), h.logger)
	logger.Info("request received", "method", r.Method, "path", r.URL.Path, "client", clientIP(r))

	h.setCORSHeaders(w)

	switch r.Method {
	case http.MethodGet, http.MethodPost:
		h.greet(w, r, logger)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		w.Header().Set("Allow", allowedMethods)
		code, msg := ferror.GetHTTPError(ferror.MakeError(ferror.ErrorMethodNotAllowed, r.Method))
		http.Error(w, msg, code)
	}
}

func (h *Handler) greet(w http.ResponseWriter, r *http.Request, logger logr.Logger) {
	greeting := h.Greet()
	trace.SpanFromContext(r.Context()).SetAttributes(otelUtils.GetAttributesForGreeting(greeting.Version, r.Method)...)

	body, err := json.Marshal(greeting)
	if err != nil {
		logger.Error(err, "error encoding greeting")
		code, msg := ferror.GetHTTPError(err)
		http.Error(w, msg, code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Error(err, "error writing response")
	}
	metrics.IncreaseGreetings(greeting.Version)
}

func (h *Handler) setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", h.allowOrigin)
	w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
	w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
