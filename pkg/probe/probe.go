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

// Package probe checks that a running greeter answers its health endpoint.
// It backs the container HEALTHCHECK, so it must work in images that ship
// nothing but the greeter binary.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"

	ferror "github.com/fission/greeter/pkg/error"
	"github.com/fission/greeter/pkg/error/network"
	"github.com/fission/greeter/pkg/info"
)

const (
	DefaultURL     = "http://127.0.0.1:3000/healthz"
	DefaultRetries = 3
	DefaultTimeout = 2 * time.Second
)

var (
	okStatus   = color.New(color.FgGreen, color.Bold).SprintFunc()("√") // √
	failStatus = color.New(color.FgRed, color.Bold).SprintFunc()("×")   // ×
)

type Options struct {
	URL          string
	Retries      int
	Timeout      time.Duration
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

func (o Options) withDefaults() Options {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.RetryWaitMin <= 0 {
		o.RetryWaitMin = 100 * time.Millisecond
	}
	if o.RetryWaitMax < o.RetryWaitMin {
		o.RetryWaitMax = time.Second
	}
	return o
}

// leveledLogger adapts logr to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger logr.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(nil, msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.V(1).Info(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.V(2).Info(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func newClient(logger logr.Logger, opts Options) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.Retries
	client.RetryWaitMin = opts.RetryWaitMin
	client.RetryWaitMax = opts.RetryWaitMax
	client.HTTPClient.Timeout = opts.Timeout
	client.Logger = leveledLogger{logger: logger}
	// hand the last response back so its status can be turned into a typed error
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return client
}

// Check issues GET requests against opts.URL, retrying connection failures and
// 5xx responses, and returns nil once the endpoint answers 200.
func Check(ctx context.Context, logger logr.Logger, opts Options) error {
	opts = opts.withDefaults()
	client := newClient(logger.WithName("probe"), opts)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return ferror.MakeError(ferror.ErrorInvalidArgument, err.Error())
	}
	req.Header.Set("User-Agent", info.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		if netErr := network.Adapter(err); netErr != nil && netErr.Reason() != "" {
			return fmt.Errorf("error probing %s: %s: %w", opts.URL, netErr.Reason(), err)
		}
		return fmt.Errorf("error probing %s: %w", opts.URL, err)
	}
	if err := ferror.MakeErrorFromHTTP(resp); err != nil {
		if ferror.IsNotFound(err) {
			return fmt.Errorf("health endpoint not found at %s: %w", opts.URL, err)
		}
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Report prints a one line verdict for target.
func Report(w io.Writer, target string, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", failStatus, target, err)
		return
	}
	fmt.Fprintf(w, "%s %s is healthy\n", okStatus, target)
}
