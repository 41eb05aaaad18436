/*
Copyright 2021 The Fission Authors.

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
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
)

var onlyOneSignalHandler = make(chan struct{})

// SetupSignalHandlerWithContext returns a context that is cancelled on the
// first SIGINT or SIGTERM. A second signal exits the process immediately.
func SetupSignalHandlerWithContext(logger logr.Logger) context.Context {
	var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

	close(onlyOneSignalHandler) // panics when called twice

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)
	go func() {
		sig := <-c
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
		sig = <-c
		logger.Info("received second signal, exiting", "signal", sig.String())
		os.Exit(1)
	}()

	return ctx
}
