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

// Package profile serves pprof over http when PPROF_ENABLED=true.
// The port defaults to 6060 and can be changed with PPROF_PORT.
//
//	$ PPROF_ENABLED=true PPROF_PORT=6060 greeter serve
package profile

import (
	"context"
	"net"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/go-logr/logr"

	"github.com/fission/greeter/pkg/utils/httpserver"
	"github.com/fission/greeter/pkg/utils/manager"
)

func enabled() bool {
	return os.Getenv("PPROF_ENABLED") == "true"
}

func port() string {
	if p := os.Getenv("PPROF_PORT"); p != "" {
		return p
	}
	return "6060"
}

// Handler returns a mux with the pprof endpoints registered under /debug/pprof/.
func Handler() http.Handler {
	m := http.NewServeMux()
	m.HandleFunc("/debug/pprof/", pprof.Index)
	m.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	m.HandleFunc("/debug/pprof/profile", pprof.Profile)
	m.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	m.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return m
}

// ProfileIfEnabled adds a pprof server to mgr when profiling is enabled and
// reports whether it did.
func ProfileIfEnabled(logger logr.Logger, mgr manager.Interface) bool {
	if !enabled() {
		return false
	}
	addr := net.JoinHostPort("", port())
	mgr.Add("pprof", func(ctx context.Context) error {
		return httpserver.StartServer(ctx, logger, "pprof", addr, Handler())
	})
	return true
}
