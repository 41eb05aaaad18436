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

package manager

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

// Interface keeps track of the long running go routines of a process (servers mostly)
// so that the process can shut down gracefully once all of them have returned.
type Interface interface {
	// Add starts function in a go routine. The first routine to return an error
	// cancels the context handed to every other routine.
	Add(name string, function func(context.Context) error)

	// Wait blocks until every routine has returned and reports the first error.
	Wait() error

	// WaitWithTimeout is Wait bounded by timeout.
	WaitWithTimeout(timeout time.Duration) error
}

type GoRoutineManager struct {
	logger logr.Logger
	group  *errgroup.Group
	ctx    context.Context
}

// New returns a manager and the context its routines run with. The context is
// cancelled when ctx is done or when any routine fails.
func New(ctx context.Context, logger logr.Logger) (Interface, context.Context) {
	group, gctx := errgroup.WithContext(ctx)
	return &GoRoutineManager{
		logger: logger.WithName("manager"),
		group:  group,
		ctx:    gctx,
	}, gctx
}

func (g *GoRoutineManager) Add(name string, f func(context.Context) error) {
	g.group.Go(func() error {
		err := f(g.ctx)
		if err != nil {
			g.logger.Error(err, "routine failed", "routine", name)
			return err
		}
		g.logger.V(1).Info("routine finished", "routine", name)
		return nil
	})
}

func (g *GoRoutineManager) Wait() error {
	return g.group.Wait()
}

func (g *GoRoutineManager) WaitWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.group.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
