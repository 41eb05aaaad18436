package manager

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

func TestAddAndWait(t *testing.T) {
	mgr, _ := New(context.Background(), logr.Discard())

	var value atomic.Int32
	value.Store(10)

	mgr.Add("sleeper", func(ctx context.Context) error {
		time.Sleep(100 * time.Millisecond)
		value.Store(11)
		return nil
	})

	require.NoError(t, mgr.Wait())
	require.Equal(t, int32(11), value.Load(), "manager did not wait for go routine to complete")
}

func TestAddWithContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mgr, _ := New(ctx, logr.Discard())

	var value atomic.Int32
	mgr.Add("waiter", func(ctx context.Context) error {
		<-ctx.Done()
		value.Store(11)
		return nil
	})

	go cancel()
	require.NoError(t, mgr.Wait())
	require.Equal(t, int32(11), value.Load(), "manager did not wait for go routine to complete when context is cancelled")
}

func TestFailingRoutineCancelsOthers(t *testing.T) {
	mgr, ctx := New(context.Background(), logr.Discard())

	boom := errors.New("listen failed")
	mgr.Add("server", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	mgr.Add("broken", func(ctx context.Context) error {
		return boom
	})

	err := mgr.Wait()
	require.ErrorIs(t, err, boom)
	require.Error(t, ctx.Err(), "group context should be cancelled after a routine fails")
}

func TestAddAndWaitWithTimeout(t *testing.T) {
	mgr, _ := New(context.Background(), logr.Discard())

	mgr.Add("slow", func(ctx context.Context) error {
		time.Sleep(2 * time.Second)
		return nil
	})

	err := mgr.WaitWithTimeout(100 * time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	err = mgr.WaitWithTimeout(5 * time.Second)
	require.NoError(t, err)
}
