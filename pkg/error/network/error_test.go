package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterIgnoresNonNetworkErrors(t *testing.T) {
	assert.Nil(t, Adapter(nil))
	assert.Nil(t, Adapter(errors.New("plain")))
}

func TestConnRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = http.Get("http://" + addr)
	require.Error(t, err)

	netErr := Adapter(fmt.Errorf("probe: %w", err))
	require.NotNil(t, netErr)
	assert.True(t, netErr.IsDialError())
	assert.True(t, netErr.IsConnRefusedError())
	assert.False(t, netErr.IsTimeoutError())
	assert.Equal(t, "connection refused", netErr.Reason())
}

func TestTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	var d net.Dialer
	_, err := d.DialContext(ctx, "tcp", "127.0.0.1:1")
	require.Error(t, err)

	netErr := Adapter(err)
	require.NotNil(t, netErr)
	assert.True(t, netErr.IsTimeoutError())
	assert.Equal(t, "timed out", netErr.Reason())
}
