package xpa_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmt/go-xpa"
	"github.com/emmt/go-xpa/internal/xpatest"
	"github.com/emmt/go-xpa/interp"
)

func newTestClient(t *testing.T, drv *xpatest.Driver, config xpa.Config) *xpa.Client {
	t.Helper()
	config.Driver = drv
	client, err := xpa.NewClient(config)
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := xpa.NewClient(xpa.Config{})
	require.Error(t, err)
	assert.Equal(t, "no driver provided", err.Error())
}

func TestClientLazyOpen(t *testing.T) {
	drv := &xpatest.Driver{}
	client := newTestClient(t, drv, xpa.Config{Mode: "verify=true"})
	ctx := context.Background()

	// Creating a client does not open the connection.
	assert.Equal(t, 0, drv.Opens)

	_, err := client.Get(ctx, "ds9", "frame")
	require.NoError(t, err)
	assert.Equal(t, 1, drv.Opens)
	assert.Equal(t, []string{"verify=true"}, drv.Modes)

	// Later commands reuse the connection.
	_, err = client.Set(ctx, "ds9", "frame 2", nil)
	require.NoError(t, err)
	_, err = client.Info(ctx, "ds9", "ping")
	require.NoError(t, err)
	assert.Equal(t, 1, drv.Opens)
}

func TestClientOpenFailure(t *testing.T) {
	cause := errors.New("no XPA name server")
	drv := &xpatest.Driver{OpenErr: cause}
	client := newTestClient(t, drv, xpa.Config{})

	_, err := client.Get(context.Background(), "ds9", "")
	require.Error(t, err)
	assert.True(t, xpa.IsConnectionError(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to open XPA persistent connection")

	// The failure is not sticky.
	drv.OpenErr = nil
	_, err = client.Get(context.Background(), "ds9", "")
	require.NoError(t, err)
	assert.Equal(t, 1, drv.Opens)
}

func TestClientExitHook(t *testing.T) {
	drv := &xpatest.Driver{}
	reg := interp.NewRegistry()
	client := newTestClient(t, drv, xpa.Config{AtExit: reg.OnExit})
	ctx := context.Background()

	_, err := client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	_, err = client.Get(ctx, "ds9", "")
	require.NoError(t, err)

	// The teardown fires once, no matter how often the hooks run.
	reg.RunExitHooks()
	reg.RunExitHooks()
	assert.Equal(t, 1, drv.Closes)

	// The client survives the teardown and reopens on demand without
	// registering a second hook (OnExit would refuse one by now).
	_, err = client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	assert.Equal(t, 2, drv.Opens)
}

func TestClientExitHookRegistrationFailure(t *testing.T) {
	drv := &xpatest.Driver{}
	calls := 0
	atExit := func(func()) error {
		calls++
		if calls == 1 {
			return errors.New("hook table full")
		}
		return nil
	}
	client := newTestClient(t, drv, xpa.Config{AtExit: atExit})
	ctx := context.Background()

	// The command fails, but the connection it opened stays open.
	_, err := client.Get(ctx, "ds9", "")
	require.Error(t, err)
	assert.True(t, xpa.IsConnectionError(err))
	assert.Contains(t, err.Error(), "failed to register exit teardown")
	assert.Equal(t, 1, drv.Opens)
	assert.Equal(t, 0, drv.Closes)

	// The next command retries the registration only, then stops
	// asking once it stuck.
	_, err = client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	assert.Equal(t, 1, drv.Opens)
	assert.Equal(t, 2, calls)

	_, err = client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestClientSequentialResultsStayIntact(t *testing.T) {
	drv := &xpatest.Driver{
		Script: [][]xpatest.Reply{
			{
				{Data: []byte("first"), Server: "srv1:1", Status: "XPA$MESSAGE one"},
				{Data: []byte("more"), Server: "srv2:2"},
			},
			{
				{Data: []byte("second"), Server: "srv3:3", Status: "XPA$ERROR two"},
			},
		},
	}
	client := newTestClient(t, drv, xpa.Config{})
	ctx := context.Background()

	r1, err := client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	r2, err := client.Get(ctx, "ds9", "")
	require.NoError(t, err)

	// No slot blends contents from two calls, and the first result
	// owns its buffers outright.
	assert.Equal(t, 2, r1.Len())
	assert.Equal(t, 1, r2.Len())

	text, err := r1.Text(1)
	require.NoError(t, err)
	assert.Equal(t, "first", text)
	server, err := r1.Server(2)
	require.NoError(t, err)
	assert.Equal(t, "srv2:2", server)
	assert.Equal(t, 1, r1.Messages())

	text, err = r2.Text(1)
	require.NoError(t, err)
	assert.Equal(t, "second", text)
	assert.Equal(t, 1, r2.Errors())
}

func TestClientSetPayload(t *testing.T) {
	drv := &xpatest.Driver{
		Script: [][]xpatest.Reply{
			{{Server: "srv1:1"}},
		},
	}
	client := newTestClient(t, drv, xpa.Config{Params: "ack=false"})

	payload, err := xpa.Pack([]float64{1, 2, 3, 4})
	require.NoError(t, err)

	r, err := client.Set(context.Background(), "ds9", "array", payload)
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())

	// Set replies carry no payload of their own.
	size, err := r.Size(1)
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	require.Len(t, drv.Calls, 1)
	call := drv.Calls[0]
	assert.Equal(t, "set", call.Op)
	assert.Equal(t, "ds9", call.AccessPoint)
	assert.Equal(t, "array", call.Argument)
	assert.Equal(t, "ack=false", call.Params)
	assert.Len(t, call.Payload, 32)
}

func TestClientInfoAndAccess(t *testing.T) {
	drv := &xpatest.Driver{}
	client := newTestClient(t, drv, xpa.Config{})
	ctx := context.Background()

	_, err := client.Info(ctx, "ds9", "file changed")
	require.NoError(t, err)
	_, err = client.Access(ctx, "ds9", "gs")
	require.NoError(t, err)

	require.Len(t, drv.Calls, 2)
	assert.Equal(t, "info", drv.Calls[0].Op)
	assert.Equal(t, "file changed", drv.Calls[0].Argument)
	assert.Equal(t, "access", drv.Calls[1].Op)
	assert.Equal(t, "gs", drv.Calls[1].Argument)
}

func TestClientTruncation(t *testing.T) {
	drv := &xpatest.Driver{
		Script: [][]xpatest.Reply{
			{
				{Server: "srv1:1", Status: "XPA$MESSAGE a"},
				{Server: "srv2:2", Status: "XPA$MESSAGE b"},
				{Server: "srv3:3", Status: "XPA$MESSAGE c"},
			},
		},
	}
	client := newTestClient(t, drv, xpa.Config{MaxReplies: 2})

	r, err := client.Get(context.Background(), "*", "")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	stats := client.Stats()
	assert.Equal(t, uint64(1), stats.Truncations)
	assert.Equal(t, uint64(2), stats.Replies)
}

func TestClientReplyCountClamped(t *testing.T) {
	t.Run("negative", func(t *testing.T) {
		drv := &xpatest.Driver{Count: -5, ForceCount: true}
		client := newTestClient(t, drv, xpa.Config{})

		r, err := client.Get(context.Background(), "ds9", "")
		require.NoError(t, err)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("beyond bound", func(t *testing.T) {
		drv := &xpatest.Driver{
			Count:      99,
			ForceCount: true,
			Script: [][]xpatest.Reply{
				{{Server: "srv1:1"}},
			},
		}
		client := newTestClient(t, drv, xpa.Config{MaxReplies: 4})

		r, err := client.Get(context.Background(), "ds9", "")
		require.NoError(t, err)
		assert.Equal(t, 4, r.Len())

		// The slots past the filled one stay absent.
		server, err := r.Server(1)
		require.NoError(t, err)
		assert.Equal(t, "srv1:1", server)
		server, err = r.Server(2)
		require.NoError(t, err)
		assert.Equal(t, "", server)
	})
}

func TestClientDriverFailure(t *testing.T) {
	cause := errors.New("xpa: connect timed out")
	drv := &xpatest.Driver{CallErr: cause}
	client := newTestClient(t, drv, xpa.Config{})
	ctx := context.Background()

	r, err := client.Get(ctx, "ds9", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, r)

	// The failure leaves nothing staged for the next call.
	drv.CallErr = nil
	drv.Script = [][]xpatest.Reply{{{Server: "srv1:1"}}}
	r, err = client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	stats := client.Stats()
	assert.Equal(t, uint64(1), stats.Errors)
}

func TestClientCancelledContext(t *testing.T) {
	drv := &xpatest.Driver{}
	client := newTestClient(t, drv, xpa.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "ds9", "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, drv.Opens)
}

func TestClientClose(t *testing.T) {
	drv := &xpatest.Driver{}
	client := newTestClient(t, drv, xpa.Config{})
	ctx := context.Background()

	// Closing before the first command is a no-op.
	require.NoError(t, client.Close())
	assert.Equal(t, 0, drv.Closes)

	_, err := client.Get(ctx, "ds9", "")
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
	assert.Equal(t, 1, drv.Closes)

	// The connection reopens on the next command.
	_, err = client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	assert.Equal(t, 2, drv.Opens)
}

func TestClientCircuitBreaker(t *testing.T) {
	cause := errors.New("xpa: connect timed out")
	drv := &xpatest.Driver{CallErr: cause}
	client := newTestClient(t, drv, xpa.Config{
		NewCircuitBreaker: xpa.NewCircuitBreakerConfig(1, time.Minute, time.Minute),
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := client.Get(ctx, "ds9", "")
		require.ErrorIs(t, err, cause)
	}

	// The breaker is open now: calls fail fast without reaching the
	// driver.
	_, err := client.Get(ctx, "ds9", "")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, drv.Calls, 3)

	state, ok := client.BreakerState()
	require.True(t, ok)
	assert.Equal(t, gobreaker.StateOpen, state)
}

func TestClientBreakerStateUnconfigured(t *testing.T) {
	client := newTestClient(t, &xpatest.Driver{}, xpa.Config{})
	_, ok := client.BreakerState()
	assert.False(t, ok)
}

func TestClientStatsCounts(t *testing.T) {
	drv := &xpatest.Driver{
		Script: [][]xpatest.Reply{
			{{Server: "srv1:1"}, {Server: "srv2:2"}},
		},
	}
	client := newTestClient(t, drv, xpa.Config{})
	ctx := context.Background()

	_, err := client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	_, err = client.Get(ctx, "ds9", "")
	require.NoError(t, err)
	_, err = client.Set(ctx, "ds9", "cmd", nil)
	require.NoError(t, err)
	_, err = client.Info(ctx, "ds9", "msg")
	require.NoError(t, err)
	_, err = client.Access(ctx, "ds9", "g")
	require.NoError(t, err)

	stats := client.Stats()
	assert.Equal(t, uint64(2), stats.Gets)
	assert.Equal(t, uint64(1), stats.Sets)
	assert.Equal(t, uint64(1), stats.Infos)
	assert.Equal(t, uint64(1), stats.Accesses)
	assert.Equal(t, uint64(1), stats.Opens)
	assert.Equal(t, uint64(2), stats.Replies)
	assert.Equal(t, uint64(0), stats.Errors)
}
