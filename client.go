package xpa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sony/gobreaker/v2"
)

// Config holds configuration for the XPA client.
type Config struct {
	// Driver opens the persistent connection to the messaging
	// library. Required.
	Driver Driver

	// Mode is the option string handed to Driver.Open.
	// Empty means the driver defaults.
	Mode string

	// Params is the parameter list handed to every command call,
	// e.g. "ack=false". Empty means no parameters.
	Params string

	// MaxReplies bounds the number of replies one command collects;
	// the protocol layer discards replies past the bound.
	// Zero or negative means DefaultMaxReplies.
	MaxReplies int

	// AtExit registers the connection teardown with the host
	// environment. It is called at most once, after the first
	// successful open, with a function that closes the connection.
	// When the registration fails the command that opened the
	// connection fails too; the connection stays open and the next
	// command retries the registration only.
	// If nil, no teardown is registered and the caller owns Close.
	//
	// (*interp.Registry).OnExit satisfies this signature.
	AtExit func(func()) error

	// NewCircuitBreaker creates a circuit breaker guarding calls on
	// the connection. Called once by NewClient.
	// If nil, no circuit breaker is used.
	NewCircuitBreaker func() CircuitBreaker

	// Logger receives debug records on connection lifecycle and on
	// reply sets that filled the bound. If nil, logging is disabled.
	Logger *slog.Logger
}

// Client issues get, set, info and access commands over one lazily
// opened persistent connection and returns every reply set as an
// immutable Replies value.
//
// Commands are serialized: the client owns a single reply-collection
// area and a single connection, and a mutex admits one command at a
// time. Returned Replies never share memory with the collection
// area, so they stay valid across later commands.
type Client struct {
	driver  Driver
	mode    string
	params  string
	logger  *slog.Logger
	breaker CircuitBreaker
	atExit  func(func()) error
	stats   *clientStatsCollector

	mu             sync.Mutex
	conn           Conn
	exitRegistered bool
	stage          *staging
}

// NewClient creates a client with the given configuration. The
// connection is not opened until the first command needs it.
func NewClient(config Config) (*Client, error) {
	if config.Driver == nil {
		return nil, fmt.Errorf("no driver provided")
	}

	max := config.MaxReplies
	if max <= 0 {
		max = DefaultMaxReplies
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var breaker CircuitBreaker
	if config.NewCircuitBreaker != nil {
		breaker = config.NewCircuitBreaker()
	}

	return &Client{
		driver:  config.Driver,
		mode:    config.Mode,
		params:  config.Params,
		logger:  logger,
		breaker: breaker,
		atExit:  config.AtExit,
		stats:   newClientStatsCollector(),
		stage:   newStaging(max),
	}, nil
}

// ensureConn opens the connection on first use and registers the
// exit teardown once. Callers hold c.mu.
func (c *Client) ensureConn(ctx context.Context) error {
	if c.conn == nil {
		conn, err := c.driver.Open(ctx, c.mode)
		if err != nil {
			return &ConnectionError{Op: "failed to open XPA persistent connection", Err: err}
		}
		c.conn = conn
		c.stats.recordOpen()
		c.logger.Debug("opened persistent connection", "mode", c.mode)
	}
	if !c.exitRegistered && c.atExit != nil {
		if err := c.atExit(c.teardown); err != nil {
			return &ConnectionError{Op: "failed to register exit teardown", Err: err}
		}
		c.exitRegistered = true
	}
	return nil
}

// teardown is the function handed to the AtExit registrar.
func (c *Client) teardown() {
	_ = c.Close()
}

// ready prepares for one driver call: pending cancellation honored,
// connection open, teardown registered, staging drained. Callers
// hold c.mu.
func (c *Client) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.ensureConn(ctx); err != nil {
		c.stats.recordError()
		return err
	}
	return c.stage.drain(ctx)
}

// execute runs one driver call, through the circuit breaker when one
// is configured. A failed call leaves nothing staged.
func (c *Client) execute(fn func() (int, error)) (int, error) {
	var n int
	var err error
	if c.breaker != nil {
		n, err = c.breaker.Execute(fn)
	} else {
		n, err = fn()
	}
	if err != nil {
		c.stage.discard()
		c.stats.recordError()
		return 0, err
	}
	return n, nil
}

// finish records the reply count of a completed call and moves the
// staged replies into a result. Callers hold c.mu.
func (c *Client) finish(ctx context.Context, n int) (*Replies, error) {
	collected := c.stage.collect(n)
	truncated := collected == c.stage.bound()
	c.stats.recordReplies(collected, truncated)
	if truncated {
		c.logger.Debug("reply set filled the bound", "bound", c.stage.bound())
	}
	return c.stage.build(ctx)
}

// Get pulls data from every server matching the access point and
// returns their replies. The command string selects what to get,
// empty for the server default.
func (c *Client) Get(ctx context.Context, accessPoint, command string) (*Replies, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(ctx); err != nil {
		return nil, err
	}
	n, err := c.execute(func() (int, error) {
		return c.conn.Get(ctx, accessPoint, command, c.params,
			c.stage.payloads, c.stage.servers, c.stage.statuses)
	})
	if err != nil {
		return nil, err
	}
	c.stats.recordGet()
	return c.finish(ctx, n)
}

// Set pushes payload to every server matching the access point and
// returns their replies. Use Pack to turn a numeric array into the
// payload bytes; a nil payload sends the command alone.
func (c *Client) Set(ctx context.Context, accessPoint, command string, payload []byte) (*Replies, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(ctx); err != nil {
		return nil, err
	}
	n, err := c.execute(func() (int, error) {
		return c.conn.Set(ctx, accessPoint, command, c.params, payload,
			c.stage.servers, c.stage.statuses)
	})
	if err != nil {
		return nil, err
	}
	c.stats.recordSet()
	return c.finish(ctx, n)
}

// Info sends an informational message to every server matching the
// access point and returns their acknowledgements.
func (c *Client) Info(ctx context.Context, accessPoint, message string) (*Replies, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(ctx); err != nil {
		return nil, err
	}
	n, err := c.execute(func() (int, error) {
		return c.conn.Info(ctx, accessPoint, message, c.params,
			c.stage.servers, c.stage.statuses)
	})
	if err != nil {
		return nil, err
	}
	c.stats.recordInfo()
	return c.finish(ctx, n)
}

// Access reports which access points matching the template are
// available for the given kinds ("g", "s", "i" or a combination).
func (c *Client) Access(ctx context.Context, accessPoint, kinds string) (*Replies, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(ctx); err != nil {
		return nil, err
	}
	n, err := c.execute(func() (int, error) {
		return c.conn.Access(ctx, accessPoint, kinds, c.params,
			c.stage.servers, c.stage.statuses)
	})
	if err != nil {
		return nil, err
	}
	c.stats.recordAccess()
	return c.finish(ctx, n)
}

// Close tears the connection down. It takes the handle and nils the
// shared reference before closing, so a close racing the exit hook
// never observes a half-closed connection. Closing an unopened or
// already closed client is a no-op. The client reopens on the next
// command.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	c.logger.Debug("closing persistent connection")
	return conn.Close()
}

// Stats returns a snapshot of client statistics.
func (c *Client) Stats() ClientStats {
	return c.stats.snapshot()
}

// BreakerState reports the circuit breaker state, and whether a
// breaker is configured at all.
func (c *Client) BreakerState() (gobreaker.State, bool) {
	if c.breaker == nil {
		return gobreaker.StateClosed, false
	}
	return c.breaker.State(), true
}
