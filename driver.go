package xpa

import "context"

// Driver opens connections to the XPA messaging subsystem. A
// production driver wraps the XPA client library; tests use the
// scripted driver in internal/xpatest.
type Driver interface {
	// Open establishes the persistent connection. mode carries
	// "key=value,key=value" options understood by the library, or is
	// empty for the library defaults.
	Open(ctx context.Context, mode string) (Conn, error)
}

// Conn is an open connection to the messaging subsystem. The four
// calls broadcast to every server matching the access-point template
// and collect per-server replies into the caller-provided slices,
// which all have the same length: the reply bound. The connection
// fills entries 0..n-1 with freshly allocated buffers it does not
// retain, leaves absent fields nil, and returns n, at most the slice
// length. A negative return is tolerated by the caller and treated
// as zero replies.
//
// Status strings follow the reply convention: StatusErrorPrefix
// marks an error reply, StatusMessagePrefix an informational one,
// anything else is plain text.
//
// Calls block until every matching server replied or the library's
// own timeout elapsed; this layer adds no timeout of its own beyond
// honoring ctx before touching shared state.
type Conn interface {
	// Get pulls data or a command result from matching servers.
	Get(ctx context.Context, accessPoint, command, params string, payloads, servers, statuses [][]byte) (int, error)

	// Set pushes a command and an optional payload to matching
	// servers. Set replies carry no payload.
	Set(ctx context.Context, accessPoint, command, params string, payload []byte, servers, statuses [][]byte) (int, error)

	// Info sends an informational message, without payload, to
	// matching servers.
	Info(ctx context.Context, accessPoint, message, params string, servers, statuses [][]byte) (int, error)

	// Access reports which matching access points answer the given
	// kinds (see the Access* constants).
	Access(ctx context.Context, accessPoint, kinds, params string, servers, statuses [][]byte) (int, error)

	// Close releases the connection. Called at most once per
	// connection by the client.
	Close() error
}
