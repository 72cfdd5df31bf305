// Package xpa is a client binding for the XPA messaging system. One
// call fans out to every server matching a named access point and
// the replies come back as a single immutable result: per reply a
// payload (get only), the server id, and an optional status string.
//
// # Client
//
// A Client holds one lazily opened persistent connection and a
// bounded reply-collection area, and serializes its commands:
//
//	client, err := xpa.NewClient(xpa.Config{Driver: driver})
//	...
//	replies, err := client.Get(ctx, "ds9", "fits")
//
// The connection opens on the first command. Configure AtExit to
// register the teardown with the host (at most once); otherwise the
// caller owns Close.
//
// # Replies
//
// Replies are numbered 1..Len(), with i <= 0 counting from the end.
// Accessors return the payload as bytes, as text, or scattered into
// a caller-supplied numeric array of exactly matching byte size.
// Status strings prefixed XPA$ERROR or XPA$MESSAGE classify the
// reply; the derived counts Buffers, Messages and Errors are
// computed on first read.
//
// # Host commands
//
// RegisterCommands exposes xpaget, xpaset, xpainfo and xpaaccess to
// an embedding interpreter through the interp package; each returns
// a reply-set object implementing the generic evaluate and member
// protocols.
package xpa
