// Package xpatest provides a scripted driver for testing against the
// xpa client without a real XPA installation.
package xpatest

import (
	"context"

	"github.com/emmt/go-xpa"
)

// Reply is one scripted server reply. An empty Server or Status means
// the reply carries none; a nil Data means no payload.
type Reply struct {
	Data   []byte
	Server string
	Status string
}

// Call records one command as observed by the connection.
type Call struct {
	Op          string // "get", "set", "info" or "access"
	AccessPoint string
	Argument    string // command, message or kinds, depending on Op
	Params      string
	Payload     []byte // set only
}

// Driver is a scripted xpa.Driver. The zero value is usable: Open
// succeeds and every call returns no replies. Configure the script
// before use; the driver is not safe for concurrent configuration.
type Driver struct {
	// Script holds the reply sets served to successive calls; each
	// call consumes one entry. Calls past the end of the script
	// return no replies.
	Script [][]Reply

	// OpenErr, when set, makes Open fail.
	OpenErr error

	// CallErr, when set, makes every call fail without consuming
	// the script.
	CallErr error

	// Count is returned as the reply count of every call when
	// ForceCount is set, regardless of how many slots were filled.
	Count      int
	ForceCount bool

	Opens  int      // Open calls observed
	Modes  []string // mode strings passed to Open
	Calls  []Call   // every command, in order
	Closes int      // Close calls on handed-out connections
}

var _ xpa.Driver = (*Driver)(nil)

// Open returns a scripted connection backed by the driver.
func (d *Driver) Open(ctx context.Context, mode string) (xpa.Conn, error) {
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	d.Opens++
	d.Modes = append(d.Modes, mode)
	return &Conn{driver: d}, nil
}

// Conn is the scripted connection handed out by Open.
type Conn struct {
	driver *Driver
}

var _ xpa.Conn = (*Conn)(nil)

func (c *Conn) Get(ctx context.Context, accessPoint, command, params string, payloads, servers, statuses [][]byte) (int, error) {
	call := Call{Op: "get", AccessPoint: accessPoint, Argument: command, Params: params}
	return c.serve(call, payloads, servers, statuses)
}

func (c *Conn) Set(ctx context.Context, accessPoint, command, params string, payload []byte, servers, statuses [][]byte) (int, error) {
	call := Call{Op: "set", AccessPoint: accessPoint, Argument: command, Params: params, Payload: cloneData(payload)}
	return c.serve(call, nil, servers, statuses)
}

func (c *Conn) Info(ctx context.Context, accessPoint, message, params string, servers, statuses [][]byte) (int, error) {
	call := Call{Op: "info", AccessPoint: accessPoint, Argument: message, Params: params}
	return c.serve(call, nil, servers, statuses)
}

func (c *Conn) Access(ctx context.Context, accessPoint, kinds, params string, servers, statuses [][]byte) (int, error) {
	call := Call{Op: "access", AccessPoint: accessPoint, Argument: kinds, Params: params}
	return c.serve(call, nil, servers, statuses)
}

func (c *Conn) Close() error {
	c.driver.Closes++
	return nil
}

// serve records the call and fills the slot arrays from the next
// scripted reply set, the way the XPA library fills its out arrays.
// payloads is nil for the commands that carry none.
func (c *Conn) serve(call Call, payloads, servers, statuses [][]byte) (int, error) {
	d := c.driver
	d.Calls = append(d.Calls, call)
	if d.CallErr != nil {
		return 0, d.CallErr
	}

	var replies []Reply
	if len(d.Script) > 0 {
		replies = d.Script[0]
		d.Script = d.Script[1:]
	}

	n := 0
	for _, r := range replies {
		if n >= len(servers) {
			break
		}
		if payloads != nil {
			payloads[n] = cloneData(r.Data)
		}
		servers[n] = cloneString(r.Server)
		statuses[n] = cloneString(r.Status)
		n++
	}

	if d.ForceCount {
		return d.Count, nil
	}
	return n, nil
}

// cloneData copies payload bytes, keeping nil distinct from empty.
func cloneData(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// cloneString maps "" to an absent entry.
func cloneString(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
