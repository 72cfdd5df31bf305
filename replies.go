package xpa

import (
	"bytes"
	"fmt"
)

// Replies is the reply set of one call: for every answering server a
// payload (get only), the server id, and an optional status string.
// It exclusively owns its buffers, transferred out of the staging
// area at construction, and is immutable afterwards except for the
// derived counts, which are computed on first read and cached.
//
// Replies are numbered 1..Len(). An index i <= 0 counts from the
// end: 0 names the last reply, -1 the one before it. An index still
// outside [1, Len()] after that adjustment fails with IndexError.
//
// A Replies value is not safe for concurrent use; callers sharing
// one across goroutines must synchronize access (the derived counts
// memoize on first read).
type Replies struct {
	payloads [][]byte
	servers  [][]byte
	statuses [][]byte
	count    int

	// Derived counts, -1 until first read.
	buffers  int
	messages int
	errors   int
}

var _ fmt.Stringer = (*Replies)(nil)

// classifyStatus returns the status kind for a raw status string,
// nil meaning absent.
func classifyStatus(status []byte) StatusKind {
	switch {
	case len(status) == 0:
		return StatusNone
	case bytes.HasPrefix(status, []byte(StatusMessagePrefix)):
		return StatusMessage
	case bytes.HasPrefix(status, []byte(StatusErrorPrefix)):
		return StatusError
	default:
		return StatusNone
	}
}

// Len returns the number of replies.
func (r *Replies) Len() int {
	return r.count
}

// index normalizes a 1-based reply number, counting from the end for
// i <= 0, and returns its zero-based position.
func (r *Replies) index(i int) (int, error) {
	n := i
	if n <= 0 {
		n += r.count
	}
	if n < 1 || n > r.count {
		return 0, &IndexError{Index: i, Count: r.count}
	}
	return n - 1, nil
}

// Size returns the payload byte length of reply i.
func (r *Replies) Size(i int) (int, error) {
	p, err := r.index(i)
	if err != nil {
		return 0, err
	}
	return len(r.payloads[p]), nil
}

// Kind classifies the status string of reply i.
func (r *Replies) Kind(i int) (StatusKind, error) {
	p, err := r.index(i)
	if err != nil {
		return StatusNone, err
	}
	return classifyStatus(r.statuses[p]), nil
}

// Message returns the status string of reply i, "" when the reply
// carries none.
func (r *Replies) Message(i int) (string, error) {
	p, err := r.index(i)
	if err != nil {
		return "", err
	}
	return string(r.statuses[p]), nil
}

// Server returns the id of the server that sent reply i, "" when the
// library recorded none.
func (r *Replies) Server(i int) (string, error) {
	p, err := r.index(i)
	if err != nil {
		return "", err
	}
	return string(r.servers[p]), nil
}

// Data returns a copy of the payload of reply i, nil when the reply
// carried no bytes.
func (r *Replies) Data(i int) ([]byte, error) {
	p, err := r.index(i)
	if err != nil {
		return nil, err
	}
	buf := r.payloads[p]
	if len(buf) == 0 {
		return nil, nil
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

// Text returns the payload of reply i as text of exactly its byte
// length, never scanning for a terminator; "" when the reply carried
// no payload.
func (r *Replies) Text(i int) (string, error) {
	p, err := r.index(i)
	if err != nil {
		return "", err
	}
	return string(r.payloads[p]), nil
}

// Scatter copies the payload of reply i byte-for-byte into dst, a
// slice of one of the supported numeric element types whose total
// byte size must equal the payload length exactly.
func (r *Replies) Scatter(i int, dst any) error {
	p, err := r.index(i)
	if err != nil {
		return err
	}
	return Scatter(r.payloads[p], dst)
}

// Buffers returns the number of replies carrying a payload buffer.
// Counted on first read, cached after.
func (r *Replies) Buffers() int {
	if r.buffers < 0 {
		n := 0
		for _, buf := range r.payloads {
			if buf != nil {
				n++
			}
		}
		r.buffers = n
	}
	return r.buffers
}

// Messages returns the number of replies whose status string has the
// message prefix. Counted on first read, cached after.
func (r *Replies) Messages() int {
	if r.messages < 0 {
		n := 0
		for _, status := range r.statuses {
			if classifyStatus(status) == StatusMessage {
				n++
			}
		}
		r.messages = n
	}
	return r.messages
}

// Errors returns the number of replies whose status string has the
// error prefix. Counted on first read, cached after.
func (r *Replies) Errors() int {
	if r.errors < 0 {
		n := 0
		for _, status := range r.statuses {
			if classifyStatus(status) == StatusError {
				n++
			}
		}
		r.errors = n
	}
	return r.errors
}

// String returns the one-line summary, e.g.
// "XPAData (2 replies, 1 buffer, 1 message, 0 errors)".
func (r *Replies) String() string {
	return fmt.Sprintf("XPAData (%s, %s, %s, %s)",
		plural(r.Len(), "reply", "replies"),
		plural(r.Buffers(), "buffer", "buffers"),
		plural(r.Messages(), "message", "messages"),
		plural(r.Errors(), "error", "errors"))
}

// plural formats n with its singular word exactly when n is 1.
func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
