package xpa

import "context"

// staging is the bounded reply-collection area a client shares across
// its sequential calls. Driver calls fill the parallel slices in
// place up to their capacity; build transfers the filled entries into
// a Replies value and nils the slots so no buffer is ever reachable
// from both sides.
type staging struct {
	payloads [][]byte
	servers  [][]byte
	statuses [][]byte
	count    int
}

func newStaging(max int) *staging {
	return &staging{
		payloads: make([][]byte, max),
		servers:  make([][]byte, max),
		statuses: make([][]byte, max),
	}
}

// bound returns the slot capacity.
func (s *staging) bound() int {
	return len(s.payloads)
}

// drain releases every occupied slot. It runs before every driver
// call. A pending cancellation is honored before anything is mutated;
// slots are released from the top down so the area stays consistent
// whatever state a prior call left it in. Draining an already empty
// area is a no-op, and a negative count is treated as nothing to
// drain.
func (s *staging) drain(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for s.count > 0 {
		i := s.count - 1
		s.payloads[i] = nil
		s.servers[i] = nil
		s.statuses[i] = nil
		s.count = i
	}
	if s.count < 0 {
		s.count = 0
	}
	return nil
}

// discard releases every slot unconditionally. It runs after a
// failed driver call, where the number of filled slots is unknown.
func (s *staging) discard() {
	for i := range s.payloads {
		s.payloads[i] = nil
		s.servers[i] = nil
		s.statuses[i] = nil
	}
	s.count = 0
}

// collect records the reply count returned by a driver call, clamped
// to [0, bound], and returns the clamped value.
func (s *staging) collect(n int) int {
	if n < 0 {
		n = 0
	}
	if max := s.bound(); n > max {
		n = max
	}
	s.count = n
	return n
}

// build moves the collected replies into a new Replies value. A
// pending cancellation is honored before any transfer. Source slots
// are nilled as they are moved; the staged count resets to zero on
// completion. On cancellation the staged replies stay put for the
// next drain.
func (s *staging) build(ctx context.Context) (*Replies, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.count < 0 {
		s.count = 0
	}
	r := &Replies{
		payloads: make([][]byte, s.count),
		servers:  make([][]byte, s.count),
		statuses: make([][]byte, s.count),
		buffers:  -1,
		messages: -1,
		errors:   -1,
	}
	for i := 0; i < s.count; i++ {
		r.payloads[i] = s.payloads[i]
		r.servers[i] = s.servers[i]
		r.statuses[i] = s.statuses[i]
		s.payloads[i] = nil
		s.servers[i] = nil
		s.statuses[i] = nil
		r.count++
	}
	s.count = 0
	return r, nil
}
