package xpa

import (
	"github.com/emmt/go-xpa/interp"
)

// dataObject exposes a reply set to an embedding interpreter through
// the interp.Object protocol. Eval implements the positional query
// protocol and Member the by-name counts; both answer out of the
// wrapped Replies without copying more than the requested item.
type dataObject struct {
	replies *Replies
}

var _ interp.Object = (*dataObject)(nil)

// NewDataObject wraps a reply set for use as an interpreter object.
func NewDataObject(r *Replies) interp.Object {
	return &dataObject{replies: r}
}

// Describe returns the one-line summary printed for the object.
func (o *dataObject) Describe() string {
	return o.replies.String()
}

// Eval answers the positional query protocol:
//
//	obj()        number of replies
//	obj(i)       status string of reply i, nil when absent
//	obj(i,)      byte length of the payload of reply i
//	obj(i, 0)    status classification of reply i (0, 1 or 2)
//	obj(i, 1)    status string of reply i
//	obj(i, 2)    id of the server that sent reply i
//	obj(i, 3)    payload of reply i as a byte array, nil when empty
//	obj(i, 4)    payload of reply i as a string of its exact length
//	obj(i, arr)  scatter the payload of reply i into the numeric
//	             array arr, whose total byte size must match exactly
//
// An index i <= 0 counts from the last reply. Every other argument
// combination fails with a typed error.
func (o *dataObject) Eval(args []interp.Value) (interp.Value, error) {
	r := o.replies
	if len(args) > 2 {
		return interp.Nil(), &ArgumentError{Reason: "expecting 1 or 2 arguments"}
	}
	if len(args) == 0 || (len(args) == 1 && args[0].IsNil()) {
		return interp.Int(int64(r.Len())), nil
	}

	i, ok := args[0].AsInt()
	if !ok {
		return interp.Nil(), &ArgumentError{Reason: "expecting an index"}
	}
	p, err := r.index(int(i))
	if err != nil {
		return interp.Nil(), err
	}
	if len(args) == 1 {
		return interp.Text(r.statuses[p], -1)
	}

	key := args[1]
	if key.IsNil() {
		return interp.Int(int64(len(r.payloads[p]))), nil
	}
	if k, ok := key.AsInt(); ok {
		switch k {
		case 0:
			return interp.Int(int64(classifyStatus(r.statuses[p]))), nil
		case 1:
			return interp.Text(r.statuses[p], -1)
		case 2:
			return interp.Text(r.servers[p], -1)
		case 3:
			buf := r.payloads[p]
			if len(buf) == 0 {
				return interp.Nil(), nil
			}
			out := make([]byte, len(buf))
			copy(out, buf)
			return interp.Bytes(out), nil
		case 4:
			return interp.Text(r.payloads[p], len(r.payloads[p]))
		}
		return interp.Nil(), &ArgumentError{Reason: "invalid key value"}
	}
	if arr, ok := key.AsArr(); ok {
		if err := Scatter(r.payloads[p], arr); err != nil {
			return interp.Nil(), err
		}
		return interp.Nil(), nil
	}
	return interp.Nil(), &ArgumentError{Reason: "invalid key value"}
}

// Member answers the by-name queries "replies", "buffers", "messages"
// and "errors" with the corresponding count.
func (o *dataObject) Member(name string) (interp.Value, error) {
	r := o.replies
	switch name {
	case "replies":
		return interp.Int(int64(r.Len())), nil
	case "buffers":
		return interp.Int(int64(r.Buffers())), nil
	case "messages":
		return interp.Int(int64(r.Messages())), nil
	case "errors":
		return interp.Int(int64(r.Errors())), nil
	}
	return interp.Nil(), &MemberError{Name: name}
}
