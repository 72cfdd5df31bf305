package xpa

import (
	"context"

	"github.com/emmt/go-xpa/interp"
)

// RegisterCommands adds the host command entry points, all backed by
// client:
//
//	xpaget(access_point [, command])
//	xpaset(access_point [, command [, data]])
//	xpainfo(access_point [, message])
//	xpaaccess(access_point [, kinds])
//
// Each returns a reply-set object answering the query protocol
// described at NewDataObject. Pair this with Config.AtExit set to
// reg.OnExit so the connection closes when the host shuts down.
func RegisterCommands(reg *interp.Registry, client *Client) error {
	commands := []struct {
		name string
		cmd  interp.Command
	}{
		{"xpaget", client.evalGet},
		{"xpaset", client.evalSet},
		{"xpainfo", client.evalInfo},
		{"xpaaccess", client.evalAccess},
	}
	for _, c := range commands {
		if err := reg.Register(c.name, c.cmd); err != nil {
			return err
		}
	}
	return nil
}

// accessPointArg validates the mandatory first argument.
func accessPointArg(v interp.Value) (string, error) {
	s, ok := v.AsStr()
	if !ok {
		return "", &ArgumentError{Reason: "access point must be a string"}
	}
	return s, nil
}

// optionalStringArg returns argument i as a string; a missing or nil
// argument means "".
func optionalStringArg(args []interp.Value, i int, reason string) (string, error) {
	if i >= len(args) || args[i].IsNil() {
		return "", nil
	}
	s, ok := args[i].AsStr()
	if !ok {
		return "", &ArgumentError{Reason: reason}
	}
	return s, nil
}

// evalGet implements xpaget.
func (c *Client) evalGet(ctx context.Context, args []interp.Value) (interp.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return interp.Nil(), &ArgumentError{Reason: "expecting 1 or 2 arguments"}
	}
	accessPoint, err := accessPointArg(args[0])
	if err != nil {
		return interp.Nil(), err
	}
	command, err := optionalStringArg(args, 1, "command must be empty or a string")
	if err != nil {
		return interp.Nil(), err
	}

	replies, err := c.Get(ctx, accessPoint, command)
	if err != nil {
		return interp.Nil(), err
	}
	return interp.Obj(NewDataObject(replies)), nil
}

// evalSet implements xpaset. The data argument, when present, must be
// a supported numeric array; its native-order bytes become the
// payload.
func (c *Client) evalSet(ctx context.Context, args []interp.Value) (interp.Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return interp.Nil(), &ArgumentError{Reason: "expecting 1, 2 or 3 arguments"}
	}
	accessPoint, err := accessPointArg(args[0])
	if err != nil {
		return interp.Nil(), err
	}
	command, err := optionalStringArg(args, 1, "command must be empty or a string")
	if err != nil {
		return interp.Nil(), err
	}

	var payload []byte
	if len(args) == 3 && !args[2].IsNil() {
		arr, ok := args[2].AsArr()
		if !ok {
			return interp.Nil(), &TypeError{Type: args[2].Tag.String()}
		}
		payload, err = Pack(arr)
		if err != nil {
			return interp.Nil(), err
		}
	}

	replies, err := c.Set(ctx, accessPoint, command, payload)
	if err != nil {
		return interp.Nil(), err
	}
	return interp.Obj(NewDataObject(replies)), nil
}

// evalInfo implements xpainfo.
func (c *Client) evalInfo(ctx context.Context, args []interp.Value) (interp.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return interp.Nil(), &ArgumentError{Reason: "expecting 1 or 2 arguments"}
	}
	accessPoint, err := accessPointArg(args[0])
	if err != nil {
		return interp.Nil(), err
	}
	message, err := optionalStringArg(args, 1, "message must be empty or a string")
	if err != nil {
		return interp.Nil(), err
	}

	replies, err := c.Info(ctx, accessPoint, message)
	if err != nil {
		return interp.Nil(), err
	}
	return interp.Obj(NewDataObject(replies)), nil
}

// evalAccess implements xpaaccess.
func (c *Client) evalAccess(ctx context.Context, args []interp.Value) (interp.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return interp.Nil(), &ArgumentError{Reason: "expecting 1 or 2 arguments"}
	}
	accessPoint, err := accessPointArg(args[0])
	if err != nil {
		return interp.Nil(), err
	}
	kinds, err := optionalStringArg(args, 1, "access kinds must be empty or a string")
	if err != nil {
		return interp.Nil(), err
	}

	replies, err := c.Access(ctx, accessPoint, kinds)
	if err != nil {
		return interp.Nil(), err
	}
	return interp.Obj(NewDataObject(replies)), nil
}
