// Package interp is the host-interpreter boundary vocabulary for the
// XPA binding: the value shapes, the opaque-object protocol, and the
// command registry a scripting host plugs the binding into.
//
// This package serves as a foundation for embedding the binding in
// different hosts. It defines the data shapes crossing the boundary
// without imposing an interpreter; any host that can produce and
// consume these values can expose the commands.
//
// # Values
//
// Value is a tagged union covering the shapes the binding exchanges
// with a host:
//
//   - Nil: the absent value (optional arguments, absent results)
//   - Int: signed integer scalar
//   - Str: string scalar
//   - Arr: numeric array (a Go slice of a supported element kind)
//   - Obj: opaque object implementing Object
//
// Constructors build values, typed getters take them apart:
//
//	v := interp.Str("DS9")
//	if s, ok := v.AsStr(); ok {
//	    // use s
//	}
//
// Numeric arrays carry their element type code (Kind) the way host
// array accessors do: byte, short, int, long, float, double, and
// complex counted as two doubles. KindOf and ElemCount recover the
// code and the element count from a slice.
//
// # Objects
//
// Object is the fixed capability set an opaque value exposes: a
// printable summary (Describe), a generic positional call (Eval),
// and member access by name (Member). One concrete type per object
// kind, no inheritance.
//
// # Registry
//
// Registry stands in for the host's command table and run-at-exit
// facility:
//
//	reg := interp.NewRegistry()
//	err := reg.Register("xpaget", getCommand)
//	result, err := reg.Call(ctx, "xpaget", interp.Str("DS9"))
//
// Exit hooks registered with OnExit run once, last registered first,
// when the host calls RunExitHooks.
//
// # Thread Safety
//
// Registry is safe for concurrent use. Value and Object carry no
// synchronization of their own; hosts sharing them across goroutines
// must synchronize access.
package interp
