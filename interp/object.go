package interp

// Object is the capability set an opaque value exposes to the host:
// a printable one-line summary, a generic positional-argument call,
// and member access by name. One concrete type per object kind is
// enough; reclamation is the garbage collector's.
type Object interface {
	// Describe returns the printable one-line summary of the object.
	Describe() string

	// Eval applies the object to positional arguments (the host's
	// generic call protocol). The meaning of the arguments is defined
	// by the object.
	Eval(args []Value) (Value, error)

	// Member returns the member with the given name.
	Member(name string) (Value, error)
}
