package xpa

// Reply status conventions
//
// Servers may attach a status string to a reply. By convention the
// string is prefixed to mark its severity; anything else is plain
// text carried through without classification.
const (
	// StatusErrorPrefix marks a status string as an error reply.
	//
	// Wire form: "XPA$ERROR <text> (<server>)"
	StatusErrorPrefix = "XPA$ERROR"

	// StatusMessagePrefix marks a status string as an informational
	// message.
	//
	// Wire form: "XPA$MESSAGE <text> (<server>)"
	StatusMessagePrefix = "XPA$MESSAGE"
)

// StatusKind classifies a reply's status string. The numeric values
// are part of the host protocol: evaluating a reply set with key 0
// returns them as integers.
type StatusKind int

const (
	// StatusNone means the reply carries no status string, or one
	// without a classification prefix.
	StatusNone StatusKind = 0

	// StatusMessage means the status string has the message prefix.
	StatusMessage StatusKind = 1

	// StatusError means the status string has the error prefix.
	StatusError StatusKind = 2
)

// String returns the kind name.
func (k StatusKind) String() string {
	switch k {
	case StatusNone:
		return "none"
	case StatusMessage:
		return "message"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Access kinds for Client.Access, concatenable: "gs" asks for access
// points accepting both get and set.
const (
	// AccessGet selects access points answering get calls.
	AccessGet = "g"

	// AccessSet selects access points answering set calls.
	AccessSet = "s"

	// AccessInfo selects access points accepting info messages.
	AccessInfo = "i"
)

// DefaultMaxReplies is the default bound on replies collected per
// call. Servers beyond the bound still receive the request; their
// replies are discarded by the underlying library.
const DefaultMaxReplies = 100
