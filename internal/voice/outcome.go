package voice

// OutcomeKind classifies how a subcommand ended.
type OutcomeKind int

const (
	// Success means the subcommand completed.
	Success OutcomeKind = iota

	// UsageError means a required argument was missing.
	UsageError

	// NotFound means the input file does not exist.
	NotFound

	// CapabilityMissing means no conforming provider was registered.
	CapabilityMissing

	// InvocationError means the selected provider failed.
	InvocationError

	// UnknownSubcommand means the subcommand name was not recognized.
	UnknownSubcommand

	// IOError means reading the input or writing the output failed.
	IOError
)

// String returns the string representation of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case UsageError:
		return "usage error"
	case NotFound:
		return "not found"
	case CapabilityMissing:
		return "capability missing"
	case InvocationError:
		return "invocation error"
	case UnknownSubcommand:
		return "unknown subcommand"
	case IOError:
		return "io error"
	default:
		return "unknown"
	}
}

// Outcome is what a subcommand reports back instead of returning an error.
// Message is the text that was logged for failures.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Hints   []string
}

// OK reports whether the subcommand succeeded.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

func succeeded() Outcome {
	return Outcome{Kind: Success}
}
