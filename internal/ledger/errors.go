package ledger

// Kind classifies a failed call against the ledger service.
type Kind int

const (
	KindUnknown Kind = iota
	KindTimeout
	KindNetworkUnreachable
	KindNotFound
	KindServerError
	KindClientError
)

// String returns the classification name for log output.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindNotFound:
		return "not_found"
	case KindServerError:
		return "server_error"
	case KindClientError:
		return "client_error"
	default:
		return "unknown"
	}
}

// Error is a classified transport or response failure produced by the
// gateway. Message is always human readable; BackendMessage is set only when
// the response body carried a message field of its own.
type Error struct {
	Kind           Kind
	Status         int // HTTP status when a response was received, 0 otherwise
	Message        string
	BackendMessage string
	Err            error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// opError surfaces an operation-specific message while keeping the classified
// error reachable through errors.As.
type opError struct {
	msg string
	err error
}

func (e *opError) Error() string { return e.msg }

func (e *opError) Unwrap() error { return e.err }
