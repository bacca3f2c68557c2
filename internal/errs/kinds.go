package errs

import "errors"

// Kind classifies an error for callers and audit logging.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindIntegrity
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindIntegrity:
		return "integrity"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is a classified error. Op names the failing operation, Err is usually a sentinel.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newKind(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Validation wraps err as a ValidationError.
func Validation(op string, err error) error { return newKind(KindValidation, op, err) }

// Authentication wraps err as an AuthenticationError.
func Authentication(op string, err error) error { return newKind(KindAuthentication, op, err) }

// Integrity wraps err as an IntegrityError.
func Integrity(op string, err error) error { return newKind(KindIntegrity, op, err) }

// State wraps err as a StateError.
func State(op string, err error) error { return newKind(KindState, op, err) }

// KindOf returns the outermost classification found in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }
