package wm

import "fmt"

// Kind classifies failures so callers can decide between skipping a window
// and giving up entirely.
type Kind int

const (
	// ConnectionFailed means the display connection is unusable. Fatal.
	ConnectionFailed Kind = iota + 1
	// FailedRequest means a single protocol request did not succeed.
	FailedRequest
	// IllegalValue means a property had an unexpected type or format.
	IllegalValue
	// InvalidInput means configuration or client supplied data was malformed.
	InvalidInput
	// PropertyUnavailable means a property was expected but absent.
	PropertyUnavailable
	// UnsupportedProtocol means a hint or message the window manager does not implement.
	UnsupportedProtocol
	// OtherWM means another window manager already owns the root window. Fatal.
	OtherWM
)

var kindNames = map[Kind]string{
	ConnectionFailed:    "connection failed",
	FailedRequest:       "request failed",
	IllegalValue:        "illegal value",
	InvalidInput:        "invalid input",
	PropertyUnavailable: "property unavailable",
	UnsupportedProtocol: "unsupported protocol",
	OtherWM:             "another window manager is running",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error kind %d", int(k))
}

type Error struct {
	Kind Kind
	Info string
	Err  error
}

var (
	ErrConnectionFailed    = &Error{Kind: ConnectionFailed}
	ErrFailedRequest       = &Error{Kind: FailedRequest}
	ErrIllegalValue        = &Error{Kind: IllegalValue}
	ErrInvalidInput        = &Error{Kind: InvalidInput}
	ErrPropertyUnavailable = &Error{Kind: PropertyUnavailable}
	ErrUnsupportedProtocol = &Error{Kind: UnsupportedProtocol}
	ErrOtherWM             = &Error{Kind: OtherWM}
)

// NewError builds an Error of the given kind. err may be nil.
func NewError(kind Kind, info string, err error) *Error {
	return &Error{Kind: kind, Info: info, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Info != "" {
		msg += ": " + e.Info
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any Error of the same kind, so errors.Is(err, ErrFailedRequest)
// holds for every failed request regardless of its details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
