package schema

import (
	"errors"
	"fmt"
)

// ErrorKind classifies harness failures for exit diagnostics.
type ErrorKind string

const (
	// KindUnknown is an uncategorized failure.
	KindUnknown ErrorKind = "unknown"
	// KindProvisioning indicates certificate or seed material could not be produced.
	KindProvisioning ErrorKind = "provisioning"
	// KindConfiguration indicates a required environment field could not be resolved.
	KindConfiguration ErrorKind = "configuration"
	// KindConnection indicates a TLS handshake or transport failure.
	KindConnection ErrorKind = "connection"
	// KindProtocol indicates the scheduler rejected a call.
	KindProtocol ErrorKind = "protocol"
	// KindTimeout indicates a bounded wait elapsed.
	KindTimeout ErrorKind = "timeout"
)

// Error wraps harness failures with a stable classification.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

// NewError constructs a classified harness error.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return "harness error"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return "harness error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf returns the classification of err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}

var (
	// ErrMissingField indicates a required descriptor field is empty.
	ErrMissingField = errors.New("missing descriptor field")
	// ErrUnknownField indicates a descriptor field name is not recognized.
	ErrUnknownField = errors.New("unknown descriptor field")
	// ErrInvalidIdentity indicates an identity name is empty or malformed.
	ErrInvalidIdentity = errors.New("invalid identity")
	// ErrInvalidSeed indicates the persisted seed is malformed.
	ErrInvalidSeed = errors.New("invalid seed")
	// ErrNotRegistered indicates device credentials do not exist yet.
	ErrNotRegistered = errors.New("device not registered")
)
