package tourguide

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies failures of the transport and codec layers.
type ErrorKind int

const (
	// KindIO covers transport failures: refused, reset, premature close,
	// write and flush errors.
	KindIO ErrorKind = iota + 1
	// KindParse means the frame body is not a valid Message.
	KindParse
	// KindAddress means the remote endpoint could not be resolved.
	KindAddress
	// KindFrameTooLarge means a frame declared a length above the limit.
	KindFrameTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindParse:
		return "parse error"
	case KindAddress:
		return "address error"
	case KindFrameTooLarge:
		return "frame too large"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is. Any *Error of the matching kind compares equal.
var (
	ErrIO            = errors.New("io error")
	ErrParse         = errors.New("parse error")
	ErrAddress       = errors.New("address error")
	ErrFrameTooLarge = errors.New("frame too large")
)

// Option and protocol errors.
var (
	// ErrInvalidDecider is returned when no decision function is provided.
	ErrInvalidDecider = errors.New("invalid decider")
	// ErrUnexpectedPayload is returned by Client.Ask when the peer answers
	// with something other than a Response.
	ErrUnexpectedPayload = errors.New("unexpected payload")
)

// Error is the error type returned by the codec, the connector and the
// server. Err carries the underlying cause wrapped with context.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return "tourguide: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrParse:
		return e.Kind == KindParse
	case ErrAddress:
		return e.Kind == KindAddress
	case ErrFrameTooLarge:
		return e.Kind == KindFrameTooLarge
	}
	return false
}

func ioError(err error, msg string) error {
	return &Error{Kind: KindIO, Err: errors.Wrap(err, msg)}
}

func parseError(err error, msg string) error {
	return &Error{Kind: KindParse, Err: errors.Wrap(err, msg)}
}

func addressError(err error, msg string) error {
	return &Error{Kind: KindAddress, Err: errors.Wrap(err, msg)}
}

func frameTooLarge(length, limit int) error {
	return &Error{Kind: KindFrameTooLarge, Err: errors.Errorf("frame of %d bytes exceeds limit of %d", length, limit)}
}
