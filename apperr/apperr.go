// Package apperr defines the error taxonomy shared by the service and
// transport layers. Every error crossing a layer boundary carries a Kind so
// callers can branch on what happened without parsing messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: bad input, rejected before any write.
	KindValidation
	// KindAuthentication: password mismatch, no state change.
	KindAuthentication
	// KindNotFound: missing post, comment, attachment or category.
	KindNotFound
	// KindFileUpload: extension/size/count violation or mid-batch save failure.
	KindFileUpload
	// KindStorageIO: filesystem failure.
	KindStorageIO
	// KindPersistence: unexpected relational failure.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindFileUpload:
		return "file_upload"
	case KindStorageIO:
		return "storage_io"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is a tagged error carrying a machine-readable kind and a
// human-readable detail.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a tagged error with the given kind and message.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error with a kind and context message.
// A nil err yields nil.
func Wrap(kind Kind, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, unwrapping as needed.
// Untagged errors report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
