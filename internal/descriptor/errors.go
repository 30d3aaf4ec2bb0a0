package descriptor

import (
	"errors"
	"fmt"
)

// Kind identifies why a descriptor was rejected
type Kind int

const (
	KindRead Kind = iota
	KindMalformedLine
	KindUnknownKey
	KindMissingName
	KindMissingType
	KindInvalidType
	KindMissingResource
	KindResourceNotFound
)

// String returns a short name for the kind
func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindMalformedLine:
		return "malformed line"
	case KindUnknownKey:
		return "unknown key"
	case KindMissingName:
		return "missing name"
	case KindMissingType:
		return "missing type"
	case KindInvalidType:
		return "invalid type"
	case KindMissingResource:
		return "missing resource"
	case KindResourceNotFound:
		return "resource not found"
	default:
		return "unknown"
	}
}

// ParseError is returned for any descriptor that fails to parse or validate.
// Detail is a one-line message suitable for display next to the entry.
type ParseError struct {
	Kind   Kind
	Detail string
	Err    error // underlying I/O error, if any
}

func (e *ParseError) Error() string {
	return e.Detail
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a ParseError of the given kind
func IsKind(err error, kind Kind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}
