package errors

import "fmt"

// Kind classifies an error for the transport layer.
type Kind int

const (
	// KindInternal is an unexpected failure (store error, broken invariant).
	KindInternal Kind = iota
	// KindInvalidInput is a validation failure detected before commit.
	KindInvalidInput
	// KindNotFound means the target row does not exist or is soft-deleted.
	KindNotFound
)

// E is the error type produced by the service layer. Code is a stable
// machine-readable constant (codes.go), Message names the offending input.
type E struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *E) Error() string {
	return e.Message
}

// Invalidf builds an InvalidInput error with a formatted message.
func Invalidf(code string, format string, args ...interface{}) *E {
	return &E{Kind: KindInvalidInput, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NotFound error with a formatted message.
func NotFoundf(code string, format string, args ...interface{}) *E {
	return &E{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Internalf builds an Internal error with a formatted message.
func Internalf(format string, args ...interface{}) *E {
	return &E{Kind: KindInternal, Code: InternalServerError, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err. Anything that is not an *E from this
// package is treated as internal.
func KindOf(err error) Kind {
	if e, ok := err.(*E); ok {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the stable code of err, or InternalServerError.
func CodeOf(err error) string {
	if e, ok := err.(*E); ok {
		return e.Code
	}
	return InternalServerError
}
