// Package apperr defines the application error taxonomy shared by the
// REST and GraphQL adapters
package apperr

import "net/http"

type Kind int

const (
	Internal Kind = iota
	ValidationFailed
	InvalidCredentials
	AlreadyExists
	Unauthenticated
	Forbidden
	NotFound
	UnsupportedFileType
)

// FieldError describes a single violated input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	// Wrapped cause, logged server-side only
	Err error
}

// Error returns the client-safe message only. Both adapters hand this
// string to callers, the wrapped cause stays in the logs
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions satisfies gqlerrors.ExtendedError so the GraphQL adapter can
// attach the status and field data to the operation's error list
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"status": e.Status(),
	}
	if len(e.Fields) > 0 {
		ext["data"] = e.Fields
	}
	return ext
}

// Status maps an error kind to the HTTP status used by the REST adapter.
// Forbidden maps to 404 on purpose: an ownership failure must not reveal
// whether the resource exists
func (e *Error) Status() int {
	switch e.Kind {
	case ValidationFailed, UnsupportedFileType:
		return http.StatusUnprocessableEntity
	case InvalidCredentials, Unauthenticated:
		return http.StatusUnauthorized
	case AlreadyExists:
		return http.StatusConflict
	case Forbidden, NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap marks an unexpected failure as Internal. The cause stays attached
// for logging but the client only ever sees the message
func Wrap(err error, message string) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

func Validation(fields []FieldError) *Error {
	return &Error{
		Kind:    ValidationFailed,
		Message: "Validation failed, entered data is incorrect",
		Fields:  fields,
	}
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
