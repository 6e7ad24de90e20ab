// Package apierror provides the error taxonomy and response envelope for
// the API. Services return *Error values; handlers map the Kind to an HTTP
// status. All errors returned to clients go through this package to ensure
// consistency and to prevent leaking internal details (stack traces, DB
// errors, etc.).
package apierror

import "net/http"

// Kind classifies an error for HTTP mapping and client handling.
type Kind int

const (
	KindInternal Kind = iota
	KindAuth
	KindForbidden
	KindNotFound
	KindValidation
	KindConflict
)

// Error is the canonical error envelope carried from services to handlers.
// Fields is only populated for validation errors.
type Error struct {
	Kind   Kind              `json:"-"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Detail }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(msg string) *Error        { return &Error{Kind: KindInternal, Detail: msg} }
func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Detail: msg} }
func Forbidden(msg string) *Error  { return &Error{Kind: KindForbidden, Detail: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Detail: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Detail: msg} }
func Internal(msg string) *Error   { return &Error{Kind: KindInternal, Detail: msg} }
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Detail: msg} }

// ValidationFields wraps multiple field errors.
func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: "Dados inválidos", Fields: fields}
}
