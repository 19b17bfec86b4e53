// Package apierror provides the typed error taxonomy of the domain and the
// standardized error envelopes returned to clients. All errors returned to
// clients go through this package so internal details (DB errors, stack
// traces) never leak.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies domain errors. Handlers map a Kind to an HTTP status.
type Kind int

const (
	KindInternal   Kind = iota
	KindNotFound        // referenced box, user or record does not exist
	KindConflict        // e.g. opening an already-active box
	KindValidation      // malformed or missing field
	KindAuth            // missing / invalid / expired session
	KindForbidden       // authenticated but lacking the required flag
	KindState           // operation not allowed in the current lifecycle state
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindState:
		return "state"
	default:
		return "internal"
	}
}

// Error is a domain error with a client-safe message.
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

func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }
func Forbidden(msg string) *Error  { return &Error{Kind: KindForbidden, Message: msg} }
func State(msg string) *Error      { return &Error{Kind: KindState, Message: msg} }

// Wrap attaches an underlying cause, kept out of the client message.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// KindOf returns the Kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is a domain error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// HTTPStatus maps err to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindState:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ─── Envelopes ───────────────────────────────────────────────────────────────

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Success bool              `json:"success"`
	Detail  string            `json:"detail"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// FromError builds the envelope for err. Internal errors get a generic message.
func FromError(err error) *APIError {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return New(e.Message)
	}
	return New("Error interno del servidor")
}
