// Package apperr defines the typed errors the service layer raises. Every
// failure that crosses the service boundary is one of these kinds; the HTTP
// error handler owns the mapping to status codes and response envelopes, so
// no other layer formats an error response.
package apperr

import "fmt"

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
	KindBusinessRule
	KindAccessDenied
)

// Code is the stable machine-readable identifier clients switch on.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_FAILED"
	case KindNotFound:
		return "RESOURCE_NOT_FOUND"
	case KindDuplicate:
		return "DUPLICATE_RESOURCE"
	case KindBusinessRule:
		return "BUSINESS_VALIDATION_FAILED"
	case KindAccessDenied:
		return "ACCESS_DENIED"
	default:
		return "INTERNAL_ERROR"
	}
}

// FieldError describes one rejected input field on a validation failure.
type FieldError struct {
	Field         string      `json:"field"`
	Message       string      `json:"message"`
	RejectedValue interface{} `json:"rejectedValue"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Duplicatef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func BusinessRulef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func AccessDeniedf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAccessDenied, Message: fmt.Sprintf(format, args...)}
}

// Validation reports failed field-level checks. The fields travel in the
// response envelope verbatim.
func Validation(message string, fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Internal wraps an unanticipated fault. The cause is kept for logging; the
// error handler never sends it to the client.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: cause}
}
