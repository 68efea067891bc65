// Package errors provides the project error type: a machine code, a message, an optional field
// and operation tag, and a wrapped cause. Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and the wire; values are stable, append only
type ErrorCode uint16

// Error codes
const (
	ErrorCodeUnknown            ErrorCode = iota // unclassified
	ErrorCodePanic                               // recovered by middleware
	ErrorCodeUnavailable                         // transient, retry may succeed
	ErrorCodeValidation                          // request DTO failed validation
	ErrorCodeJSON                                // request body is not usable JSON
	ErrorCodeNotFound                            // unknown route or resource
	ErrorCodeInvalidInput                        // non-numeric or negative amount, bad rate
	ErrorCodeInvalidDescriptor                   // breaks the price split invariant
	ErrorCodeSchemaViolation                     // payload parses but fields are missing or mistyped
	ErrorCodeMalformedPayload                    // payload text does not parse
	ErrorCodePayloadTooLarge                     // over budget even without the image
	ErrorCodeImageTooLarge                       // raw image file over the upload limit
	ErrorCodeInvalidQuantity                     // quantity below one
	ErrorCodeCaptureUnavailable                  // camera could not be acquired
)

type codeInfo struct {
	name   string
	status int
}

var codes = map[ErrorCode]codeInfo{
	ErrorCodeUnknown:            {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:              {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:        {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeValidation:         {"validation", http.StatusBadRequest},
	ErrorCodeJSON:               {"json", http.StatusBadRequest},
	ErrorCodeNotFound:           {"not_found", http.StatusNotFound},
	ErrorCodeInvalidInput:       {"invalid_input", http.StatusUnprocessableEntity},
	ErrorCodeInvalidDescriptor:  {"invalid_descriptor", http.StatusUnprocessableEntity},
	ErrorCodeSchemaViolation:    {"schema_violation", http.StatusBadRequest},
	ErrorCodeMalformedPayload:   {"malformed_payload", http.StatusBadRequest},
	ErrorCodePayloadTooLarge:    {"payload_too_large", http.StatusRequestEntityTooLarge},
	ErrorCodeImageTooLarge:      {"image_too_large", http.StatusRequestEntityTooLarge},
	ErrorCodeInvalidQuantity:    {"invalid_quantity", http.StatusUnprocessableEntity},
	ErrorCodeCaptureUnavailable: {"capture_unavailable", http.StatusServiceUnavailable},
}

func (c ErrorCode) info() codeInfo {
	if ci, ok := codes[c]; ok {
		return ci
	}
	return codes[ErrorCodeUnknown]
}

// String is the snake_case name used in logs and metric labels
func (c ErrorCode) String() string { return c.info().name }

// HTTPStatusCode maps a code to its response status; unknown codes are 500
func HTTPStatusCode(c ErrorCode) int { return c.info().status }

// Error is the structured error; msg is for people, code is for machines
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the client facing part of an Error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	default:
		return e.msg
	}
}

// Unwrap returns the cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Message returns the message without the cause
func (e *Error) Message() string { return e.msg }

// Field names the offending input field, if any
func (e *Error) Field() string { return e.field }

// Op is the operation tag, e.g. "descriptor.Encode"
func (e *Error) Op() string { return e.op }

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns err's code, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return err != nil && CodeOf(err) == code }

// HTTPStatus maps any error to a response status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WireFrom builds the client facing form; foreign errors keep their text under Unknown
// the wrapped cause is never exposed
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// with copies the outermost *Error and applies fn; foreign errors pass through
func with(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// WithField returns a copy of err naming the offending field
func WithField(err error, field string) error { return with(err, func(e *Error) { e.field = field }) }

// WithOp returns a copy of err tagged with an operation label
func WithOp(err error, op string) error { return with(err, func(e *Error) { e.op = op }) }

// New returns an error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with formatting
func Newf(code ErrorCode, format string, a ...any) error { return New(code, fmt.Sprintf(format, a...)) }

// Wrap attaches code and msg to a cause
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with formatting
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

// JSONErrf reports an unusable request body
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf reports a recovered panic
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unavailablef reports a transient failure
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// InvalidInputf reports a bad amount or rate
func InvalidInputf(format string, a ...any) error { return Newf(ErrorCodeInvalidInput, format, a...) }

// InvalidDescriptorf reports a broken split invariant
func InvalidDescriptorf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidDescriptor, format, a...)
}

// SchemaViolationf reports a structurally wrong payload
func SchemaViolationf(format string, a ...any) error {
	return Newf(ErrorCodeSchemaViolation, format, a...)
}

// MalformedPayloadf reports unparseable payload text
func MalformedPayloadf(format string, a ...any) error {
	return Newf(ErrorCodeMalformedPayload, format, a...)
}

// PayloadTooLargef reports a payload over budget
func PayloadTooLargef(format string, a ...any) error {
	return Newf(ErrorCodePayloadTooLarge, format, a...)
}

// ImageTooLargef reports an image file over the upload limit
func ImageTooLargef(format string, a ...any) error { return Newf(ErrorCodeImageTooLarge, format, a...) }

// InvalidQuantityf reports a quantity below one
func InvalidQuantityf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidQuantity, format, a...)
}
