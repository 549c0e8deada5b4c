package errors

import "net/http"

// Code represents an error code
type Code string

// Generic error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// Engine error codes
const (
	// CodeInvalidSpec is a malformed dice expression
	CodeInvalidSpec Code = "INVALID_SPEC"
	// CodeUnknownScene is a scene name with no registered factory
	CodeUnknownScene Code = "UNKNOWN_SCENE"
	// CodeUnknownFoe is a foe id missing from the catalog
	CodeUnknownFoe Code = "UNKNOWN_FOE"
	// CodeUnknownItem is an item id missing from the catalog
	CodeUnknownItem Code = "UNKNOWN_ITEM"
	// CodeNoMatch means no catalog foe satisfies an encounter filter
	CodeNoMatch Code = "NO_MATCH"
	// CodeEmptyStack is a finish with no active scene
	CodeEmptyStack Code = "EMPTY_STACK"
	// CodeInvalidSave is a snapshot that is malformed or references unknown content
	CodeInvalidSave Code = "INVALID_SAVE"
	// CodeInvalidChoice is user input that matched no menu option
	CodeInvalidChoice Code = "INVALID_CHOICE"
	// CodeDisconnected signals the input source closed and the session must unwind
	CodeDisconnected Code = "DISCONNECTED"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeCanceled, CodeDisconnected:
		return http.StatusRequestTimeout
	case CodeInvalidArgument, CodeInvalidSpec, CodeInvalidChoice, CodeInvalidSave:
		return http.StatusBadRequest
	case CodeNotFound, CodeUnknownScene, CodeUnknownFoe, CodeUnknownItem, CodeNoMatch:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeResourceExhausted:
		return http.StatusTooManyRequests
	case CodeFailedPrecondition, CodeEmptyStack:
		return http.StatusPreconditionFailed
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
