// Package apperror defines the closed set of error codes the API can
// return. Services translate repository errors into these; the handler
// layer maps each code to an HTTP status.
package apperror

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeUnauthenticated      Code = "unauthenticated"
	CodeMalformedCredential  Code = "malformed_credential"
	CodeVerificationRequired Code = "verification_required"
	CodeNotFound             Code = "not_found"
	CodeDuplicateKey         Code = "duplicate_key"
	CodeInvalidFields        Code = "invalid_fields"
	CodeInvalidCode          Code = "invalid_code"
	CodeAlreadyVerified      Code = "already_verified"
	CodeStorageFailure       Code = "storage_failure"
)

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message)
}

func MalformedCredential(message string) *Error {
	return New(CodeMalformedCredential, message)
}

func VerificationRequired(message string) *Error {
	return New(CodeVerificationRequired, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func DuplicateKey(message string) *Error {
	return New(CodeDuplicateKey, message)
}

func InvalidFields(message string) *Error {
	return New(CodeInvalidFields, message)
}

func InvalidCode(message string) *Error {
	return New(CodeInvalidCode, message)
}

func AlreadyVerified(message string) *Error {
	return New(CodeAlreadyVerified, message)
}

func StorageFailure(message string) *Error {
	return New(CodeStorageFailure, message)
}

// CodeOf extracts the taxonomy code from err, or CodeStorageFailure for
// anything that is not an *Error. Unexpected internal errors are never
// exposed with their own message.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeStorageFailure
}

// Status maps every code to its HTTP status. Unknown codes fall through
// to 500 so a new code cannot silently leak as a success.
func Status(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeMalformedCredential:
		return http.StatusNotAcceptable
	case CodeVerificationRequired, CodeDuplicateKey, CodeInvalidFields, CodeInvalidCode, CodeAlreadyVerified:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
