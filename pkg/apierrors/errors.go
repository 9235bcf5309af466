// Package apierrors defines the coded error type shared by services and the
// HTTP transport. Services return these; the transport maps codes to status
// codes and JSON envelopes so error translation lives in exactly one place.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category independent of transport.
type Code string

const (
	CodeInvalidInput      Code = "invalid_input"
	CodeInvalidCredential Code = "invalid_credential"
	CodeUserNotFound      Code = "user_not_found"
	CodeWrongPassword     Code = "wrong_password"
	CodeEmailInUse        Code = "email_in_use"
	CodeInsufficientStock Code = "insufficient_stock"
	CodeNotFound          Code = "not_found"
	CodeUnauthorized      Code = "unauthorized"
	CodeInternal          Code = "internal"
)

// Error carries a code plus a user-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a coded error.
func New(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from err, or CodeInternal if err is not coded.
func CodeOf(err error) Code {
	var coded Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// MessageOf extracts the user-readable message, or a generic fallback.
func MessageOf(err error) string {
	var coded Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	return "Something went wrong. Please try again."
}

// ToHTTPStatus maps an error code to an HTTP status code.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeInsufficientStock:
		return http.StatusBadRequest
	case CodeInvalidCredential, CodeWrongPassword, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUserNotFound, CodeNotFound:
		return http.StatusNotFound
	case CodeEmailInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
