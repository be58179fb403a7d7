package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNetwork          = "NETWORK_ERROR"
	CodeServerRejected   = "SERVER_REJECTED"
	CodeSubmissionFailed = "SUBMISSION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeConflict         = "CONFLICT"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"
	CodeInternal         = "INTERNAL_ERROR"
)

const (
	msgNetwork    = "Unable to reach the marketplace. Check your connection and try again."
	msgServer     = "The marketplace could not process the request."
	msgSubmission = "Upload failed. Please retry."
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error

	// Problems lists per-field failures for VALIDATION_ERROR.
	Problems []FieldProblem
}

// FieldProblem names one invalid input field.
type FieldProblem struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (p FieldProblem) String() string {
	return p.Field + " " + p.Reason
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Validation reports client-side input problems. No network call precedes it.
func Validation(problems ...FieldProblem) *AppError {
	parts := make([]string, len(problems))
	for i, p := range problems {
		parts[i] = p.String()
	}
	message := "Invalid input"
	if len(parts) > 0 {
		message = strings.Join(parts, "; ")
	}
	return &AppError{
		Code:     CodeValidation,
		Message:  message,
		Status:   http.StatusBadRequest,
		Problems: problems,
	}
}

// Network wraps a transport failure (connection refused, timeout, DNS).
func Network(err error) *AppError {
	return &AppError{
		Code:    CodeNetwork,
		Message: msgNetwork,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// ServerRejected wraps a non-2xx response. detail is the server supplied message, if any.
func ServerRejected(status int, detail string) *AppError {
	message := strings.TrimSpace(detail)
	if message == "" {
		message = msgServer
	}
	return &AppError{
		Code:    CodeServerRejected,
		Message: message,
		Status:  status,
	}
}

// SubmissionFailed is the single signal surfaced for any failed listing submission step.
func SubmissionFailed(err error) *AppError {
	return &AppError{
		Code:    CodeSubmissionFailed,
		Message: msgSubmission,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Is reports whether any AppError in err's chain carries code.
func Is(err error, code string) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Err
	}
	return false
}

// UserMessage converts any error into the one line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// StatusOf returns the HTTP status carried by the first AppError in err's chain, or 0.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}
