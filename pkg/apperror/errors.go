package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code string) bool {
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

const (
	CodeStorage            = "STO_001"
	CodeNotFound           = "STO_002"
	CodeProtocol           = "STO_003"
	CodePointerUnavailable = "PTR_001"
	CodePointerConflict    = "PTR_002"
	CodeValidation         = "VAL_001"
	CodeConfirmation       = "VAL_002"
	CodeInvalidToken       = "AUTH_001"
	CodeRateLimit          = "RATE_001"
	CodeInternal           = "SYS_001"
)

// ---- Blob storage (STO) ----

// ErrStorage reports a failed blob put/get. Callers may retry the whole operation.
func ErrStorage(op string, err error) *AppError {
	return Wrap(CodeStorage, fmt.Sprintf("Blob storage %s failed", op), http.StatusBadGateway, err)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ErrProtocol reports a store response that could not be interpreted,
// e.g. a put response carrying no blob ID.
func ErrProtocol(message string) *AppError {
	return New(CodeProtocol, message, http.StatusBadGateway)
}

// ---- Index pointer (PTR) ----

func ErrPointerUnavailable(err error) *AppError {
	return Wrap(CodePointerUnavailable, "Audit index pointer unavailable", http.StatusServiceUnavailable, err)
}

func ErrPointerConflict(expected, actual string) *AppError {
	return New(CodePointerConflict,
		fmt.Sprintf("Audit index pointer moved: expected %q, found %q", expected, actual),
		http.StatusConflict)
}

// ---- Validation (VAL) ----

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrConfirmationRequired(action string) *AppError {
	return New(CodeConfirmation, fmt.Sprintf("%s requires explicit confirmation", action), http.StatusPreconditionRequired)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimit, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
