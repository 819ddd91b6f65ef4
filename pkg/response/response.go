// Package response writes the JSON envelopes every API endpoint answers with.
package response

import (
	"errors"
	"net/http"
	"time"

	"payzoll-audit/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	ErrorCode string                 `json:"error_code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id"`
	Timestamp string                 `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, success(c, data))
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, success(c, data))
}

// Error sends an error response. An *apperror.AppError anywhere in err's
// chain sets the status and code; anything else is a 500.
func Error(c *gin.Context, err error) {
	ErrorWithDetails(c, err, nil)
}

// ErrorWithDetails is Error with extra machine-readable fields, e.g. the
// current pointer value on a conflict.
func ErrorWithDetails(c *gin.Context, err error, details map[string]interface{}) {
	status := http.StatusInternalServerError
	body := ErrorResponse{
		ErrorCode: apperror.CodeInternal,
		Message:   "Internal server error",
		Details:   details,
		RequestID: getRequestID(c),
		Timestamp: now(),
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus
		body.ErrorCode = appErr.Code
		body.Message = appErr.Message
	}
	c.JSON(status, body)
}

func success(c *gin.Context, data interface{}) SuccessResponse {
	return SuccessResponse{
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: now(),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
