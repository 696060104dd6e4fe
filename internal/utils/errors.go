package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Failure classes of the state layer. Callers wrap these with fmt.Errorf("...: %w")
// and classify with errors.Is.
var (
	// ErrNetwork is a fetch or connection failure against the sensor backend
	ErrNetwork = errors.New("network error")
	// ErrParse is a malformed payload from the sensor backend
	ErrParse = errors.New("parse error")
	// ErrReconnectExhausted is returned once the alert stream has given up
	ErrReconnectExhausted = errors.New("alert stream reconnect attempts exhausted")
	// ErrPersistence is a failed read or write against the local cache
	ErrPersistence = errors.New("persistence error")
)

// Errors surfaced by the HTTP layer
var (
	ErrNotFound           = errors.New("resource not found")
	ErrBadRequest         = errors.New("invalid request")
	ErrRateLimited        = errors.New("too many requests")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleError processes an error and writes the matching HTTP response
func HandleError(ctx *gin.Context, err error, logger *Logger) {
	status, response := processError(err)

	if status >= 500 {
		logger.Error("Server error",
			zap.Error(err),
			zap.String("path", ctx.Request.URL.Path),
			zap.String("method", ctx.Request.Method),
			zap.String("ip", ctx.ClientIP()),
		)
	}

	ctx.JSON(status, response)
}

// processError determines the HTTP status code and response body for an error
func processError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{
			Error:   "rate_limited",
			Message: err.Error(),
		}
	case errors.Is(err, ErrNetwork), errors.Is(err, ErrParse):
		return http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		}
	case errors.Is(err, ErrServiceUnavailable), errors.Is(err, ErrReconnectExhausted):
		return http.StatusServiceUnavailable, ErrorResponse{
			Error:   "service_unavailable",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_server_error",
			Message: "An unexpected error occurred",
		}
	}
}

// IsNetworkError checks if an error is a sensor backend network failure
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsParseError checks if an error is a malformed payload
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsPersistenceError checks if an error came from the local cache
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}
