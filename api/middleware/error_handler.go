// api/middleware/error_handler.go
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Error codes carried in the envelope besides the validator reason codes.
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeEmptyResult    = "empty_result"
	CodeDatabaseError  = "database_error"
	CodeInternalError  = "internal_error"
	CodeRateLimited    = "rate_limited"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewErrorResponse stamps an envelope with the current UTC time.
func NewErrorResponse(detail, code string) ErrorResponse {
	return ErrorResponse{Detail: detail, ErrorCode: code, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// ErrorHandler maps the last error attached with c.Error to a status code and envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		err := last.Err

		status, detail, code := classify(err, last.IsType(gin.ErrorTypeBind))
		entry := customLog.WithField("path", c.Request.URL.Path).WithField("status", status)
		if status >= http.StatusInternalServerError {
			entry.Errorf("ErrorHandler: %v (%T)", err, err)
		} else {
			entry.Warnf("ErrorHandler: %v", err)
		}

		if c.Writer.Written() {
			customLog.Warnln("ErrorHandler: Response already written before handling error.")
			return
		}
		c.AbortWithStatusJSON(status, NewErrorResponse(detail, code))
	}
}

func classify(err error, bindErr bool) (int, string, string) {
	var vErr *core.ValidationError
	var fieldErrs validator.ValidationErrors
	var dbErr *core.DatabaseError

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message, string(vErr.Reason)
	case errors.As(err, &fieldErrs):
		return http.StatusBadRequest, describeFieldErrors(fieldErrs), CodeInvalidRequest
	case bindErr:
		return http.StatusBadRequest, "Invalid request body: " + err.Error(), CodeInvalidRequest
	case errors.Is(err, core.ErrEmptyResult):
		return http.StatusNotFound, "Query returned no results, cannot perform analysis", CodeEmptyResult
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, err.Error(), CodeNotFound
	case errors.As(err, &dbErr):
		return http.StatusInternalServerError, dbErr.Detail(), CodeDatabaseError
	default:
		return http.StatusInternalServerError, "Internal server error: " + err.Error(), CodeInternalError
	}
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("field '%s' failed on '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
		}
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
