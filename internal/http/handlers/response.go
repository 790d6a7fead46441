// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints:
// the error envelope, consistent JSON serialization, and helpers for common
// HTTP patterns.
//
// Conventions:
//   - All error responses return an ErrorResponse whose `error` field carries a
//     human-readable message; `code` is a stable machine-readable string.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context.
//   - `ok()` writes success bodies; bots are returned raw, without a wrapper.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "error": "bot not found",
//	  "code": "not_found",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	}
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{ "id": 7, "nombre": "Soporte", "tipo": "general", ... }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-bots-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable message (safe to show to users)
	Error string `json:"error" example:"bot not found"`
	// Store-provided detail, present only on some 5xx responses
	Detail string `json:"detail,omitempty" example:"Key (id)=(7) already exists."`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code,omitempty" example:"not_found"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// MessageResponse acknowledges an operation that has no resource to return.
type MessageResponse struct {
	Message string `json:"message" example:"bot deleted"`
}

// fail aborts the request with a structured error and logs server-side errors.
// detail may be empty.
func fail(c *gin.Context, status int, code, msg, detail string) {
	resp := ErrorResponse{
		Error:     msg,
		Detail:    detail,
		Code:      code,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		ev := lg.Error().
			Int("status", status).
			Str("code", code).
			Str("error", msg)
		if detail != "" {
			ev = ev.Str("detail", detail)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for packages (e.g. router setup) that
// need the same envelope without a store detail.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg, "") }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
