// Package dto defines the HTTP response envelope and the mapping from
// domain errors to HTTP status codes.
package dto

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/interfaces/http/middleware"
)

// Response is the envelope every endpoint returns
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries the machine-readable error code and a message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK writes a 200 response with the given payload
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created writes a 201 response with the given payload
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// NoContent writes a 204 response
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 with a VALIDATION_ERROR body.
// Used for malformed request bodies and path parameters; binding
// failures are flattened to per-field messages.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    "VALIDATION_ERROR",
			Message: strings.Join(middleware.ValidationMessages(err), "; "),
		},
	})
}

// Error maps an application error to its HTTP status and writes it.
// Domain errors keep their code; anything else becomes a 500 with an
// opaque body so internals never leak to clients.
func Error(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(statusFor(domainErr), Response{
			Success: false,
			Error:   &ErrorBody{Code: domainErr.Code, Message: domainErr.Message},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error:   &ErrorBody{Code: "INTERNAL_ERROR", Message: "An internal error occurred"},
	})
}

func statusFor(err *shared.DomainError) int {
	switch err.Code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	case "ALREADY_EXISTS", "CONCURRENCY_CONFLICT":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
