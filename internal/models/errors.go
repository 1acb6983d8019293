package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application's expected failure modes.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

// MessageResponse is the standard single-message response body.
// Errors and simple confirmations (e.g. post removal) share this shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// AppError is a classified application error. Message is what clients see;
// Err carries internal detail and is never serialized.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status maps the error code to its wire status. Conflict and invalid
// credentials are 400 and ownership violations are 401, matching the
// contract the existing clients were built against.
func (e *AppError) Status() int {
	switch e.Code {
	case CodeValidation, CodeConflict, CodeInvalidCredentials:
		return fiber.StatusBadRequest
	case CodeUnauthenticated, CodeForbidden:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found"}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Server error", Err: err}
}

// RespondWithError translates an error into the documented JSON body.
// Unclassified errors are treated as internal and leak no detail.
func RespondWithError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		return c.Status(appErr.Status()).JSON(MessageResponse{Message: appErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{Message: "Server error"})
}
