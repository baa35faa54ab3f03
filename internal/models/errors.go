package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the application.
const (
	CodeDuplicateEmail = "DUPLICATE_EMAIL"
	CodeUnknownEmail   = "UNKNOWN_EMAIL"
	CodeWrongPassword  = "WRONG_PASSWORD"
	CodeDuplicateTitle = "DUPLICATE_TITLE"
	CodeNotFound       = "NOT_FOUND"
	CodeForbidden      = "FORBIDDEN"
	CodeValidation     = "VALIDATION_ERROR"
	CodeInternal       = "INTERNAL_ERROR"
)

// AppError is a custom application error carrying a stable code.
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

// HTTPStatus maps the error code to the status used when the error is terminal
// for the request. Recoverable form errors are usually re-rendered inline and
// never reach this mapping.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeDuplicateEmail, CodeDuplicateTitle:
		return fiber.StatusConflict
	case CodeUnknownEmail, CodeWrongPassword:
		return fiber.StatusUnauthorized
	case CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Predefined error constructors

func NewDuplicateEmailError(email string) *AppError {
	return &AppError{
		Code:    CodeDuplicateEmail,
		Message: fmt.Sprintf("An account with email %s already exists", email),
	}
}

func NewUnknownEmailError(email string) *AppError {
	return &AppError{
		Code:    CodeUnknownEmail,
		Message: fmt.Sprintf("No account exists for email %s", email),
	}
}

func NewWrongPasswordError() *AppError {
	return &AppError{
		Code:    CodeWrongPassword,
		Message: "Incorrect password",
	}
}

func NewDuplicateTitleError(title string) *AppError {
	return &AppError{
		Code:    CodeDuplicateTitle,
		Message: fmt.Sprintf("A post titled %q already exists", title),
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}
