package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Forbidden sub-reasons, carried for caller diagnostics and logging.
const (
	ReasonSelfPurchase        = "SELF_PURCHASE"
	ReasonInsufficientBalance = "INSUFFICIENT_BALANCE"
	ReasonNotActive           = "NOT_ACTIVE"
	ReasonNotPurchasable      = "NOT_PURCHASABLE_CATEGORY"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Reason  string
	Err     error
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

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

// ForbiddenReason builds a FORBIDDEN error with a sub-reason code. All
// denial reasons surface as the same outer kind; the reason is kept for
// diagnostics.
func ForbiddenReason(reason, message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Reason:  reason,
	}
}

func PriceMismatch(message string) *AppError {
	return &AppError{
		Code:    "PRICE_MISMATCH",
		Message: message,
		Status:  http.StatusConflict,
	}
}

func AlreadySold(message string) *AppError {
	return &AppError{
		Code:    "ALREADY_SOLD",
		Message: message,
		Status:  http.StatusConflict,
	}
}

func InsufficientFunds(message string) *AppError {
	return &AppError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: message,
		Status:  http.StatusPaymentRequired,
	}
}

func InvalidTransition(message string) *AppError {
	return &AppError{
		Code:    "INVALID_TRANSITION",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ReasonOf returns the Forbidden sub-reason, or "" when the error carries
// none.
func ReasonOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}
