package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrWalletInactive      = errors.New("wallet is not active")
	ErrSelfTransfer        = errors.New("sender and receiver are the same user")
	ErrAlreadyPurchased    = errors.New("content already purchased")
	ErrNotMonetized        = errors.New("content is not monetized")
	ErrTransactionFailed   = errors.New("transaction failed")
)

// AppError represents an application error with an HTTP status and a
// machine-readable code. Details carries extra response fields, e.g.
// the shortfall breakdown on INSUFFICIENT_BALANCE.
type AppError struct {
	Status  int                    `json:"-"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches extra response fields to the error
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// Common error constructors
func NotFound(code, message string) *AppError {
	return NewAppError(http.StatusNotFound, code, message, ErrNotFound)
}

func BadRequest(code, message string) *AppError {
	return NewAppError(http.StatusBadRequest, code, message, ErrInvalidInput)
}

func Precondition(code, message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, code, message, err)
}

func Conflict(code, message string) *AppError {
	return NewAppError(http.StatusConflict, code, message, ErrAlreadyExists)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
}

// TransactionError wraps a datastore abort inside the atomic section.
// The whole call may be retried by the client.
func TransactionError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "TRANSACTION_FAILED", "transaction failed", errors.Join(ErrTransactionFailed, err))
}
