package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeMissingToken        = "MISSING_TOKEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeConfig              = "CONFIG_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
	ErrCodeProviderRejected    = "PROVIDER_REJECTED"
	ErrCodeAuthorizationFailed = "AUTHORIZATION_FAILED"
	ErrCodeCaptureFailed       = "CAPTURE_FAILED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func MissingTokenError(message string) *AppError {
	return NewAppError(ErrCodeMissingToken, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func ConfigError(message string) *AppError {
	return NewAppError(ErrCodeConfig, message, http.StatusInternalServerError)
}

func CacheError(message string) *AppError {
	return NewAppError(ErrCodeCacheError, message, http.StatusInternalServerError)
}

// ProviderRejectedError carries the provider's original status code so the
// handler layer passes it through verbatim instead of collapsing it to 500.
func ProviderRejectedError(message string, providerStatus int) *AppError {
	return NewAppError(ErrCodeProviderRejected, message, providerStatus)
}

func AuthorizationFailedError(message string, providerStatus int) *AppError {
	return NewAppError(ErrCodeAuthorizationFailed, message, providerStatus)
}

func CaptureFailedError(message string, providerStatus int) *AppError {
	return NewAppError(ErrCodeCaptureFailed, message, providerStatus)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
