package errors

import (
	stderrors "errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if stderrors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// ConfigError reports a missing gateway credential or sender phone.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func NewConfigError(message string) *ConfigError {
	return &ConfigError{Message: message}
}

func IsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// DeliveryError reports a rejected or failed message-gateway call.
// StatusCode is zero when the request never got a response.
type DeliveryError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

func NewDeliveryError(message string, statusCode int, cause error) *DeliveryError {
	return &DeliveryError{
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

func IsDeliveryError(err error) (*DeliveryError, bool) {
	var de *DeliveryError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}
