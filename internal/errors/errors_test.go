package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	err := NewNotFoundError("product not found: 9")

	assert.Equal(t, "product not found: 9", err.Message)
	assert.Equal(t, "product not found: 9", err.Error())
}

func TestNotFoundError_IsNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("place order: %w", NewNotFoundError("product not found: 9"))

	nf, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "product not found: 9", nf.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	nf, ok := IsNotFoundError(errors.New("some other error"))
	assert.False(t, ok)
	assert.Nil(t, nf)
}

func TestValidationError_Creation(t *testing.T) {
	err := NewValidationError("invalid order",
		ValidationDetail{Field: "buyerPhone", Message: "invalid phone number format"},
		ValidationDetail{Field: "buyerName", Message: "required field"},
	)

	assert.Equal(t, "invalid order", err.Error())
	assert.Len(t, err.Details, 2)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "buyerPhone", ve.Details[0].Field)
}

func TestConfigError(t *testing.T) {
	var err error = NewConfigError("WhatsApp API key not configured")

	ce, ok := IsConfigError(err)
	assert.True(t, ok)
	assert.Equal(t, "WhatsApp API key not configured", ce.Error())

	_, ok = IsDeliveryError(err)
	assert.False(t, ok)
}

func TestDeliveryError_WithStatus(t *testing.T) {
	err := NewDeliveryError("bad key", 401, nil)

	assert.Equal(t, "bad key", err.Error())
	assert.Equal(t, 401, err.StatusCode)
	assert.Nil(t, err.Unwrap())
}

func TestDeliveryError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDeliveryError("failed to send WhatsApp message", 0, cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to send WhatsApp message")
	assert.Contains(t, err.Error(), "connection refused")

	de, ok := IsDeliveryError(fmt.Errorf("notify buyer: %w", err))
	assert.True(t, ok)
	assert.Zero(t, de.StatusCode)
}
