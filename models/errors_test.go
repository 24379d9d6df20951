package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransportError("fetch page", cause)

	assert.Equal(t, "transport error during fetch page: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "fetch page", transportErr.Op)
}

func TestTransportErrorWithoutCause(t *testing.T) {
	err := &TransportError{Op: "allocate ledger sequence"}
	assert.Equal(t, "transport error during allocate ledger sequence", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "dueDate", Message: "invalid date, expected YYYY-MM-DD"}
	assert.Equal(t, "dueDate: invalid date, expected YYYY-MM-DD", err.Error())
}

func TestBusinessRuleViolationMessage(t *testing.T) {
	err := &BusinessRuleViolation{Message: "Cannot delete a client with ledger records"}
	assert.Equal(t, "Cannot delete a client with ledger records", err.Error())
}
