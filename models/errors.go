package models

import "fmt"

// TransportError wraps a failed call to the data store (network, auth or
// query failure). The underlying message is surfaced to the caller.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transport error during %s", e.Op)
	}
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err with the operation that failed
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// ValidationError reports a missing or out-of-range field, detected before
// any call to the data store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BusinessRuleViolation reports an operation blocked by a domain rule,
// e.g. deleting a salesperson that still has clients assigned. The
// operation is aborted with no partial effect.
type BusinessRuleViolation struct {
	Message string
}

func (e *BusinessRuleViolation) Error() string {
	return e.Message
}
