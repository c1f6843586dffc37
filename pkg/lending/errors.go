package lending

import (
	"errors"
	"fmt"
)

// Error carries a single Kind. Values are comparable, so errors.Is matches
// a wrapped Error against the sentinels below.
type Error struct {
	kind Kind
}

// Error returns the kind's message.
func (lendingError Error) Error() string {
	if !lendingError.kind.Valid() {
		return fmt.Sprintf("unknown lending failure %d", uint32(lendingError.kind))
	}
	return lendingError.kind.Message()
}

// Kind returns the carried kind.
func (lendingError Error) Kind() Kind {
	return lendingError.kind
}

// Financial-safety failures selected by the guards.
var (
	ErrInsufficientFunds    = KindInsufficientFunds.Err()
	ErrOverBorrowableAmount = KindOverBorrowableAmount.Err()
	ErrOverRepay            = KindOverRepay.Err()
	ErrHealthFactorAboveOne = KindHealthFactorAboveOne.Err()
)

// Input and configuration errors. None of these is a Kind.
var (
	ErrUnknownKind           = errors.New("unknown error kind")
	ErrUnknownPosition       = errors.New("unknown position")
	ErrInvalidPositionID     = errors.New("invalid position id")
	ErrInvalidAmountCents    = errors.New("invalid amount cents")
	ErrInvalidRiskParameters = errors.New("invalid risk parameters")
	ErrInvalidServiceConfig  = errors.New("invalid service config")
	ErrInvalidBalance        = errors.New("invalid balance")
)

// KindOf returns the kind carried anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var lendingError Error
	if !errors.As(err, &lendingError) {
		return 0, false
	}
	if !lendingError.kind.Valid() {
		return 0, false
	}
	return lendingError.kind, true
}

// OperationError wraps a failure with a stable operation code.
type OperationError struct {
	operation string
	subject   string
	code      string
	err       error
}

// Error returns the formatted error message.
func (operationError OperationError) Error() string {
	return fmt.Sprintf("%s.%s.%s: %v", operationError.operation, operationError.subject, operationError.code, operationError.err)
}

// Unwrap returns the underlying error.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the operation segment.
func (operationError OperationError) Operation() string {
	return operationError.operation
}

// Subject returns the subject segment.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code returns the stable error code segment.
func (operationError OperationError) Code() string {
	return operationError.code
}

// WrapError wraps an error with operation, subject, and code metadata.
func WrapError(operation string, subject string, code string, err error) error {
	if err == nil {
		return nil
	}
	return OperationError{
		operation: operation,
		subject:   subject,
		code:      code,
		err:       err,
	}
}
