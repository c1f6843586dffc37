package grpcstatus

import (
	"context"
	"errors"

	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	errorInsufficientFunds    = "insufficient_funds"
	errorOverBorrowableAmount = "over_borrowable_amount"
	errorOverRepay            = "over_repay"
	errorHealthFactorAboveOne = "health_factor_above_one"
	errorInvalidPositionID    = "invalid_position_id"
	errorInvalidAmount        = "invalid_amount_cents"
	errorInvalidRiskParams    = "invalid_risk_parameters"
	errorUnknownPosition      = "unknown_position"
	errorCanceled             = "canceled"
	errorDeadlineExceeded     = "deadline_exceeded"
)

type kindStatus struct {
	code       codes.Code
	identifier string
}

var kindStatuses = map[lending.Kind]kindStatus{
	lending.KindInsufficientFunds:    {code: codes.FailedPrecondition, identifier: errorInsufficientFunds},
	lending.KindOverBorrowableAmount: {code: codes.OutOfRange, identifier: errorOverBorrowableAmount},
	lending.KindOverRepay:            {code: codes.OutOfRange, identifier: errorOverRepay},
	lending.KindHealthFactorAboveOne: {code: codes.FailedPrecondition, identifier: errorHealthFactorAboveOne},
}

// Identifier returns the wire identifier used as the status message for kind.
func Identifier(kind lending.Kind) (string, bool) {
	mapped, ok := kindStatuses[kind]
	return mapped.identifier, ok
}

// ToStatus converts a service error into a grpc status error.
func ToStatus(source error) error {
	if source == nil {
		return nil
	}
	if kind, ok := lending.KindOf(source); ok {
		mapped := kindStatuses[kind]
		return status.Error(mapped.code, mapped.identifier)
	}
	if errors.Is(source, lending.ErrInvalidPositionID) {
		return status.Error(codes.InvalidArgument, errorInvalidPositionID)
	}
	if errors.Is(source, lending.ErrInvalidAmountCents) {
		return status.Error(codes.InvalidArgument, errorInvalidAmount)
	}
	if errors.Is(source, lending.ErrInvalidRiskParameters) {
		return status.Error(codes.InvalidArgument, errorInvalidRiskParams)
	}
	if errors.Is(source, lending.ErrUnknownPosition) {
		return status.Error(codes.NotFound, errorUnknownPosition)
	}
	if errors.Is(source, context.Canceled) {
		return status.Error(codes.Canceled, errorCanceled)
	}
	if errors.Is(source, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, errorDeadlineExceeded)
	}
	return status.Error(codes.Internal, source.Error())
}

// KindFromStatus recovers the kind from a status produced by ToStatus.
func KindFromStatus(source error) (lending.Kind, bool) {
	statusValue, ok := status.FromError(source)
	if !ok {
		return 0, false
	}
	for kind, mapped := range kindStatuses {
		if statusValue.Code() == mapped.code && statusValue.Message() == mapped.identifier {
			return kind, true
		}
	}
	return 0, false
}

// FromStatus turns a status produced by ToStatus back into the matching
// sentinel, so clients can use errors.Is. Other errors are returned unchanged.
func FromStatus(source error) error {
	kind, ok := KindFromStatus(source)
	if !ok {
		return source
	}
	return kind.Err()
}
