package grpcstatus

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatusMapsKinds(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		source      error
		wantCode    codes.Code
		wantMessage string
	}{
		{lending.ErrInsufficientFunds, codes.FailedPrecondition, errorInsufficientFunds},
		{lending.ErrOverBorrowableAmount, codes.OutOfRange, errorOverBorrowableAmount},
		{lending.ErrOverRepay, codes.OutOfRange, errorOverRepay},
		{lending.ErrHealthFactorAboveOne, codes.FailedPrecondition, errorHealthFactorAboveOne},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.wantMessage, func(test *testing.T) {
			test.Parallel()
			wrapped := lending.WrapError("service", "position", "rejected", fmt.Errorf("%w: requested 10", testCase.source))
			statusValue, ok := status.FromError(ToStatus(wrapped))
			if !ok {
				test.Fatalf("expected grpc status")
			}
			if statusValue.Code() != testCase.wantCode || statusValue.Message() != testCase.wantMessage {
				test.Fatalf("expected %s/%s, got %s/%s", testCase.wantCode, testCase.wantMessage, statusValue.Code(), statusValue.Message())
			}
		})
	}
}

func TestToStatusMapsValidationAndInfrastructure(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name     string
		source   error
		wantCode codes.Code
	}{
		{name: "position id", source: fmt.Errorf("%w: empty value", lending.ErrInvalidPositionID), wantCode: codes.InvalidArgument},
		{name: "amount", source: fmt.Errorf("%w: must be greater than zero", lending.ErrInvalidAmountCents), wantCode: codes.InvalidArgument},
		{name: "risk parameters", source: lending.ErrInvalidRiskParameters, wantCode: codes.InvalidArgument},
		{name: "unknown position", source: lending.WrapError("store", "position", "get", lending.ErrUnknownPosition), wantCode: codes.NotFound},
		{name: "canceled", source: context.Canceled, wantCode: codes.Canceled},
		{name: "deadline", source: context.DeadlineExceeded, wantCode: codes.DeadlineExceeded},
		{name: "other", source: errors.New("disk on fire"), wantCode: codes.Internal},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			if got := status.Code(ToStatus(testCase.source)); got != testCase.wantCode {
				test.Fatalf("expected %s, got %s", testCase.wantCode, got)
			}
		})
	}
}

func TestToStatusNil(test *testing.T) {
	test.Parallel()
	if ToStatus(nil) != nil {
		test.Fatalf("expected nil status for nil error")
	}
}

func TestKindRoundTripsThroughStatus(test *testing.T) {
	test.Parallel()
	for _, kind := range lending.Kinds() {
		statusError := ToStatus(kind.Err())
		recovered, ok := KindFromStatus(statusError)
		if !ok || recovered != kind {
			test.Fatalf("expected %s, got %s (ok=%t)", kind, recovered, ok)
		}
		if !errors.Is(FromStatus(statusError), kind.Err()) {
			test.Fatalf("expected FromStatus to match %s", kind)
		}
	}
}

func TestEveryKindHasAnIdentifier(test *testing.T) {
	test.Parallel()
	seen := make(map[string]lending.Kind)
	for _, kind := range lending.Kinds() {
		identifier, ok := Identifier(kind)
		if !ok || identifier == "" {
			test.Fatalf("%s has no wire identifier", kind)
		}
		if previous, exists := seen[identifier]; exists {
			test.Fatalf("%s reuses identifier of %s", kind, previous)
		}
		seen[identifier] = kind
	}
}

func TestKindFromStatusIgnoresForeignErrors(test *testing.T) {
	test.Parallel()
	testCases := []error{
		errors.New("plain"),
		status.Error(codes.FailedPrecondition, "something_else"),
		status.Error(codes.Internal, errorOverRepay),
	}
	for _, source := range testCases {
		if kind, ok := KindFromStatus(source); ok {
			test.Fatalf("expected no kind for %v, got %s", source, kind)
		}
		if FromStatus(source) != source {
			test.Fatalf("expected %v returned unchanged", source)
		}
	}
}
