package lending

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Service applies the guards to positions held in a Store.
type Service struct {
	store  Store
	params RiskParameters
	logger OperationLogger
	newID  func() string
}

type positionMutation func(position Position) (Position, error)

// NewService wires a Service.
func NewService(store Store, params RiskParameters, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store dependency is nil", ErrInvalidServiceConfig)
	}
	validated, err := NewRiskParameters(params.MaxLTVBps, params.LiquidationThresholdBps)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServiceConfig, err)
	}
	service := &Service{store: store, params: validated, newID: uuid.NewString}
	for _, option := range options {
		if option != nil {
			option(service)
		}
	}
	return service, nil
}

// RiskParameters returns the parameters the guards run with.
func (service *Service) RiskParameters() RiskParameters {
	return service.params
}

// Position returns the current snapshot of a position.
func (service *Service) Position(ctx context.Context, positionID PositionID) (Position, error) {
	return service.store.GetPosition(ctx, positionID)
}

// Deposit credits free funds, opening the position on first use.
func (service *Service) Deposit(ctx context.Context, positionID PositionID, amount PositiveAmountCents) error {
	return service.run(ctx, operationDeposit, positionID, amount, true, func(position Position) (Position, error) {
		funds, err := addCents(position.FundsCents, amount)
		if err != nil {
			return Position{}, err
		}
		position.FundsCents = funds
		return position, nil
	})
}

// Withdraw debits free funds.
func (service *Service) Withdraw(ctx context.Context, positionID PositionID, amount PositiveAmountCents) error {
	return service.run(ctx, operationWithdraw, positionID, amount, false, func(position Position) (Position, error) {
		if err := CheckWithdraw(position, amount); err != nil {
			return Position{}, err
		}
		position.FundsCents -= amount.ToAmountCents()
		return position, nil
	})
}

// PostCollateral moves free funds into collateral.
func (service *Service) PostCollateral(ctx context.Context, positionID PositionID, amount PositiveAmountCents) error {
	return service.run(ctx, operationPostCollateral, positionID, amount, false, func(position Position) (Position, error) {
		if err := CheckPostCollateral(position, amount); err != nil {
			return Position{}, err
		}
		collateral, err := addCents(position.CollateralCents, amount)
		if err != nil {
			return Position{}, err
		}
		position.FundsCents -= amount.ToAmountCents()
		position.CollateralCents = collateral
		return position, nil
	})
}

// Borrow adds debt and credits the borrowed funds.
func (service *Service) Borrow(ctx context.Context, positionID PositionID, amount PositiveAmountCents) error {
	return service.run(ctx, operationBorrow, positionID, amount, false, func(position Position) (Position, error) {
		if err := CheckBorrow(position, service.params, amount); err != nil {
			return Position{}, err
		}
		funds, err := addCents(position.FundsCents, amount)
		if err != nil {
			return Position{}, err
		}
		position.FundsCents = funds
		position.DebtCents += amount.ToAmountCents()
		return position, nil
	})
}

// Repay pays debt down from free funds.
func (service *Service) Repay(ctx context.Context, positionID PositionID, amount PositiveAmountCents) error {
	return service.run(ctx, operationRepay, positionID, amount, false, func(position Position) (Position, error) {
		if err := CheckRepay(position, amount); err != nil {
			return Position{}, err
		}
		position.FundsCents -= amount.ToAmountCents()
		position.DebtCents -= amount.ToAmountCents()
		return position, nil
	})
}

// Liquidate settles amount of an unhealthy position's debt against its
// collateral one to one. Collateral is never driven below zero.
func (service *Service) Liquidate(ctx context.Context, positionID PositionID, amount PositiveAmountCents) error {
	return service.run(ctx, operationLiquidate, positionID, amount, false, func(position Position) (Position, error) {
		if err := CheckLiquidate(position, service.params, amount); err != nil {
			return Position{}, err
		}
		position.DebtCents -= amount.ToAmountCents()
		seized := min(amount.ToAmountCents(), position.CollateralCents)
		position.CollateralCents -= seized
		return position, nil
	})
}

func (service *Service) run(ctx context.Context, operation string, positionID PositionID, amount PositiveAmountCents, create bool, mutate positionMutation) error {
	operationError := requirePositive(amount)
	if operationError == nil {
		operationError = service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
			var (
				position Position
				err      error
			)
			if create {
				position, err = transactionStore.GetOrCreatePosition(ctx, positionID)
			} else {
				position, err = transactionStore.GetPosition(ctx, positionID)
			}
			if err != nil {
				return err
			}
			updated, err := mutate(position)
			if err != nil {
				return err
			}
			return transactionStore.PutPosition(ctx, updated)
		})
	}
	service.logOperation(ctx, OperationLog{
		Operation:  operation,
		PositionID: positionID,
		Amount:     amount.ToAmountCents(),
		Error:      operationError,
	})
	return operationError
}

func (service *Service) logOperation(ctx context.Context, entry OperationLog) {
	if service.logger == nil {
		return
	}
	if entry.OperationID == "" {
		entry.OperationID = service.newID()
	}
	if entry.Status == "" {
		if entry.Error != nil {
			entry.Status = operationStatusError
		} else {
			entry.Status = operationStatusOK
		}
	}
	service.logger.LogOperation(ctx, entry)
}

func addCents(balance AmountCents, amount PositiveAmountCents) (AmountCents, error) {
	if balance.Int64() > math.MaxInt64-amount.Int64() {
		return 0, WrapError(errorOperationService, errorSubjectBalance, errorCodeOverflow, ErrInvalidBalance)
	}
	return AmountCents(balance.Int64() + amount.Int64()), nil
}
