package lending

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"
)

const basisPoints = 10_000

// AmountCents is a non-negative balance in cents.
type AmountCents int64

// PositiveAmountCents is a strictly positive operation amount in cents.
type PositiveAmountCents int64

// PositionID identifies a borrowing position.
type PositionID struct {
	value string
}

// NewAmountCents validates a balance.
func NewAmountCents(raw int64) (AmountCents, error) {
	if raw < 0 {
		return 0, fmt.Errorf("%w: must be non-negative", ErrInvalidAmountCents)
	}
	return AmountCents(raw), nil
}

// Int64 returns the raw cents value.
func (amount AmountCents) Int64() int64 {
	return int64(amount)
}

// NewPositiveAmountCents validates an amount and ensures it is strictly positive.
func NewPositiveAmountCents(raw int64) (PositiveAmountCents, error) {
	if raw <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmountCents)
	}
	return PositiveAmountCents(raw), nil
}

// Int64 returns the raw cents value.
func (amount PositiveAmountCents) Int64() int64 {
	return int64(amount)
}

// ToAmountCents converts to the non-negative balance type.
func (amount PositiveAmountCents) ToAmountCents() AmountCents {
	return AmountCents(amount)
}

// NewPositionID validates and normalizes a position id.
func NewPositionID(raw string) (PositionID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PositionID{}, fmt.Errorf("%w: empty value", ErrInvalidPositionID)
	}
	return PositionID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id PositionID) String() string {
	return id.value
}

// IsZero reports whether the id was never set.
func (id PositionID) IsZero() bool {
	return id.value == ""
}

// RiskParameters bounds borrowing and liquidation, in basis points.
type RiskParameters struct {
	MaxLTVBps               uint64
	LiquidationThresholdBps uint64
}

// NewRiskParameters validates 0 < maxLTV <= liquidationThreshold <= 10000.
func NewRiskParameters(maxLTVBps uint64, liquidationThresholdBps uint64) (RiskParameters, error) {
	if maxLTVBps == 0 {
		return RiskParameters{}, fmt.Errorf("%w: max ltv must be positive", ErrInvalidRiskParameters)
	}
	if liquidationThresholdBps > basisPoints {
		return RiskParameters{}, fmt.Errorf("%w: liquidation threshold exceeds %d bps", ErrInvalidRiskParameters, basisPoints)
	}
	if maxLTVBps > liquidationThresholdBps {
		return RiskParameters{}, fmt.Errorf("%w: max ltv %d exceeds liquidation threshold %d", ErrInvalidRiskParameters, maxLTVBps, liquidationThresholdBps)
	}
	return RiskParameters{MaxLTVBps: maxLTVBps, LiquidationThresholdBps: liquidationThresholdBps}, nil
}

// HealthFactor is a collateralization ratio in basis points; 10000 is 1.0.
type HealthFactor uint64

const (
	// HealthFactorOne is the liquidation boundary.
	HealthFactorOne HealthFactor = basisPoints
	// HealthFactorMax is reported for positions without debt.
	HealthFactorMax HealthFactor = math.MaxUint64
)

// String renders the factor as a decimal with four places.
func (factor HealthFactor) String() string {
	if factor == HealthFactorMax {
		return "inf"
	}
	return fmt.Sprintf("%d.%04d", uint64(factor)/basisPoints, uint64(factor)%basisPoints)
}

// Position is a snapshot of the balances the guards inspect.
type Position struct {
	ID              PositionID
	FundsCents      AmountCents
	CollateralCents AmountCents
	DebtCents       AmountCents
}

// HealthFactor computes collateral*threshold / debt. Zero debt yields HealthFactorMax.
func (position Position) HealthFactor(params RiskParameters) HealthFactor {
	if position.DebtCents == 0 {
		return HealthFactorMax
	}
	weightedCollateral := new(big.Int).Mul(big.NewInt(position.CollateralCents.Int64()), new(big.Int).SetUint64(params.LiquidationThresholdBps))
	factor := weightedCollateral.Quo(weightedCollateral, big.NewInt(position.DebtCents.Int64()))
	if !factor.IsUint64() || factor.Uint64() >= uint64(HealthFactorMax) {
		return HealthFactorMax - 1
	}
	return HealthFactor(factor.Uint64())
}

// Liquidatable reports whether the health factor is at or below 1.0.
// The comparison is exact, independent of the rounded HealthFactor value.
func (position Position) Liquidatable(params RiskParameters) bool {
	if position.DebtCents == 0 {
		return false
	}
	weightedCollateral := new(big.Int).Mul(big.NewInt(position.CollateralCents.Int64()), new(big.Int).SetUint64(params.LiquidationThresholdBps))
	scaledDebt := new(big.Int).Mul(big.NewInt(position.DebtCents.Int64()), big.NewInt(basisPoints))
	return weightedCollateral.Cmp(scaledDebt) <= 0
}

// BorrowableCents returns how much more the position may borrow under MaxLTVBps.
func (position Position) BorrowableCents(params RiskParameters) AmountCents {
	limit := new(big.Int).Mul(big.NewInt(position.CollateralCents.Int64()), new(big.Int).SetUint64(params.MaxLTVBps))
	limit.Quo(limit, big.NewInt(basisPoints))
	limit.Sub(limit, big.NewInt(position.DebtCents.Int64()))
	if limit.Sign() <= 0 {
		return 0
	}
	return AmountCents(limit.Int64())
}

// Store is the persistence contract used by Service.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error
	GetOrCreatePosition(ctx context.Context, positionID PositionID) (Position, error)
	GetPosition(ctx context.Context, positionID PositionID) (Position, error)
	PutPosition(ctx context.Context, position Position) error
}
