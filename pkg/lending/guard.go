package lending

import "fmt"

// The Check functions select at most one Kind for a requested operation.
// They never mutate the position. A non-positive amount is rejected with
// ErrInvalidAmountCents before any Kind is considered.

// CheckWithdraw rejects withdrawals larger than the free funds.
func CheckWithdraw(position Position, amount PositiveAmountCents) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	return requireFunds(position, amount)
}

// CheckPostCollateral rejects collateral postings larger than the free funds.
func CheckPostCollateral(position Position, amount PositiveAmountCents) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	return requireFunds(position, amount)
}

// CheckBorrow rejects borrows above the borrowable amount. Free funds play no
// part here, so a borrow can only fail with ErrOverBorrowableAmount.
func CheckBorrow(position Position, params RiskParameters, amount PositiveAmountCents) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	borrowable := position.BorrowableCents(params)
	if amount.ToAmountCents() > borrowable {
		return fmt.Errorf("%w: requested %d, borrowable %d", ErrOverBorrowableAmount, amount.Int64(), borrowable.Int64())
	}
	return nil
}

// CheckRepay checks the repay limit before the funds.
func CheckRepay(position Position, amount PositiveAmountCents) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	if err := requireDebt(position, amount); err != nil {
		return err
	}
	return requireFunds(position, amount)
}

// CheckLiquidate allows liquidation at a health factor of 1.0 or below and
// caps the repaid amount at the outstanding debt.
func CheckLiquidate(position Position, params RiskParameters, amount PositiveAmountCents) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	if !position.Liquidatable(params) {
		return fmt.Errorf("%w: health factor %s", ErrHealthFactorAboveOne, position.HealthFactor(params))
	}
	return requireDebt(position, amount)
}

func requirePositive(amount PositiveAmountCents) error {
	if amount.Int64() <= 0 {
		return fmt.Errorf("%w: must be greater than zero", ErrInvalidAmountCents)
	}
	return nil
}

func requireFunds(position Position, amount PositiveAmountCents) error {
	if amount.ToAmountCents() > position.FundsCents {
		return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientFunds, amount.Int64(), position.FundsCents.Int64())
	}
	return nil
}

func requireDebt(position Position, amount PositiveAmountCents) error {
	if amount.ToAmountCents() > position.DebtCents {
		return fmt.Errorf("%w: requested %d, outstanding %d", ErrOverRepay, amount.Int64(), position.DebtCents.Int64())
	}
	return nil
}
