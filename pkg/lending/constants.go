package lending

const (
	operationDeposit        = "deposit"
	operationWithdraw       = "withdraw"
	operationPostCollateral = "post_collateral"
	operationBorrow         = "borrow"
	operationRepay          = "repay"
	operationLiquidate      = "liquidate"

	operationStatusOK    = "ok"
	operationStatusError = "error"

	errorOperationService = "service"
	errorSubjectBalance   = "balance"
	errorCodeOverflow     = "overflow"
)
