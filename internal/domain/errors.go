package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrNotFound        = errors.New("not found")
	ErrPolicyViolation = errors.New("policy violation")
	ErrUnauthorized    = errors.New("unauthorized")
)

func kindError(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

var (
	// Amount errors
	ErrNegativeAmount = kindError(ErrInvalidArgument, "amount must not be negative")
	ErrInvalidAmount  = kindError(ErrInvalidArgument, "amount must be positive")

	// Account errors
	ErrAccountNotFound      = kindError(ErrNotFound, "account not found")
	ErrAccountClosed        = kindError(ErrInvalidState, "account is closed")
	ErrAccountAlreadyClosed = kindError(ErrInvalidState, "account is already closed")
	ErrPositiveBalance      = kindError(ErrInvalidState, "account has a positive balance")
	ErrInsufficientFunds    = kindError(ErrInvalidState, "insufficient funds")
	ErrConversionFailed     = kindError(ErrInvalidState, "currency conversion failed")
	ErrNegativeInterestRate = kindError(ErrInvalidArgument, "interest rate must not be negative")
	ErrAccountNotOwned      = kindError(ErrInvalidArgument, "account does not belong to the customer")

	// Transfer errors
	ErrSameAccount         = kindError(ErrInvalidArgument, "cannot transfer to same account")
	ErrInvalidTransaction  = kindError(ErrInvalidArgument, "invalid transaction")
	ErrTransactionNotFound = kindError(ErrNotFound, "transaction not found")
	ErrNotRepeatable       = kindError(ErrInvalidState, "only account to account transfers can be repeated")

	// Currency and exchange errors
	ErrInvalidCurrency  = kindError(ErrInvalidArgument, "invalid currency code")
	ErrCurrencyMismatch = kindError(ErrInvalidArgument, "currency does not match the account currency")
	ErrUndefinedRate    = kindError(ErrNotFound, "exchange rate is not defined")
	ErrRateDisabled     = kindError(ErrInvalidState, "exchange rate is disabled")
	ErrNegativeRate     = kindError(ErrInvalidArgument, "exchange rate must be positive")
	ErrSameCurrency     = kindError(ErrInvalidArgument, "currencies must differ")
	ErrAlreadyDisabled  = kindError(ErrInvalidState, "exchange rate is already disabled")
	ErrNotDisabled      = kindError(ErrInvalidState, "exchange rate is not disabled")

	// Capital and device errors
	ErrInsufficientCapital     = kindError(ErrInvalidState, "not enough capital")
	ErrDeviceInactive          = kindError(ErrInvalidState, "device is deactivated")
	ErrDeviceNotFound          = kindError(ErrNotFound, "device not found")
	ErrInsufficientDeviceFunds = kindError(ErrInvalidState, "not enough money in the device")
	ErrUnsupportedDevice       = kindError(ErrInvalidArgument, "operation is not supported by the device")

	// Customer errors
	ErrCustomerNotFound = kindError(ErrNotFound, "customer not found")
	ErrInvalidName      = kindError(ErrInvalidArgument, "first and last name are required")
	ErrMissingContact   = kindError(ErrInvalidState, "contact channel is not set for the customer")
	ErrInvalidChannel   = kindError(ErrInvalidArgument, "unknown notification channel")

	// Card errors
	ErrCardNotFound    = kindError(ErrNotFound, "card not found")
	ErrInvalidCardType = kindError(ErrInvalidArgument, "card type must be DEBIT or CREDIT")
	ErrInvalidPIN      = kindError(ErrUnauthorized, "invalid pin")
	ErrInvalidLimit    = kindError(ErrInvalidArgument, "limit must be positive")
	ErrLimitExceeded   = kindError(ErrPolicyViolation, "purchase amount exceeds limit")

	// Invoice and appointment errors
	ErrInvoiceStatus        = kindError(ErrInvalidState, "invoice status does not allow this operation")
	ErrInvalidTaxPercentage = kindError(ErrInvalidArgument, "tax percentage must not be negative")
	ErrAppointmentCancelled = kindError(ErrInvalidState, "appointment is already cancelled")
	ErrAppointmentNotFound  = kindError(ErrNotFound, "appointment not found")
	ErrInvoiceNotFound      = kindError(ErrNotFound, "invoice not found")
)

// ErrorKind returns a low-cardinality label for err, suitable for metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPolicyViolation):
		return "policy_violation"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal"
	}
}
