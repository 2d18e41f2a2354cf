package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found for the acting user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionAmount is returned when the amount is missing, malformed or not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionDate is returned when the date is not a YYYY-MM-DD calendar date.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionType is returned when the type is neither expense nor income.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionCategory is returned when the category is empty or too long.
	ErrInvalidTransactionCategory = errors.New("invalid transaction category")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrNoFieldsToUpdate is returned when an update carries no field changes.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrInvalidDateRange is returned when a filter start date is after its end date.
	ErrInvalidDateRange = errors.New("start date must not be after end date")

	// ErrEmptyTransactionIDs is returned when a bulk operation names no transactions.
	ErrEmptyTransactionIDs = errors.New("transaction IDs list cannot be empty")

	// ErrTooManyTransactionIDs is returned when a bulk operation exceeds the batch limit.
	ErrTooManyTransactionIDs = errors.New("too many transaction IDs")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

// Transaction error codes.
const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionAmount   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate     TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionType     TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionCategory TransactionErrorCode = "TXN-010004"
	ErrCodeNotesTooLong               TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields   TransactionErrorCode = "TXN-010006"
	ErrCodeNoFieldsToUpdate           TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidDateRange           TransactionErrorCode = "TXN-010008"
	ErrCodeEmptyTransactionIDs        TransactionErrorCode = "TXN-010009"
	ErrCodeTooManyTransactionIDs      TransactionErrorCode = "TXN-010010"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
)

// TransactionError is a coded error raised by the transaction use cases.
type TransactionError = Coded[TransactionErrorCode]

// NewTransactionError creates a new TransactionError.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return newCoded(code, message, err)
}
