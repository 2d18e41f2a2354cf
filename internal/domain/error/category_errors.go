package error

import "errors"

// ErrInvalidCategoryType is returned for an unknown category set type.
var ErrInvalidCategoryType = errors.New("invalid category type")

// CategoryErrorCode is CAT-XXYYYY.
type CategoryErrorCode string

// Category error codes.
const (
	ErrCodeInvalidCategoryType      CategoryErrorCode = "CAT-010001"
	ErrCodeMissingCategoryFields    CategoryErrorCode = "CAT-010002"
	ErrCodeCategorySuggestionFailed CategoryErrorCode = "CAT-020001"
)

// CategoryError is a coded error raised by the category use cases.
type CategoryError = Coded[CategoryErrorCode]

// NewCategoryError creates a new CategoryError.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return newCoded(code, message, err)
}
