package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategorySuggestionRequest describes a transaction that needs a category.
type CategorySuggestionRequest struct {
	Type       entity.TransactionType
	Notes      string
	Amount     decimal.Decimal
	Candidates []string
}

// CategorySuggestion is the category picked by the AI provider.
type CategorySuggestion struct {
	Category   string
	Confidence float64
	Reasoning  string
}

// CategorySuggester defines the interface for AI category suggestions.
type CategorySuggester interface {
	// Suggest picks one of request.Candidates for the described transaction.
	Suggest(ctx context.Context, request CategorySuggestionRequest) (*CategorySuggestion, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
