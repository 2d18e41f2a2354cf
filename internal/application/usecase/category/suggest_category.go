package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Suggestion sources.
const (
	SourceAI      = "ai"
	SourceDefault = "default"
)

// SuggestCategoryInput represents the input for an AI category suggestion.
type SuggestCategoryInput struct {
	UserID uuid.UUID
	Type   entity.TransactionType
	Notes  string
	Amount decimal.Decimal
}

// SuggestCategoryOutput represents the suggested category.
type SuggestCategoryOutput struct {
	Category   string
	Source     string
	Confidence float64
	Reasoning  string
}

// SuggestCategoryUseCase asks the AI provider to pick a category from the suggested set.
type SuggestCategoryUseCase struct {
	suggester adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(suggester adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		suggester: suggester,
	}
}

// Execute returns the AI suggestion, or the default category when the AI is
// unavailable, fails, or answers outside the suggested set.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if !input.Type.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	notes := strings.TrimSpace(input.Notes)
	if notes == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"notes are required to suggest a category",
			nil,
		)
	}

	fallback := &SuggestCategoryOutput{
		Category: entity.DefaultCategory,
		Source:   SourceDefault,
	}

	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return fallback, nil
	}

	suggestion, err := uc.suggester.Suggest(ctx, adapter.CategorySuggestionRequest{
		Type:       input.Type,
		Notes:      notes,
		Amount:     input.Amount,
		Candidates: entity.SuggestedCategories(input.Type),
	})
	if err != nil {
		slog.Warn("AI category suggestion failed", "userID", input.UserID, "error", err)
		return fallback, nil
	}

	if !entity.IsSuggestedCategory(input.Type, suggestion.Category) {
		slog.Debug("AI suggested category outside the suggested set",
			"userID", input.UserID,
			"category", suggestion.Category,
		)
		return fallback, nil
	}

	return &SuggestCategoryOutput{
		Category:   suggestion.Category,
		Source:     SourceAI,
		Confidence: suggestion.Confidence,
		Reasoning:  suggestion.Reasoning,
	}, nil
}
