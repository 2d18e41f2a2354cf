// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ListSuggestedCategoriesInput represents the input for listing suggested categories.
// A nil Type lists the sets for both types.
type ListSuggestedCategoriesInput struct {
	Type *entity.TransactionType
}

// SuggestedCategorySet is the suggested set for one transaction type.
type SuggestedCategorySet struct {
	Type       entity.TransactionType
	Categories []string
}

// ListSuggestedCategoriesOutput represents the output of listing suggested categories.
type ListSuggestedCategoriesOutput struct {
	Sets    []SuggestedCategorySet
	Palette []string
}

// ListSuggestedCategoriesUseCase returns the suggested category names and chart palette.
type ListSuggestedCategoriesUseCase struct{}

// NewListSuggestedCategoriesUseCase creates a new ListSuggestedCategoriesUseCase instance.
func NewListSuggestedCategoriesUseCase() *ListSuggestedCategoriesUseCase {
	return &ListSuggestedCategoriesUseCase{}
}

// Execute lists the suggested categories.
func (uc *ListSuggestedCategoriesUseCase) Execute(_ context.Context, input ListSuggestedCategoriesInput) (*ListSuggestedCategoriesOutput, error) {
	types := []entity.TransactionType{entity.TransactionTypeExpense, entity.TransactionTypeIncome}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidCategoryType,
				"type must be 'expense' or 'income'",
				domainerror.ErrInvalidCategoryType,
			)
		}
		types = []entity.TransactionType{*input.Type}
	}

	output := &ListSuggestedCategoriesOutput{
		Sets:    make([]SuggestedCategorySet, 0, len(types)),
		Palette: append([]string(nil), entity.ChartPalette...),
	}
	for _, t := range types {
		output.Sets = append(output.Sets, SuggestedCategorySet{
			Type:       t,
			Categories: entity.SuggestedCategories(t),
		})
	}

	return output, nil
}
