package dto

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/category"
)

// CategorySetResponse lists the suggested categories of one transaction type.
type CategorySetResponse struct {
	Type       string   `json:"type"`
	Categories []string `json:"categories"`
}

// CategoryListResponse represents the response for listing suggested categories.
type CategoryListResponse struct {
	Sets    []CategorySetResponse `json:"sets"`
	Palette []string              `json:"palette"`
}

// SuggestCategoryRequest represents the request body for an AI category suggestion.
type SuggestCategoryRequest struct {
	Type   string          `json:"type" binding:"required"`
	Notes  string          `json:"notes" binding:"required,max=1000"`
	Amount decimal.Decimal `json:"amount"`
}

// SuggestCategoryResponse represents the suggested category.
type SuggestCategoryResponse struct {
	Category   string  `json:"category"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// ToCategoryListResponse converts a ListSuggestedCategoriesOutput to a CategoryListResponse DTO.
func ToCategoryListResponse(output *category.ListSuggestedCategoriesOutput) CategoryListResponse {
	sets := make([]CategorySetResponse, len(output.Sets))
	for i, s := range output.Sets {
		sets[i] = CategorySetResponse{
			Type:       string(s.Type),
			Categories: s.Categories,
		}
	}
	return CategoryListResponse{
		Sets:    sets,
		Palette: output.Palette,
	}
}

// ToSuggestCategoryResponse converts a SuggestCategoryOutput to a SuggestCategoryResponse DTO.
func ToSuggestCategoryResponse(output *category.SuggestCategoryOutput) SuggestCategoryResponse {
	return SuggestCategoryResponse{
		Category:   output.Category,
		Source:     output.Source,
		Confidence: output.Confidence,
		Reasoning:  output.Reasoning,
	}
}
