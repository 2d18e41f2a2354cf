package dto

import (
	"fmt"
	"math"
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CategorySummaryResponse represents one (type, category) group of the breakdown.
type CategorySummaryResponse struct {
	Type       string  `json:"type"`
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Amount     string  `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// SummaryResponse represents the financial summary in API responses.
type SummaryResponse struct {
	TotalIncome      string                    `json:"total_income"`
	TotalExpenses    string                    `json:"total_expenses"`
	Balance          string                    `json:"balance"`
	TransactionCount int                       `json:"transaction_count"`
	CategorySummary  []CategorySummaryResponse `json:"category_summary"`
	GeneratedAt      time.Time                 `json:"generated_at"`
}

// CategoryLabel composes the display label of a breakdown entry.
func CategoryLabel(category string, transactionType entity.TransactionType) string {
	return fmt.Sprintf("%s (%s)", category, transactionType)
}

// roundPercentage rounds a percentage to two decimal places.
func roundPercentage(p float64) float64 {
	return math.Round(p*100) / 100
}

// ToSummaryResponse converts a GetSummaryOutput to a SummaryResponse DTO.
// Chart colors are assigned in breakdown order.
func ToSummaryResponse(output *summary.GetSummaryOutput) SummaryResponse {
	return SummaryResponse{
		TotalIncome:      money(output.Summary.TotalIncome),
		TotalExpenses:    money(output.Summary.TotalExpenses),
		Balance:          money(output.Summary.Balance),
		TransactionCount: output.TransactionCount,
		CategorySummary:  toCategorySummaryResponses(output.Summary.CategorySummary),
		GeneratedAt:      output.GeneratedAt,
	}
}

func toCategorySummaryResponses(groups []valueobject.CategorySummary) []CategorySummaryResponse {
	out := make([]CategorySummaryResponse, len(groups))
	for i, g := range groups {
		out[i] = CategorySummaryResponse{
			Type:       string(g.Type),
			Category:   g.Category,
			Label:      CategoryLabel(g.Category, g.Type),
			Amount:     money(g.Amount),
			Count:      g.Count,
			Percentage: roundPercentage(g.Percentage),
			Color:      entity.PaletteColor(i),
		}
	}
	return out
}
