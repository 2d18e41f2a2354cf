package entity

// DefaultCategory is the fallback category present in every suggested set.
const DefaultCategory = "Other"

var expenseCategories = []string{
	"Food",
	"Transport",
	"Entertainment",
	"Bills",
	"Shopping",
	"Health",
	"Education",
	DefaultCategory,
}

var incomeCategories = []string{
	"Salary",
	"Business",
	"Investment",
	"Gift",
	DefaultCategory,
}

// ChartPalette is the ordered set of colors assigned to breakdown entries.
var ChartPalette = []string{
	"#3B82F6",
	"#EF4444",
	"#10B981",
	"#F59E0B",
	"#8B5CF6",
	"#EC4899",
	"#14B8A6",
	"#F97316",
	"#6366F1",
	"#84CC16",
}

// SuggestedCategories returns the suggested category names for a transaction type.
// Categories are free-form; the suggested set only guides input.
func SuggestedCategories(transactionType TransactionType) []string {
	var src []string
	switch transactionType {
	case TransactionTypeExpense:
		src = expenseCategories
	case TransactionTypeIncome:
		src = incomeCategories
	default:
		return []string{}
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsSuggestedCategory reports whether name is in the suggested set for the type.
func IsSuggestedCategory(transactionType TransactionType, name string) bool {
	for _, c := range SuggestedCategories(transactionType) {
		if c == name {
			return true
		}
	}
	return false
}

// PaletteColor returns the chart color for the i-th breakdown entry.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return ChartPalette[i%len(ChartPalette)]
}
