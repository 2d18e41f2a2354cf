// Package valueobject contains immutable values derived from domain entities.
package valueobject

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CategorySummary aggregates the transactions sharing a (type, category) pair.
// Percentage is the group's share of its type total, 0 when that total is zero.
type CategorySummary struct {
	Type       entity.TransactionType
	Category   string
	Amount     decimal.Decimal
	Count      int
	Percentage float64
}

// Summary is the financial snapshot of a set of transactions.
type Summary struct {
	TotalIncome     decimal.Decimal
	TotalExpenses   decimal.Decimal
	Balance         decimal.Decimal
	CategorySummary []CategorySummary
}

type groupKey struct {
	txType   entity.TransactionType
	category string
}

// Summarize aggregates transactions into totals and a per-(type, category) breakdown.
//
// Transactions with an unrecognized type are ignored. The input order does not
// affect the result; breakdown entries are ordered expense first, then by amount
// descending, then by category name. Summarize never fails and does not retain
// or modify its input.
func Summarize(transactions []*entity.Transaction) Summary {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	groups := make(map[groupKey]*CategorySummary)

	for _, tx := range transactions {
		if tx == nil {
			continue
		}

		switch tx.Type {
		case entity.TransactionTypeIncome:
			totalIncome = totalIncome.Add(tx.Amount)
		case entity.TransactionTypeExpense:
			totalExpenses = totalExpenses.Add(tx.Amount)
		default:
			continue
		}

		key := groupKey{txType: tx.Type, category: tx.Category}
		group, ok := groups[key]
		if !ok {
			group = &CategorySummary{
				Type:     tx.Type,
				Category: tx.Category,
				Amount:   decimal.Zero,
			}
			groups[key] = group
		}
		group.Amount = group.Amount.Add(tx.Amount)
		group.Count++
	}

	breakdown := make([]CategorySummary, 0, len(groups))
	for _, group := range groups {
		typeTotal := totalIncome
		if group.Type == entity.TransactionTypeExpense {
			typeTotal = totalExpenses
		}
		group.Percentage = percentageOf(group.Amount, typeTotal)
		breakdown = append(breakdown, *group)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		a, b := breakdown[i], breakdown[j]
		if a.Type != b.Type {
			return a.Type == entity.TransactionTypeExpense
		}
		if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
			return cmp > 0
		}
		return a.Category < b.Category
	})

	return Summary{
		TotalIncome:     totalIncome,
		TotalExpenses:   totalExpenses,
		Balance:         totalIncome.Sub(totalExpenses),
		CategorySummary: breakdown,
	}
}

// percentageOf returns 100 * part / total, or 0 when total is zero.
func percentageOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Mul(hundred).Div(total).Float64()
	return pct
}

// ByType returns the breakdown entries of one transaction type, keeping order.
func (s Summary) ByType(transactionType entity.TransactionType) []CategorySummary {
	out := make([]CategorySummary, 0, len(s.CategorySummary))
	for _, c := range s.CategorySummary {
		if c.Type == transactionType {
			out = append(out, c)
		}
	}
	return out
}

// TransactionCount returns the number of transactions counted in the breakdown.
func (s Summary) TransactionCount() int {
	n := 0
	for _, c := range s.CategorySummary {
		n += c.Count
	}
	return n
}
