package valueobject

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func tx(amount string, category string, txType entity.TransactionType) *entity.Transaction {
	return &entity.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Type:     txType,
	}
}

func randomTransactions(r *rand.Rand, n int) []*entity.Transaction {
	expense := entity.SuggestedCategories(entity.TransactionTypeExpense)
	income := entity.SuggestedCategories(entity.TransactionTypeIncome)

	out := make([]*entity.Transaction, 0, n)
	for i := 0; i < n; i++ {
		cents := decimal.NewFromInt(r.Int63n(1_000_000) + 1).Shift(-2)
		if r.Intn(3) == 0 {
			out = append(out, &entity.Transaction{Amount: cents, Category: income[r.Intn(len(income))], Type: entity.TransactionTypeIncome})
			continue
		}
		out = append(out, &entity.Transaction{Amount: cents, Category: expense[r.Intn(len(expense))], Type: entity.TransactionTypeExpense})
	}
	return out
}

func TestSummarize_Scenario(t *testing.T) {
	summary := Summarize([]*entity.Transaction{
		tx("50", "Food", entity.TransactionTypeExpense),
		tx("30", "Food", entity.TransactionTypeExpense),
		tx("1000", "Salary", entity.TransactionTypeIncome),
	})

	if !summary.TotalIncome.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected total income 1000, got %s", summary.TotalIncome)
	}
	if !summary.TotalExpenses.Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected total expenses 80, got %s", summary.TotalExpenses)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(920)) {
		t.Errorf("expected balance 920, got %s", summary.Balance)
	}
	if len(summary.CategorySummary) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(summary.CategorySummary))
	}

	food := summary.CategorySummary[0]
	if food.Type != entity.TransactionTypeExpense || food.Category != "Food" {
		t.Fatalf("expected Food expense first, got %s/%s", food.Category, food.Type)
	}
	if !food.Amount.Equal(decimal.NewFromInt(80)) || food.Count != 2 || food.Percentage != 100 {
		t.Errorf("unexpected Food group: amount=%s count=%d pct=%v", food.Amount, food.Count, food.Percentage)
	}

	salary := summary.CategorySummary[1]
	if salary.Type != entity.TransactionTypeIncome || salary.Category != "Salary" {
		t.Fatalf("expected Salary income second, got %s/%s", salary.Category, salary.Type)
	}
	if !salary.Amount.Equal(decimal.NewFromInt(1000)) || salary.Count != 1 || salary.Percentage != 100 {
		t.Errorf("unexpected Salary group: amount=%s count=%d pct=%v", salary.Amount, salary.Count, salary.Percentage)
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	for name, input := range map[string][]*entity.Transaction{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			summary := Summarize(input)

			if !summary.TotalIncome.IsZero() || !summary.TotalExpenses.IsZero() || !summary.Balance.IsZero() {
				t.Errorf("expected zero totals, got %s/%s/%s", summary.TotalIncome, summary.TotalExpenses, summary.Balance)
			}
			if summary.CategorySummary == nil {
				t.Error("expected empty, non-nil breakdown")
			}
			if len(summary.CategorySummary) != 0 {
				t.Errorf("expected no groups, got %d", len(summary.CategorySummary))
			}
		})
	}
}

func TestSummarize_ZeroDivisionSafety(t *testing.T) {
	summary := Summarize([]*entity.Transaction{
		tx("1200", "Salary", entity.TransactionTypeIncome),
		tx("0", "Food", entity.TransactionTypeExpense),
	})

	for _, c := range summary.ByType(entity.TransactionTypeExpense) {
		if c.Percentage != 0 {
			t.Errorf("expected 0%% for %s with zero expense total, got %v", c.Category, c.Percentage)
		}
	}
}

func TestSummarize_IgnoresUnknownType(t *testing.T) {
	summary := Summarize([]*entity.Transaction{
		tx("10", "Food", entity.TransactionTypeExpense),
		tx("99", "Savings", entity.TransactionType("transfer")),
		nil,
	})

	if !summary.TotalExpenses.Equal(decimal.NewFromInt(10)) || !summary.TotalIncome.IsZero() {
		t.Errorf("unknown type must not contribute to totals, got income=%s expenses=%s", summary.TotalIncome, summary.TotalExpenses)
	}
	if len(summary.CategorySummary) != 1 {
		t.Errorf("expected unknown type to be excluded from breakdown, got %d groups", len(summary.CategorySummary))
	}
}

func TestSummarize_SameCategoryDifferentTypes(t *testing.T) {
	summary := Summarize([]*entity.Transaction{
		tx("20", "Other", entity.TransactionTypeExpense),
		tx("40", "Other", entity.TransactionTypeIncome),
	})

	if len(summary.CategorySummary) != 2 {
		t.Fatalf("expected one group per (type, category), got %d", len(summary.CategorySummary))
	}
	for _, c := range summary.CategorySummary {
		if c.Percentage != 100 {
			t.Errorf("expected %s/%s to hold 100%% of its type, got %v", c.Category, c.Type, c.Percentage)
		}
	}
}

func TestSummarize_Ordering(t *testing.T) {
	summary := Summarize([]*entity.Transaction{
		tx("5", "Gift", entity.TransactionTypeIncome),
		tx("10", "Bills", entity.TransactionTypeExpense),
		tx("30", "Shopping", entity.TransactionTypeExpense),
		tx("10", "Avocados", entity.TransactionTypeExpense),
	})

	var got []string
	for _, c := range summary.CategorySummary {
		got = append(got, c.Category)
	}
	expected := []string{"Shopping", "Avocados", "Bills", "Gift"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected order %v, got %v", expected, got)
	}
}

func TestSummarize_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		input := randomTransactions(r, r.Intn(60))
		summary := Summarize(input)

		if !summary.Balance.Equal(summary.TotalIncome.Sub(summary.TotalExpenses)) {
			t.Fatalf("balance identity violated: %s != %s - %s", summary.Balance, summary.TotalIncome, summary.TotalExpenses)
		}

		if summary.TransactionCount() != len(input) {
			t.Fatalf("count conservation violated: %d != %d", summary.TransactionCount(), len(input))
		}

		seen := make(map[string]bool)
		for _, c := range summary.CategorySummary {
			key := string(c.Type) + "/" + c.Category
			if seen[key] {
				t.Fatalf("duplicate group %s", key)
			}
			seen[key] = true
		}

		for _, txType := range []entity.TransactionType{entity.TransactionTypeExpense, entity.TransactionTypeIncome} {
			total := summary.TotalExpenses
			if txType == entity.TransactionTypeIncome {
				total = summary.TotalIncome
			}

			sum := decimal.Zero
			pctSum := 0.0
			groups := summary.ByType(txType)
			for _, c := range groups {
				if c.Percentage < 0 || c.Percentage > 100 {
					t.Fatalf("percentage out of bounds: %v", c.Percentage)
				}
				sum = sum.Add(c.Amount)
				pctSum += c.Percentage
			}

			if !sum.Equal(total) {
				t.Fatalf("partition completeness violated for %s: %s != %s", txType, sum, total)
			}
			if !total.IsZero() && math.Abs(pctSum-100) > 1e-6 {
				t.Fatalf("percentages for %s sum to %v", txType, pctSum)
			}
		}
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	input := randomTransactions(r, 40)

	first := Summarize(input)
	second := Summarize(input)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical input")
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	input := randomTransactions(r, 30)

	reversed := make([]*entity.Transaction, len(input))
	for i, item := range input {
		reversed[len(input)-1-i] = item
	}

	a := Summarize(input)
	b := Summarize(reversed)

	if !a.Balance.Equal(b.Balance) || len(a.CategorySummary) != len(b.CategorySummary) {
		t.Fatal("input order changed the result")
	}
	for i := range a.CategorySummary {
		if a.CategorySummary[i].Category != b.CategorySummary[i].Category ||
			!a.CategorySummary[i].Amount.Equal(b.CategorySummary[i].Amount) {
			t.Errorf("entry %d differs: %+v vs %+v", i, a.CategorySummary[i], b.CategorySummary[i])
		}
	}
}
