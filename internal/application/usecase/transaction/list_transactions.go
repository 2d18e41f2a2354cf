package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListTransactionsInput filters the listing. A nil Type lists both types.
type ListTransactionsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Search    string
	Page      int
	Limit     int
}

// page clamps the requested page into the accepted bounds.
func (in ListTransactionsInput) page() adapter.TransactionPagination {
	p := adapter.TransactionPagination{Page: max(in.Page, 1), Limit: in.Limit}
	switch {
	case p.Limit < 1:
		p.Limit = defaultPageLimit
	case p.Limit > maxPageLimit:
		p.Limit = maxPageLimit
	}
	return p
}

// PaginationOutput describes the returned page.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// TotalsOutput sums the whole filtered set, not only the returned page.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents one page of transactions plus totals.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles listing a user's transactions.
type ListTransactionsUseCase struct {
	repo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(repo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{repo: repo}
}

// Execute lists newest first. The listing fails when the totals cannot be
// computed, so a response never carries a page without its totals.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
	}
	if err := ValidateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	filter := adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Type:      input.Type,
		Search:    strings.TrimSpace(input.Search),
	}

	result, err := uc.repo.FindByFilter(ctx, filter, input.page())
	if err != nil {
		return nil, err
	}

	totals, err := uc.repo.GetTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	items := make([]*TransactionOutput, 0, len(result.Transactions))
	for _, t := range result.Transactions {
		items = append(items, toTransactionOutput(t))
	}

	return &ListTransactionsOutput{
		Transactions: items,
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Totals: TotalsOutput{
			IncomeTotal:  totals.IncomeTotal,
			ExpenseTotal: totals.ExpenseTotal,
			NetTotal:     totals.NetTotal,
		},
	}, nil
}
