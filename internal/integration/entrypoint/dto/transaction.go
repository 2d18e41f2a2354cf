package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
)

// DateLayout is the wire format of transaction dates.
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents the request body for transaction creation.
// Amount accepts a JSON number or a decimal string.
type CreateTransactionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category" binding:"required"`
	Type     string          `json:"type" binding:"required"`
	Date     string          `json:"date" binding:"required"`
	Notes    string          `json:"notes,omitempty"`
}

// UpdateTransactionRequest represents the request body for a partial transaction update.
type UpdateTransactionRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Category *string          `json:"category,omitempty"`
	Type     *string          `json:"type,omitempty"`
	Date     *string          `json:"date,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

// BulkDeleteTransactionsRequest represents the request body for bulk transaction deletion.
type BulkDeleteTransactionsRequest struct {
	IDs []string `json:"ids"`
}

// BulkCategorizeTransactionsRequest represents the request body for bulk transaction categorization.
type BulkCategorizeTransactionsRequest struct {
	IDs      []string `json:"ids"`
	Category string   `json:"category" binding:"required"`
}

// BulkDeleteTransactionsResponse represents the response for bulk transaction deletion.
type BulkDeleteTransactionsResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// BulkCategorizeTransactionsResponse represents the response for bulk transaction categorization.
type BulkCategorizeTransactionsResponse struct {
	UpdatedCount int64 `json:"updated_count"`
}

// TransactionResponse renders amounts with two decimals and dates as YYYY-MM-DD.
type TransactionResponse struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionPaginationResponse describes the returned page.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse carries the totals of the whole filtered set.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response of GET /transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

const moneyPlaces = 2

// money renders an amount with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:        txn.ID.String(),
		Amount:    money(txn.Amount),
		Category:  txn.Category,
		Type:      string(txn.Type),
		Date:      txn.Date.Format(DateLayout),
		Notes:     txn.Notes,
		CreatedAt: txn.CreatedAt,
		UpdatedAt: txn.UpdatedAt,
	}
}

// ToTransactionListResponse always yields a JSON array, never null.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	resp := TransactionListResponse{
		Transactions: make([]TransactionResponse, 0, len(output.Transactions)),
		Pagination:   TransactionPaginationResponse(output.Pagination),
		Totals: TransactionTotalsResponse{
			IncomeTotal:  money(output.Totals.IncomeTotal),
			ExpenseTotal: money(output.Totals.ExpenseTotal),
			NetTotal:     money(output.Totals.NetTotal),
		},
	}
	for _, txn := range output.Transactions {
		resp.Transactions = append(resp.Transactions, ToTransactionResponse(txn))
	}
	return resp
}
