package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a money movement. It is stored apart
// from the category so that "Food" can exist as both an expense and an income.
type TransactionType string

// Supported transaction types.
const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether t is a supported type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome:
		return true
	}
	return false
}

// Transaction is one recorded money movement. Amount is always positive.
type Transaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Amount    decimal.Decimal
	Category  string
	Type      TransactionType
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	// DeletedAt is set once the transaction is soft-deleted.
	DeletedAt *time.Time
}

// NewTransaction creates a new Transaction with a fresh ID and timestamps.
func NewTransaction(userID uuid.UUID, amount decimal.Decimal, category string, txType TransactionType, date time.Time, notes string) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		Type:      txType,
		Date:      date,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TransactionListResult is one page of a filtered listing.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals sum a filtered set; NetTotal is income minus expenses.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}
