package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

const newestFirst = "date DESC, created_at DESC"

// likeEscaper escapes the LIKE wildcards so a search term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new TransactionRepository backed by db.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts the transaction.
func (r *transactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(t)).Error
}

// FindByID only sees rows owned by userID; soft-deleted rows are excluded by gorm.
func (r *transactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	var row model.TransactionModel
	err := r.db.WithContext(ctx).Scopes(ownedBy(userID)).Where("id = ?", id).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domainerror.ErrTransactionNotFound
	case err != nil:
		return nil, err
	}
	return row.ToEntity(), nil
}

// FindByFilter returns one page of the user's transactions, newest first.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, page adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = 20
	}

	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	var rows []model.TransactionModel
	err := r.filtered(ctx, filter).
		Order(newestFirst).
		Offset((page.Page - 1) * page.Limit).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &entity.TransactionListResult{
		Transactions: toEntities(rows),
		Total:        total,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   int((total + int64(page.Limit) - 1) / int64(page.Limit)),
	}, nil
}

// FindAll returns every transaction matching the filter, newest first.
func (r *transactionRepository) FindAll(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var rows []model.TransactionModel
	if err := r.filtered(ctx, filter).Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return toEntities(rows), nil
}

// GetTotals sums per type in a single grouped query.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	var sums []struct {
		Type  string
		Total decimal.Decimal
	}
	err := r.filtered(ctx, filter).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&sums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions: %w", err)
	}

	totals := &entity.TransactionTotals{}
	for _, s := range sums {
		switch entity.TransactionType(s.Type) {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = s.Total
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = s.Total
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

// Update writes the mutable columns only, so ownership and creation time
// cannot change through it.
func (r *transactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	row := model.TransactionFromEntity(t)
	res := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Scopes(ownedBy(t.UserID)).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"amount":     row.Amount,
			"category":   row.Category,
			"type":       row.Type,
			"date":       row.Date,
			"notes":      row.Notes,
			"updated_at": row.UpdatedAt,
		})
	return affectedOne(res)
}

// Delete soft-deletes one of the user's transactions.
func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Scopes(ownedBy(userID)).Where("id = ?", id).Delete(&model.TransactionModel{})
	return affectedOne(res)
}

// BulkDelete soft-deletes every id, or none of them when any id is missing
// or owned by someone else.
func (r *transactionRepository) BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAllOwned(tx, userID, ids); err != nil {
			return err
		}
		res := tx.Scopes(ownedBy(userID)).Where("id IN ?", ids).Delete(&model.TransactionModel{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// BulkUpdateCategory relabels every id under the same all-or-nothing rule as BulkDelete.
func (r *transactionRepository) BulkUpdateCategory(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, category string) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAllOwned(tx, userID, ids); err != nil {
			return err
		}
		res := tx.Model(&model.TransactionModel{}).
			Scopes(ownedBy(userID)).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"category":   category,
				"updated_at": time.Now().UTC(),
			})
		updated = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// requireAllOwned fails with ErrTransactionNotFound unless every id is a live
// row of userID. ids must be distinct.
func requireAllOwned(tx *gorm.DB, userID uuid.UUID, ids []uuid.UUID) error {
	var count int64
	err := tx.Model(&model.TransactionModel{}).
		Scopes(ownedBy(userID)).
		Where("id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to verify transactions: %w", err)
	}
	if count != int64(len(ids)) {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) filtered(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.TransactionModel{}).Scopes(matching(filter))
}

func ownedBy(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// matching applies the owner and every optional criterion of filter.
func matching(filter adapter.TransactionFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(ownedBy(filter.UserID))
		if filter.StartDate != nil {
			db = db.Where("date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			db = db.Where("date <= ?", *filter.EndDate)
		}
		if filter.Type != nil {
			db = db.Where("type = ?", string(*filter.Type))
		}
		if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
			like := "%" + likeEscaper.Replace(search) + "%"
			db = db.Where(`(LOWER(category) LIKE ? ESCAPE '\' OR LOWER(notes) LIKE ? ESCAPE '\')`, like, like)
		}
		return db
	}
}

func affectedOne(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func toEntities(rows []model.TransactionModel) []*entity.Transaction {
	out := make([]*entity.Transaction, len(rows))
	for i := range rows {
		out[i] = rows[i].ToEntity()
	}
	return out
}
