package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	bulkDelete    *transaction.BulkDeleteTransactionsUseCase
	bulkCategory  *transaction.BulkCategorizeTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	bulkDelete *transaction.BulkDeleteTransactionsUseCase,
	bulkCategory *transaction.BulkCategorizeTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		bulkDelete:    bulkDelete,
		bulkCategory:  bulkCategory,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input, ok := listInput(ctx, userID)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	req, ok := bindJSON[dto.CreateTransactionRequest](ctx, string(domainerror.ErrCodeMissingTransactionFields))
	if !ok {
		return
	}

	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		invalidDate(ctx)
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:   userID,
		Amount:   req.Amount,
		Category: req.Category,
		Type:     entity.TransactionType(req.Type),
		Date:     date,
		Notes:    req.Notes,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	req, ok := bindJSON[dto.UpdateTransactionRequest](ctx, string(domainerror.ErrCodeNoFieldsToUpdate))
	if !ok {
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        req.Amount,
		Category:      req.Category,
		Notes:         req.Notes,
	}

	if req.Date != nil {
		date, err := time.Parse(dto.DateLayout, *req.Date)
		if err != nil {
			invalidDate(ctx)
			return
		}
		input.Date = &date
	}

	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// BulkDelete handles POST /transactions/bulk-delete requests.
func (c *TransactionController) BulkDelete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	req, ok := bindJSON[dto.BulkDeleteTransactionsRequest](ctx, string(domainerror.ErrCodeEmptyTransactionIDs))
	if !ok {
		return
	}
	ids, ok := parseTransactionIDs(ctx, req.IDs)
	if !ok {
		return
	}

	output, err := c.bulkDelete.Execute(ctx.Request.Context(), transaction.BulkDeleteTransactionsInput{
		TransactionIDs: ids,
		UserID:         userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BulkDeleteTransactionsResponse{DeletedCount: output.DeletedCount})
}

// BulkCategorize handles POST /transactions/bulk-categorize requests.
func (c *TransactionController) BulkCategorize(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	req, ok := bindJSON[dto.BulkCategorizeTransactionsRequest](ctx, string(domainerror.ErrCodeMissingTransactionFields))
	if !ok {
		return
	}
	ids, ok := parseTransactionIDs(ctx, req.IDs)
	if !ok {
		return
	}

	output, err := c.bulkCategory.Execute(ctx.Request.Context(), transaction.BulkCategorizeTransactionsInput{
		TransactionIDs: ids,
		Category:       req.Category,
		UserID:         userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BulkCategorizeTransactionsResponse{UpdatedCount: output.UpdatedCount})
}

var transactionErrorStatus = map[domainerror.TransactionErrorCode]int{
	domainerror.ErrCodeTransactionNotFound:        http.StatusNotFound,
	domainerror.ErrCodeInvalidTransactionType:     http.StatusBadRequest,
	domainerror.ErrCodeInvalidTransactionDate:     http.StatusBadRequest,
	domainerror.ErrCodeInvalidTransactionAmount:   http.StatusBadRequest,
	domainerror.ErrCodeInvalidTransactionCategory: http.StatusBadRequest,
	domainerror.ErrCodeNotesTooLong:               http.StatusBadRequest,
	domainerror.ErrCodeMissingTransactionFields:   http.StatusBadRequest,
	domainerror.ErrCodeNoFieldsToUpdate:           http.StatusBadRequest,
	domainerror.ErrCodeInvalidDateRange:           http.StatusBadRequest,
	domainerror.ErrCodeEmptyTransactionIDs:        http.StatusBadRequest,
	domainerror.ErrCodeTooManyTransactionIDs:      http.StatusBadRequest,
}

func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		slog.Error("Unexpected transaction error", "path", ctx.FullPath(), "error", err)
		internalError(ctx)
		return
	}

	status, ok := transactionErrorStatus[txnErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: txnErr.Message,
		Code:  string(txnErr.Code),
	})
}

const allTypesFilter = "all"

// listInput collects the list filters. Unparseable page and limit values fall
// back to the defaults.
func listInput(ctx *gin.Context, userID uuid.UUID) (transaction.ListTransactionsInput, bool) {
	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	start, end, ok := parseDateRange(ctx)
	if !ok {
		return input, false
	}
	input.StartDate, input.EndDate = start, end

	// "all" and an empty value both mean no type filter.
	if v := ctx.Query("type"); v != "" && v != allTypesFilter {
		t := entity.TransactionType(v)
		input.Type = &t
	}
	input.Page, _ = strconv.Atoi(ctx.Query("page"))
	input.Limit, _ = strconv.Atoi(ctx.Query("limit"))

	return input, true
}

// requireUserID reads the authenticated user, answering 401 when absent.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
	}
	return userID, ok
}

func parseTransactionID(ctx *gin.Context) (uuid.UUID, bool) {
	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return uuid.Nil, false
	}
	return transactionID, true
}

func parseTransactionIDs(ctx *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transaction ID format: " + s,
			})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// parseDateRange reads the optional start_date and end_date query parameters.
func parseDateRange(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	var start, end *time.Time

	if s := ctx.Query("start_date"); s != "" {
		d, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			invalidDate(ctx)
			return nil, nil, false
		}
		start = &d
	}
	if s := ctx.Query("end_date"); s != "" {
		d, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			invalidDate(ctx)
			return nil, nil, false
		}
		end = &d
	}

	return start, end, true
}

func invalidDate(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid date format. Use YYYY-MM-DD",
		Code:  string(domainerror.ErrCodeInvalidTransactionDate),
	})
}
