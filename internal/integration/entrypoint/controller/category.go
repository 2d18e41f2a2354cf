package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase    *category.ListSuggestedCategoriesUseCase
	suggestUseCase *category.SuggestCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listUseCase *category.ListSuggestedCategoriesUseCase, suggestUseCase *category.SuggestCategoryUseCase) *CategoryController {
	return &CategoryController{
		listUseCase:    listUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	input := category.ListSuggestedCategoriesInput{}
	if typeStr := ctx.Query("type"); typeStr != "" {
		t := entity.TransactionType(typeStr)
		input.Type = &t
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output))
}

// Suggest handles POST /categories/suggest requests.
func (c *CategoryController) Suggest(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	req, ok := bindJSON[dto.SuggestCategoryRequest](ctx, string(domainerror.ErrCodeMissingCategoryFields))
	if !ok {
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), category.SuggestCategoryInput{
		UserID: userID,
		Type:   entity.TransactionType(req.Type),
		Notes:  req.Notes,
		Amount: req.Amount,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestCategoryResponse(output))
}

func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) {
		slog.Error("Unexpected category error", "path", ctx.FullPath(), "error", err)
		internalError(ctx)
		return
	}

	status := http.StatusInternalServerError
	switch catErr.Code {
	case domainerror.ErrCodeInvalidCategoryType, domainerror.ErrCodeMissingCategoryFields:
		status = http.StatusBadRequest
	case domainerror.ErrCodeCategorySuggestionFailed:
		status = http.StatusBadGateway
	}
	ctx.JSON(status, dto.ErrorResponse{Error: catErr.Message, Code: string(catErr.Code)})
}
