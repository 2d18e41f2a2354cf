package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// bindJSON decodes and validates the request body into T. On failure it
// writes a 400 with code and reports false.
func bindJSON[T any](ctx *gin.Context, code string) (T, bool) {
	var req T
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    code,
			Details: err.Error(),
		})
		return req, false
	}
	return req, true
}

// internalError hides the cause behind a generic 500.
func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
