package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// UserController serves the profile of the signed-in user.
type UserController struct {
	currentUser   *auth.GetCurrentUserUseCase
	deleteAccount *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(currentUser *auth.GetCurrentUserUseCase, deleteAccount *auth.DeleteAccountUseCase) *UserController {
	return &UserController{currentUser: currentUser, deleteAccount: deleteAccount}
}

// Me handles GET /users/me. A token for a deleted account answers 404.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	out, err := c.currentUser.Execute(ctx.Request.Context(), auth.GetCurrentUserInput{UserID: userID})
	var authErr *domainerror.AuthError
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, dto.ToUserResponse(out.User))
	case errors.As(err, &authErr) && authErr.Code == domainerror.ErrCodeUserNotFound:
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: authErr.Message, Code: string(authErr.Code)})
	default:
		slog.Error("Failed to load current user", "user_id", userID, "error", err)
		internalError(ctx)
	}
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	req, ok := bindJSON[dto.DeleteAccountRequest](ctx, string(domainerror.ErrCodeMissingFields))
	if !ok {
		return
	}

	_, err := c.deleteAccount.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		c.handleDeleteAccountError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

var deleteAccountErrorStatus = map[domainerror.AuthErrorCode]int{
	domainerror.ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	domainerror.ErrCodeUserNotFound:        http.StatusNotFound,
	domainerror.ErrCodeInvalidConfirmation: http.StatusBadRequest,
	domainerror.ErrCodeMissingFields:       http.StatusBadRequest,
}

func (c *UserController) handleDeleteAccountError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		slog.Error("Failed to delete account", "path", ctx.FullPath(), "error", err)
		internalError(ctx)
		return
	}

	status, ok := deleteAccountErrorStatus[authErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, dto.ErrorResponse{Error: authErr.Message, Code: string(authErr.Code)})
}
