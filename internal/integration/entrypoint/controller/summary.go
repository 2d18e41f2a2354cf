package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	summaryEventName         = "summary"
	heartbeatEventName       = "ping"
	defaultHeartbeatInterval = 25 * time.Second
)

// SummaryController handles summary endpoints.
type SummaryController struct {
	getUseCase        *summary.GetSummaryUseCase
	watchUseCase      *summary.WatchSummaryUseCase
	heartbeatInterval time.Duration
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(getUseCase *summary.GetSummaryUseCase, watchUseCase *summary.WatchSummaryUseCase) *SummaryController {
	return &SummaryController{
		getUseCase:        getUseCase,
		watchUseCase:      watchUseCase,
		heartbeatInterval: defaultHeartbeatInterval,
	}
}

// Get handles GET /summary requests.
func (c *SummaryController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	startDate, endDate, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), summary.GetSummaryInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// Stream handles GET /summary/stream requests with Server-Sent Events.
// It sends the current summary, then a new one after every change to the
// user's transactions, until the client disconnects.
func (c *SummaryController) Stream(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	startDate, endDate, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	updates, err := c.watchUseCase.Execute(ctx.Request.Context(), summary.GetSummaryInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(c.heartbeatInterval)
	defer heartbeat.Stop()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case output, ok := <-updates:
			if !ok {
				return false
			}
			ctx.SSEvent(summaryEventName, dto.ToSummaryResponse(output))
			return true
		case <-heartbeat.C:
			ctx.SSEvent(heartbeatEventName, time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}

// handleSummaryError handles summary errors and returns appropriate HTTP responses.
func (c *SummaryController) handleSummaryError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	slog.Error("Failed to compute summary", "error", err)
	internalError(ctx)
}
