package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
	"github.com/tallyledger/tally_ledger_app/internal/middleware"
)

// rawTransactionHandler handles HTTP requests for imported transactions.
type rawTransactionHandler struct {
	importService portssvc.ImportSvcFacade
}

func newRawTransactionHandler(is portssvc.ImportSvcFacade) *rawTransactionHandler {
	return &rawTransactionHandler{importService: is}
}

// registerRawTransactionRoutes registers import and listing routes.
func registerRawTransactionRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvcFacade) {
	h := newRawTransactionHandler(importService)

	txns := rg.Group("/raw-transactions")
	{
		txns.POST("/import", h.importTransactions)
		txns.GET("", h.listRawTransactions)
	}
}

func (h *rawTransactionHandler) importTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ImportTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importTransactions", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	resp, err := h.importService.ImportTransactions(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, resp)
}

func (h *rawTransactionHandler) listRawTransactions(c *gin.Context) {
	var params dto.ListRawTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.importService.ListRawTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, resp)
}
