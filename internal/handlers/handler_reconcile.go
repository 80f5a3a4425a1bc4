package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
	"github.com/tallyledger/tally_ledger_app/internal/middleware"
)

// idempotencyKeyHeader carries the caller-chosen key that makes retried
// reconciliations safe.
const idempotencyKeyHeader = "Idempotency-Key"

// reconcileHandler handles HTTP requests for reconciliations.
type reconcileHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconcileHandler(rs portssvc.ReconciliationSvcFacade) *reconcileHandler {
	return &reconcileHandler{reconciliationService: rs}
}

// registerReconcileRoutes registers the reconciliation route.
func registerReconcileRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconcileHandler(reconciliationService)

	rg.POST("/reconciliations", h.reconcile)
}

func (h *reconcileHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reconcile", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	idempotencyKey := c.GetHeader(idempotencyKeyHeader)
	resp, err := h.reconciliationService.Reconcile(c.Request.Context(), idempotencyKey, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, resp)
}
