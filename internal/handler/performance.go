package handler

import (
	"net/http"
	"strconv"

	"signal-council/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard godoc
// @Summary      List every component's ledger entry, heaviest weight first
// @Tags         performance
// @Produce      json
// @Success      200  {array}   domain.ComponentPerformance
// @Failure      500  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/performance [get]
func (h *Handler) GetLeaderboard(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-leaderboard")
	defer span.End()

	board, err := h.performance.Leaderboard(ctx)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if board == nil {
		board = []domain.ComponentPerformance{}
	}
	c.JSON(http.StatusOK, board)
}

// GetComponent godoc
// @Summary      Fetch one component's ledger entry
// @Tags         performance
// @Produce      json
// @Param        id   path      string  true  "component id, e.g. momentum.rsi14 or director.flow"
// @Success      200  {object}  domain.ComponentPerformance
// @Failure      404  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/performance/{id} [get]
func (h *Handler) GetComponent(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-component")
	defer span.End()

	component, err := h.performance.Component(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, component)
}

// GetRecentAudit godoc
// @Summary      List recent weight evolution audit rows, newest first
// @Tags         performance
// @Produce      json
// @Param        limit  query     int  false  "max rows (default 100, cap 500)"
// @Success      200    {array}   domain.EvolutionAuditEntry
// @Failure      500    {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/audit [get]
func (h *Handler) GetRecentAudit(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-recent-audit")
	defer span.End()

	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	entries, err := h.performance.RecentAudit(ctx, limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []domain.EvolutionAuditEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
