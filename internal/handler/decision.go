package handler

import (
	"net/http"
	"strconv"

	"signal-council/internal/domain"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	Ticker     string              `json:"ticker" binding:"required"`
	SignalType string              `json:"signal_type" binding:"required"`
	Signals    domain.SignalBundle `json:"signals"`
}

type outcomeRequest struct {
	Result domain.OutcomeResult `json:"result" binding:"required"`
	PnL    float64              `json:"pnl"`
}

// Analyze godoc
// @Summary      Run one council analysis for a ticker
// @Description  Fans the signal bundle out to all directors and returns the persisted pending decision
// @Tags         decisions
// @Accept       json
// @Produce      json
// @Param        request  body      analyzeRequest  true  "ticker, signal type and signal bundle"
// @Success      200      {object}  domain.Decision
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze")
	defer span.End()

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.council.AnalyzeOpportunity(ctx, req.Ticker, req.SignalType, req.Signals)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, decision)
}

// RecordOutcome godoc
// @Summary      Record the realized outcome for a decision
// @Description  Seals the decision and applies the weight evolution update for every component that voted
// @Tags         decisions
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "decision id"
// @Param        request  body      outcomeRequest  true  "result and realized pnl percent"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/decisions/{id}/outcome [post]
func (h *Handler) RecordOutcome(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.record-outcome")
	defer span.End()

	var req outcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.council.RecordOutcome(ctx, c.Param("id"), req.Result, req.PnL); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sealed"})
}

// GetDecision godoc
// @Summary      Fetch one decision by id
// @Tags         decisions
// @Produce      json
// @Param        id   path      string  true  "decision id"
// @Success      200  {object}  domain.Decision
// @Failure      404  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/decisions/{id} [get]
func (h *Handler) GetDecision(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-decision")
	defer span.End()

	decision, err := h.decisions.GetDecision(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, decision)
}

// ListDecisions godoc
// @Summary      List recent decisions, newest first
// @Tags         decisions
// @Produce      json
// @Param        limit  query     int  false  "max rows (default 20, cap 200)"
// @Success      200    {array}   domain.Decision
// @Failure      500    {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/decisions [get]
func (h *Handler) ListDecisions(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-decisions")
	defer span.End()

	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	decisions, err := h.decisions.ListRecent(ctx, limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if decisions == nil {
		decisions = []domain.Decision{}
	}
	c.JSON(http.StatusOK, decisions)
}

// ExplainDecision godoc
// @Summary      Produce a human-readable rationale for a decision
// @Tags         decisions
// @Produce      json
// @Param        id   path      string  true  "decision id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/decisions/{id}/explain [get]
func (h *Handler) ExplainDecision(c *gin.Context) {
	if h.explainer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "explainer unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.explain-decision")
	defer span.End()

	decision, err := h.decisions.GetDecision(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	explanation, err := h.explainer.ExplainDecision(ctx, decision)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"decision_id": decision.ID,
		"explanation": explanation,
	})
}
