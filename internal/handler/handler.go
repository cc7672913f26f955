package handler

import (
	"context"
	"errors"
	"net/http"

	"signal-council/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Council is the engine surface the HTTP layer drives.
type Council interface {
	AnalyzeOpportunity(ctx context.Context, ticker, signalType string, bundle domain.SignalBundle) (*domain.Decision, error)
	RecordOutcome(ctx context.Context, decisionID string, result domain.OutcomeResult, pnl float64) error
}

type DecisionReader interface {
	GetDecision(ctx context.Context, id string) (*domain.Decision, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Decision, error)
}

type PerformanceBoard interface {
	Leaderboard(ctx context.Context) ([]domain.ComponentPerformance, error)
	Component(ctx context.Context, componentID string) (*domain.ComponentPerformance, error)
	RecentAudit(ctx context.Context, limit int) ([]domain.EvolutionAuditEntry, error)
}

type DecisionExplainer interface {
	ExplainDecision(ctx context.Context, decision *domain.Decision) (string, error)
}

type Handler struct {
	tracer      trace.Tracer
	council     Council
	decisions   DecisionReader
	performance PerformanceBoard
	explainer   DecisionExplainer
}

func New(tracer trace.Tracer, council Council, decisions DecisionReader, performance PerformanceBoard) *Handler {
	return &Handler{
		tracer:      tracer,
		council:     council,
		decisions:   decisions,
		performance: performance,
	}
}

func (h *Handler) SetExplainer(explainer DecisionExplainer) {
	h.explainer = explainer
}

// RegisterRoutes wires every endpoint; middleware (auth, rate limiting)
// applies to the /api group only, never to /health.
func (h *Handler) RegisterRoutes(r *gin.Engine, middleware ...gin.HandlerFunc) {
	r.GET("/health", h.Health)

	api := r.Group("/api", middleware...)
	api.POST("/analyze", h.Analyze)
	api.GET("/decisions", h.ListDecisions)
	api.GET("/decisions/:id", h.GetDecision)
	api.POST("/decisions/:id/outcome", h.RecordOutcome)
	api.GET("/decisions/:id/explain", h.ExplainDecision)
	api.GET("/performance", h.GetLeaderboard)
	api.GET("/performance/:id", h.GetComponent)
	api.GET("/audit", h.GetRecentAudit)
}

// statusFor maps domain sentinels onto HTTP statuses; anything unrecognized
// is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownDecision), errors.Is(err, domain.ErrUnknownComponent):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadySealed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
