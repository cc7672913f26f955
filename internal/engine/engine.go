// Package engine hosts the root orchestrator: it fans one signal bundle out
// to the five directors, folds their verdicts into a single decision,
// persists it, and later grades every contributing component when the
// outcome arrives. The engine is an explicit instance with injected stores;
// the composition root owns its lifetime.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"signal-council/internal/director"
	"signal-council/internal/domain"
	"signal-council/internal/ledger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/stat"
)

// DecisionStore is the durable decision log. SealDecision is the atomic
// transaction primitive: the seal, the outcome row, the performance updates
// and the audit rows commit together or not at all.
type DecisionStore interface {
	InsertDecision(ctx context.Context, decision domain.Decision) error
	GetDecision(ctx context.Context, id string) (*domain.Decision, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]domain.Decision, error)
	SealDecision(ctx context.Context, outcome domain.Outcome, updates []domain.ComponentPerformance, audit []domain.EvolutionAuditEntry) error
}

// PerformanceLedger reads component ledger entries. All writes go through
// SealDecision; nothing else may mutate performance state.
type PerformanceLedger interface {
	GetComponent(ctx context.Context, id string) (*domain.ComponentPerformance, error)
	ListComponents(ctx context.Context) ([]domain.ComponentPerformance, error)
}

type Config struct {
	TrustAlpha     float64
	MaterialityPnL float64
}

type Engine struct {
	tracer    trace.Tracer
	directors []*director.Director
	decisions DecisionStore
	ledger    PerformanceLedger
	evolution *ledger.Evolution
	newID     func() string

	// serializes outcome application; analyze reads are lock-free and
	// observe the latest committed ledger state.
	mu sync.Mutex
}

func New(tracer trace.Tracer, directors []*director.Director, decisions DecisionStore, perf PerformanceLedger, cfg Config) *Engine {
	return &Engine{
		tracer:    tracer,
		directors: directors,
		decisions: decisions,
		ledger:    perf,
		evolution: ledger.NewEvolution(cfg.TrustAlpha, cfg.MaterialityPnL),
		newID:     uuid.NewString,
	}
}

// AnalyzeOpportunity produces one pending Decision for the bundle. It is
// pure computation over pre-fetched data plus a single persistence write;
// missing bundle fields degrade inside the specialists and never fail the
// call.
func (e *Engine) AnalyzeOpportunity(ctx context.Context, ticker, signalType string, bundle domain.SignalBundle) (*domain.Decision, error) {
	ctx, span := e.tracer.Start(ctx, "engine.analyze-opportunity")
	defer span.End()

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	signalType = strings.TrimSpace(signalType)
	if ticker == "" {
		return nil, fmt.Errorf("%w: empty ticker", domain.ErrInvalidInput)
	}
	if signalType == "" {
		return nil, fmt.Errorf("%w: empty signal_type", domain.ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("ticker", ticker), attribute.String("signal_type", signalType))

	weightFor, err := e.snapshotWeights(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot ledger weights: %w", err)
	}

	verdicts := make([]domain.DirectorVerdict, 0, len(e.directors))
	scores := make([]float64, 0, len(e.directors))
	var weightSum, scoreSum float64
	callWeight := map[domain.DirectionalCall]float64{}

	for _, d := range e.directors {
		verdict := d.Evaluate(bundle, weightFor)
		verdict.WeightUsed = weightFor(directorComponentID(d.ID()))
		verdicts = append(verdicts, verdict)
		scores = append(scores, verdict.AggregatedScore)
		weightSum += verdict.WeightUsed
		scoreSum += verdict.AggregatedScore * verdict.WeightUsed
		callWeight[verdict.Call] += verdict.WeightUsed
	}

	composite := 50.0
	if weightSum > 0 {
		composite = scoreSum / weightSum
	}
	call := weightedMajority(callWeight)

	decision := domain.Decision{
		ID:             e.newID(),
		Ticker:         ticker,
		SignalType:     signalType,
		CreatedAt:      time.Now().UTC(),
		Verdicts:       verdicts,
		CompositeScore: composite,
		CompositeCall:  call,
		FinalAction:    finalAction(composite, call),
		Confidence:     dispersionConfidence(scores),
		Status:         domain.StatusPending,
	}
	decision.PositionSizeHint = positionSizeHint(decision.FinalAction, decision.Confidence)

	if err := e.decisions.InsertDecision(ctx, decision); err != nil {
		return nil, fmt.Errorf("persist decision: %w", err)
	}
	return &decision, nil
}

// RecordOutcome seals a pending decision and applies the evolution update
// for every component that voted on it, as one logical unit. Concurrent
// calls for the same id are serialized: exactly one succeeds, the rest see
// ErrAlreadySealed and leave the ledger untouched.
func (e *Engine) RecordOutcome(ctx context.Context, decisionID string, result domain.OutcomeResult, pnl float64) error {
	ctx, span := e.tracer.Start(ctx, "engine.record-outcome")
	defer span.End()
	span.SetAttributes(attribute.String("decision_id", decisionID))

	if strings.TrimSpace(decisionID) == "" {
		return fmt.Errorf("%w: empty decision_id", domain.ErrInvalidInput)
	}
	if !result.IsValid() {
		return fmt.Errorf("%w: bad outcome result %q", domain.ErrInvalidInput, result)
	}
	if math.IsNaN(pnl) || math.IsInf(pnl, 0) {
		return fmt.Errorf("%w: non-finite pnl", domain.ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	decision, err := e.decisions.GetDecision(ctx, decisionID)
	if err != nil {
		return err
	}
	if decision.Status == domain.StatusSealed {
		return fmt.Errorf("%w: %s", domain.ErrAlreadySealed, decisionID)
	}

	now := time.Now().UTC()
	outcome := domain.Outcome{
		DecisionID: decisionID,
		Result:     result,
		PnL:        pnl,
		RecordedAt: now,
	}

	updates, audit, err := e.evolve(ctx, decision, pnl, now)
	if err != nil {
		return fmt.Errorf("compute evolution updates: %w", err)
	}

	if err := e.decisions.SealDecision(ctx, outcome, updates, audit); err != nil {
		return err
	}
	return nil
}

// evolve grades every vote captured in the decision and produces the full
// batch of ledger updates plus matching audit rows.
func (e *Engine) evolve(ctx context.Context, decision *domain.Decision, pnl float64, now time.Time) ([]domain.ComponentPerformance, []domain.EvolutionAuditEntry, error) {
	type graded struct {
		id      string
		kind    domain.ComponentKind
		correct bool
	}

	batch := make([]graded, 0, 40)
	for _, verdict := range decision.Verdicts {
		batch = append(batch, graded{
			id:      directorComponentID(verdict.DirectorID),
			kind:    domain.KindDirector,
			correct: e.evolution.Grade(verdict.Call, pnl),
		})
		for _, v := range verdict.Votes {
			batch = append(batch, graded{
				id:      v.SpecialistID,
				kind:    domain.KindSpecialist,
				correct: e.evolution.Grade(v.Call, pnl),
			})
		}
	}

	magnitude := math.Abs(pnl)
	updates := make([]domain.ComponentPerformance, 0, len(batch))
	audit := make([]domain.EvolutionAuditEntry, 0, len(batch))
	for _, g := range batch {
		current, err := e.ledger.GetComponent(ctx, g.id)
		if err != nil {
			if errorsIsUnknownComponent(err) {
				fresh := ledger.NewComponent(g.id, g.kind, now)
				current = &fresh
			} else {
				return nil, nil, err
			}
		}
		updated := e.evolution.Apply(*current, g.correct, magnitude, now)
		updates = append(updates, updated)
		audit = append(audit, domain.EvolutionAuditEntry{
			DecisionID:   decision.ID,
			ComponentID:  g.id,
			Correct:      g.correct,
			Magnitude:    magnitude,
			TrustBefore:  current.TrustScore,
			TrustAfter:   updated.TrustScore,
			WeightBefore: current.Weight,
			WeightAfter:  updated.Weight,
			RecordedAt:   now,
		})
	}
	return updates, audit, nil
}

// GetComponentPerformance exposes one ledger entry, read-only.
func (e *Engine) GetComponentPerformance(ctx context.Context, componentID string) (*domain.ComponentPerformance, error) {
	ctx, span := e.tracer.Start(ctx, "engine.get-component-performance")
	defer span.End()
	return e.ledger.GetComponent(ctx, componentID)
}

// ListComponentPerformance exposes the whole board, read-only.
func (e *Engine) ListComponentPerformance(ctx context.Context) ([]domain.ComponentPerformance, error) {
	ctx, span := e.tracer.Start(ctx, "engine.list-component-performance")
	defer span.End()
	return e.ledger.ListComponents(ctx)
}

// snapshotWeights reads the committed ledger once per analysis. Components
// without an entry vote at the cold-start weight of 1.0.
func (e *Engine) snapshotWeights(ctx context.Context) (director.WeightFn, error) {
	components, err := e.ledger.ListComponents(ctx)
	if err != nil {
		return nil, err
	}
	weights := make(map[string]float64, len(components))
	for _, c := range components {
		weights[c.ComponentID] = c.Weight
	}
	return func(componentID string) float64 {
		if w, ok := weights[componentID]; ok {
			return w
		}
		return 1.0
	}, nil
}

// directorComponentID keeps director ledger ids disjoint from specialist
// ids ("momentum" the group vs "momentum.rsi14" the leaf).
func directorComponentID(directorID string) string {
	return "director." + directorID
}

func weightedMajority(callWeight map[domain.DirectionalCall]float64) domain.DirectionalCall {
	best := domain.CallNeutral
	bestWeight := -1.0
	tied := false
	for _, call := range []domain.DirectionalCall{domain.CallBullish, domain.CallBearish, domain.CallNeutral} {
		w := callWeight[call]
		if w > bestWeight {
			best = call
			bestWeight = w
			tied = false
		} else if w == bestWeight {
			tied = true
		}
	}
	if tied {
		return domain.CallNeutral
	}
	return best
}

// finalAction maps the composite score and call onto the five-value action
// scale. A composite without directional conviction always holds.
func finalAction(score float64, call domain.DirectionalCall) domain.FinalAction {
	switch call {
	case domain.CallBullish:
		if score >= 80 {
			return domain.ActionStrongBuy
		}
		if score >= 60 {
			return domain.ActionBuy
		}
	case domain.CallBearish:
		if score <= 20 {
			return domain.ActionStrongSell
		}
		if score <= 40 {
			return domain.ActionSell
		}
	}
	return domain.ActionHold
}

// dispersionConfidence penalizes director disagreement: equal means with
// wider spread always yield strictly lower confidence, because the spread
// itself is information that must not be averaged away.
func dispersionConfidence(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	variance := stat.Variance(scores, nil)
	if math.IsNaN(variance) || variance < 0 {
		variance = 0
	}
	confidence := 100 - 2*math.Sqrt(variance)
	if confidence < 0 {
		return 0
	}
	return confidence
}

func positionSizeHint(action domain.FinalAction, confidence float64) float64 {
	base := 0.0
	switch action {
	case domain.ActionStrongBuy, domain.ActionStrongSell:
		base = 1.0
	case domain.ActionBuy, domain.ActionSell:
		base = 0.5
	}
	return base * confidence / 100
}

func errorsIsUnknownComponent(err error) bool {
	return errors.Is(err, domain.ErrUnknownComponent)
}
