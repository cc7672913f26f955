// Package ledger implements the weight-evolution rule: it turns one graded
// outcome into updated trust and weight for a component. All functions are
// pure; persistence and locking live with the caller.
package ledger

import (
	"math"
	"time"

	"signal-council/internal/domain"
)

const (
	// HistoryCapacity bounds the rolling window; the oldest event is
	// evicted once the window is full.
	HistoryCapacity = 100

	// DefaultTrustAlpha is the EWMA step. At 0.10 a component needs a
	// sustained run, not a single outcome, to move its weight materially.
	DefaultTrustAlpha = 0.10

	// DefaultMaterialityPnL is the |pnl| (percent points) under which a
	// move counts as flat, making a neutral call correct.
	DefaultMaterialityPnL = 0.5

	MinWeight = 0.5
	MaxWeight = 2.0

	// coldStartTrust is the fixed point whose derived weight is exactly
	// 1.0; fresh components are seeded here so the cold-start weight
	// invariant survives the very first EWMA step.
	coldStartTrust = 1.0 / 3.0
)

type Evolution struct {
	alpha       float64
	materiality float64
	capacity    int
}

func NewEvolution(alpha, materialityPnL float64) *Evolution {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultTrustAlpha
	}
	if materialityPnL <= 0 {
		materialityPnL = DefaultMaterialityPnL
	}
	return &Evolution{alpha: alpha, materiality: materialityPnL, capacity: HistoryCapacity}
}

// NewComponent is the cold-start ledger entry: no history, weight 1.0.
func NewComponent(id string, kind domain.ComponentKind, now time.Time) domain.ComponentPerformance {
	return domain.ComponentPerformance{
		ComponentID: id,
		Kind:        kind,
		TrustScore:  coldStartTrust,
		Weight:      WeightFromTrust(coldStartTrust),
		UpdatedAt:   now.UTC(),
	}
}

// Grade decides whether one directional call was vindicated by the realized
// pnl. A neutral call is only correct on a genuinely flat outcome; anything
// else would let a strategy farm accuracy by always abstaining.
func (e *Evolution) Grade(call domain.DirectionalCall, pnl float64) bool {
	switch call {
	case domain.CallBullish:
		return pnl > 0
	case domain.CallBearish:
		return pnl < 0
	default:
		return math.Abs(pnl) < e.materiality
	}
}

// Apply folds one graded event into a component's ledger entry and returns
// the updated copy. History stays newest-first and capped; accuracy is
// recomputed over the retained window only; trust moves by a bounded EWMA
// step and weight is always re-derived from trust.
func (e *Evolution) Apply(perf domain.ComponentPerformance, correct bool, magnitude float64, at time.Time) domain.ComponentPerformance {
	event := domain.PerformanceEvent{
		Correct:    correct,
		Magnitude:  math.Abs(magnitude),
		RecordedAt: at.UTC(),
	}

	history := make([]domain.PerformanceEvent, 0, minInt(len(perf.History)+1, e.capacity))
	history = append(history, event)
	for _, old := range perf.History {
		if len(history) == e.capacity {
			break
		}
		history = append(history, old)
	}

	hits := 0
	for _, ev := range history {
		if ev.Correct {
			hits++
		}
	}

	target := 0.0
	if correct {
		target = 1.0
	}
	trust := clamp01((1-e.alpha)*perf.TrustScore + e.alpha*target)

	perf.History = history
	perf.TotalPredictions++
	perf.Accuracy = float64(hits) / float64(len(history))
	perf.TrustScore = trust
	perf.Weight = WeightFromTrust(trust)
	perf.UpdatedAt = at.UTC()
	return perf
}

// WeightFromTrust is the single place weight comes from: the deterministic
// clamp keeps cold components influential and caps hot ones at 2x.
func WeightFromTrust(trust float64) float64 {
	w := MinWeight + 1.5*clamp01(trust)
	if w < MinWeight {
		return MinWeight
	}
	if w > MaxWeight {
		return MaxWeight
	}
	return w
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
