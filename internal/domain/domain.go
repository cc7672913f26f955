package domain

import "time"

// SignalBundle is the normalized, pre-fetched input to one analysis: an
// opaque mapping of named fields for one ticker at one point in time.
// Producers live outside this module; specialists degrade gracefully when
// a field they want is absent or mistyped.
type SignalBundle map[string]any

type DirectionalCall string

const (
	CallBullish DirectionalCall = "bullish"
	CallBearish DirectionalCall = "bearish"
	CallNeutral DirectionalCall = "neutral"
)

func (c DirectionalCall) IsValid() bool {
	return c == CallBullish || c == CallBearish || c == CallNeutral
}

type FinalAction string

const (
	ActionStrongBuy  FinalAction = "strong_buy"
	ActionBuy        FinalAction = "buy"
	ActionHold       FinalAction = "hold"
	ActionSell       FinalAction = "sell"
	ActionStrongSell FinalAction = "strong_sell"
)

func (a FinalAction) IsValid() bool {
	switch a {
	case ActionStrongBuy, ActionBuy, ActionHold, ActionSell, ActionStrongSell:
		return true
	}
	return false
}

type DecisionStatus string

const (
	StatusPending DecisionStatus = "pending"
	StatusSealed  DecisionStatus = "sealed"
)

type OutcomeResult string

const (
	OutcomeWin     OutcomeResult = "win"
	OutcomeLoss    OutcomeResult = "loss"
	OutcomeNeutral OutcomeResult = "neutral"
)

func (o OutcomeResult) IsValid() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomeNeutral
}

// SpecialistVote is one specialist's opinion inside a verdict. WeightUsed is
// the ledger weight snapshot taken at analysis time; it is never rewritten,
// so later weight drift cannot alter a sealed decision's rationale.
type SpecialistVote struct {
	SpecialistID string          `json:"specialist_id"`
	RawScore     float64         `json:"raw_score"`
	Call         DirectionalCall `json:"call"`
	WeightUsed   float64         `json:"weight_used"`
	Fallback     bool            `json:"fallback,omitempty"`
}

type DirectorVerdict struct {
	DirectorID      string           `json:"director_id"`
	AggregatedScore float64          `json:"aggregated_score"`
	Call            DirectionalCall  `json:"call"`
	WeightUsed      float64          `json:"weight_used"`
	LowConfidence   bool             `json:"low_confidence,omitempty"`
	Votes           []SpecialistVote `json:"votes"`
}

// Decision is the immutable record of one recommendation. Its only mutation
// ever is the pending -> sealed transition driven by RecordOutcome.
type Decision struct {
	ID               string            `json:"id"`
	Ticker           string            `json:"ticker"`
	SignalType       string            `json:"signal_type"`
	CreatedAt        time.Time         `json:"created_at"`
	Verdicts         []DirectorVerdict `json:"verdicts"`
	CompositeScore   float64           `json:"composite_score"`
	CompositeCall    DirectionalCall   `json:"composite_call"`
	FinalAction      FinalAction       `json:"final_action"`
	Confidence       float64           `json:"confidence"`
	PositionSizeHint float64           `json:"position_size_hint"`
	Status           DecisionStatus    `json:"status"`
}

// Outcome is the later-known ground truth for one decision. PnL is a signed
// percent move; at most one outcome ever exists per decision.
type Outcome struct {
	DecisionID string        `json:"decision_id"`
	Result     OutcomeResult `json:"result"`
	PnL        float64       `json:"pnl"`
	RecordedAt time.Time     `json:"recorded_at"`
}

type ComponentKind string

const (
	KindSpecialist ComponentKind = "specialist"
	KindDirector   ComponentKind = "director"
)

// PerformanceEvent is one graded outcome in a component's rolling history.
type PerformanceEvent struct {
	Correct    bool      `json:"correct"`
	Magnitude  float64   `json:"magnitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ComponentPerformance is the ledger entry for one specialist or director.
// History is newest-first and capped; Weight is always derived from
// TrustScore, never stored independently of it.
type ComponentPerformance struct {
	ComponentID      string             `json:"component_id"`
	Kind             ComponentKind      `json:"kind"`
	TotalPredictions int                `json:"total_predictions"`
	History          []PerformanceEvent `json:"history"`
	Accuracy         float64            `json:"accuracy"`
	TrustScore       float64            `json:"trust_score"`
	Weight           float64            `json:"weight"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// EvolutionAuditEntry records one component update applied while sealing a
// decision, for offline inspection of the adaptation loop.
type EvolutionAuditEntry struct {
	ID           int64     `json:"id"`
	DecisionID   string    `json:"decision_id"`
	ComponentID  string    `json:"component_id"`
	Correct      bool      `json:"correct"`
	Magnitude    float64   `json:"magnitude"`
	TrustBefore  float64   `json:"trust_before"`
	TrustAfter   float64   `json:"trust_after"`
	WeightBefore float64   `json:"weight_before"`
	WeightAfter  float64   `json:"weight_after"`
	RecordedAt   time.Time `json:"recorded_at"`
}
