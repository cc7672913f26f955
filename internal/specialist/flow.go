package specialist

import (
	"math"

	"signal-council/internal/domain"
	"signal-council/internal/ta"

	"github.com/narumiruna/go-iforest/pkg/iforest"
)

// flowSpecialists read order-flow and derivatives fields: options
// positioning, open interest, tape volume.
func flowSpecialists() []Strategy {
	return []Strategy{
		newStrategy("flow.put_call", evalPutCall),
		newStrategy("flow.iv_skew", evalIVSkew),
		newStrategy("flow.oi_delta", evalOIDelta),
		newStrategy("flow.volume_z", evalVolumeZ),
		newStrategy("flow.obv", evalOBV),
		newStrategy("flow.block_imbalance", evalBlockImbalance),
		newStrategy("flow.tape_anomaly", evalTapeAnomaly),
	}
}

// put_call_ratio: ~1.0 balanced, above it puts dominate.
func evalPutCall(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	ratio, ok := floatField(b, "put_call_ratio")
	if !ok || ratio < 0 {
		return neutralVote()
	}
	return signedVote(math.Tanh((1 - ratio) * 2))
}

// iv_skew: positive when downside puts trade rich relative to calls.
func evalIVSkew(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	skew, ok := floatField(b, "iv_skew")
	if !ok {
		return neutralVote()
	}
	return signedVote(math.Tanh(-skew * 3))
}

// oi_change: fractional open-interest change; rising OI confirms the price
// direction, falling OI fades it.
func evalOIDelta(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	delta, ok := floatField(b, "oi_change")
	if !ok {
		return neutralVote()
	}
	closes, okC := seriesField(b, "closes")
	if !okC || len(closes) < 6 {
		return neutralVote()
	}
	roc := ta.ROC(closes, 5)
	if math.IsNaN(roc) || roc == 0 {
		return neutralVote()
	}
	dir := 1.0
	if roc < 0 {
		dir = -1.0
	}
	return signedVote(dir * math.Tanh(delta*5) * clamp(math.Abs(roc)/5, 0.2, 1))
}

func evalVolumeZ(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, okC := seriesField(b, "closes")
	volumes, okV := seriesField(b, "volumes")
	if !okC || !okV || len(closes) < 2 || len(volumes) < 5 {
		return neutralVote()
	}
	z := ta.ZScore(tail(volumes, 20))
	if z < 1 {
		return neutralVote() // no unusual participation, no opinion
	}
	last := len(closes) - 1
	if closes[last] > closes[last-1] {
		return vote(neutralScore + 10*clamp(z, 1, 3))
	}
	if closes[last] < closes[last-1] {
		return vote(neutralScore - 10*clamp(z, 1, 3))
	}
	return neutralVote()
}

func evalOBV(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, okC := seriesField(b, "closes")
	volumes, okV := seriesField(b, "volumes")
	if !okC || !okV {
		return neutralVote()
	}
	slope := ta.OBVSlope(tail(closes, 30), tail(volumes, 30))
	if math.IsNaN(slope) {
		return neutralVote()
	}
	return signedVote(math.Tanh(slope * 3))
}

// block_trade_imbalance: signed fraction of block volume on the bid vs ask.
func evalBlockImbalance(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "block_trade_imbalance")
	if !ok {
		return neutralVote()
	}
	return signedVote(clamp(v, -1, 1))
}

// feature_window: rows of pre-fetched numeric tape features, newest last.
// An isolation forest flags how anomalous the latest row is; an anomalous
// tape is a caution signal, so the vote only ever leans bearish.
func evalTapeAnomaly(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	window, ok := matrixField(b, "feature_window")
	if !ok || len(window) < 16 {
		return neutralVote()
	}
	forest := iforest.New()
	forest.Fit(window)
	scores := forest.Score(window)
	if len(scores) != len(window) {
		return neutralVote()
	}
	anomaly := scores[len(scores)-1]
	if anomaly <= 0.55 {
		return neutralVote()
	}
	return vote(neutralScore - 30*clamp((anomaly-0.55)/0.45, 0, 1))
}
