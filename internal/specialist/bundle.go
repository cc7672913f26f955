package specialist

import (
	"math"

	"signal-council/internal/domain"
)

const neutralScore = 50.0

// neutralVote is the universal fallback for absent or malformed input.
func neutralVote() (float64, domain.DirectionalCall) {
	return neutralScore, domain.CallNeutral
}

// vote clamps a score into [0,100] and derives the directional call from it.
// Scores within the 45..55 band are not a conviction either way.
func vote(score float64) (float64, domain.DirectionalCall) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return neutralVote()
	}
	score = clamp(score, 0, 100)
	switch {
	case score >= 55:
		return score, domain.CallBullish
	case score <= 45:
		return score, domain.CallBearish
	default:
		return score, domain.CallNeutral
	}
}

// signedVote maps a signed conviction in [-1,1] onto the score scale.
func signedVote(signed float64) (float64, domain.DirectionalCall) {
	if math.IsNaN(signed) || math.IsInf(signed, 0) {
		return neutralVote()
	}
	return vote(neutralScore + 50*clamp(signed, -1, 1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floatField(bundle domain.SignalBundle, key string) (float64, bool) {
	raw, ok := bundle[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return checkedFloat(v)
	case float32:
		return checkedFloat(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func seriesField(bundle domain.SignalBundle, key string) ([]float64, bool) {
	raw, ok := bundle[key]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []float64:
		if len(v) == 0 {
			return nil, false
		}
		return v, true
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

func matrixField(bundle domain.SignalBundle, key string) ([][]float64, bool) {
	raw, ok := bundle[key]
	if !ok {
		return nil, false
	}
	m, ok := raw.([][]float64)
	if !ok || len(m) == 0 {
		return nil, false
	}
	width := len(m[0])
	if width == 0 {
		return nil, false
	}
	for _, row := range m {
		if len(row) != width {
			return nil, false
		}
	}
	return m, true
}

func checkedFloat(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
