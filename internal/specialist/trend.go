package specialist

import (
	"math"

	"signal-council/internal/domain"
	"signal-council/internal/ta"
)

// trendSpecialists judge the larger structure of the close series rather
// than the most recent push.
func trendSpecialists() []Strategy {
	return []Strategy{
		newStrategy("trend.ema_cross", evalEMACross),
		newStrategy("trend.long_base", evalLongBase),
		newStrategy("trend.bollinger", evalBollingerRide),
		newStrategy("trend.donchian20", evalDonchian20),
		newStrategy("trend.regression", evalRegression),
		newStrategy("trend.structure", evalStructure),
		newStrategy("trend.pullback", evalPullback),
	}
}

func evalEMACross(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 50 {
		return neutralVote()
	}
	fast := ta.EMASeries(closes, 20)
	slow := ta.EMASeries(closes, 50)
	last := len(closes) - 1
	if slow[last] == 0 {
		return neutralVote()
	}
	spread := (fast[last] - slow[last]) / slow[last]
	return signedVote(math.Tanh(spread * 40))
}

func evalLongBase(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 200 {
		return neutralVote()
	}
	base := ta.SMA(closes, 200)
	if math.IsNaN(base) || base == 0 {
		return neutralVote()
	}
	premium := (closes[len(closes)-1] - base) / base
	return signedVote(math.Tanh(premium * 8))
}

func evalBollingerRide(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok {
		return neutralVote()
	}
	pos := ta.BollingerPosition(closes, 20, 2)
	if math.IsNaN(pos) {
		return neutralVote()
	}
	return signedVote(clamp(pos, -1, 1))
}

func evalDonchian20(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok {
		return neutralVote()
	}
	pos := ta.DonchianPosition(closes, 20)
	if math.IsNaN(pos) {
		return neutralVote()
	}
	switch {
	case pos >= 0.9:
		return vote(75) // breakout at channel high
	case pos <= 0.1:
		return vote(25)
	default:
		return signedVote((pos - 0.5) * 0.8)
	}
}

func evalRegression(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 20 {
		return neutralVote()
	}
	window := tail(closes, 30)
	mean, _ := ta.MeanStd(window)
	if mean == 0 {
		return neutralVote()
	}
	slope := ta.Slope(window) / mean
	return signedVote(math.Tanh(slope * 120))
}

func evalStructure(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 15 {
		return neutralVote()
	}
	window := tail(closes, 15)
	higher, lower := 0, 0
	step := 5
	for i := step; i < len(window); i += step {
		prevHi := maxOf(window[i-step : i])
		prevLo := minOf(window[i-step : i])
		segHi := maxOf(window[i:minInt(i+step, len(window))])
		segLo := minOf(window[i:minInt(i+step, len(window))])
		if segHi > prevHi && segLo > prevLo {
			higher++
		}
		if segHi < prevHi && segLo < prevLo {
			lower++
		}
	}
	return vote(neutralScore + 15*float64(higher-lower))
}

func evalPullback(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 50 {
		return neutralVote()
	}
	fast := ta.EMASeries(closes, 20)
	slow := ta.EMASeries(closes, 50)
	last := len(closes) - 1
	price := closes[last]
	if price == 0 || fast[last] == 0 {
		return neutralVote()
	}
	uptrend := fast[last] > slow[last]
	distToFast := (price - fast[last]) / fast[last]
	if uptrend && distToFast < 0 && distToFast > -0.03 {
		return vote(68) // shallow dip onto the fast average inside an uptrend
	}
	if !uptrend && distToFast > 0 && distToFast < 0.03 {
		return vote(32)
	}
	return neutralVote()
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values {
		if v < m {
			m = v
		}
	}
	return m
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
