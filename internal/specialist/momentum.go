package specialist

import (
	"math"

	"signal-council/internal/domain"
	"signal-council/internal/ta"
)

// momentumSpecialists read the close/volume series ("closes", "volumes")
// and score the persistence and strength of the current move.
func momentumSpecialists() []Strategy {
	return []Strategy{
		newStrategy("momentum.rsi14", evalRSI14),
		newStrategy("momentum.macd_cross", evalMACDCross),
		newStrategy("momentum.roc10", evalROC10),
		newStrategy("momentum.streak", evalStreak),
		newStrategy("momentum.volume_momentum", evalVolumeMomentum),
		newStrategy("momentum.rsi_divergence", evalRSIDivergence),
		newStrategy("momentum.acceleration", evalAcceleration),
	}
}

func evalRSI14(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok {
		return neutralVote()
	}
	series := ta.RSISeries(closes, 14)
	if series == nil {
		return neutralVote()
	}
	return vote(series[len(series)-1])
}

func evalMACDCross(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 35 {
		return neutralVote()
	}
	macd, signal := ta.MACDSeries(closes, 12, 26, 9)
	last := len(macd) - 1
	price := closes[last]
	if price == 0 {
		return neutralVote()
	}
	// histogram as a fraction of price, stretched onto [-1,1]
	hist := (macd[last] - signal[last]) / price
	return signedVote(math.Tanh(hist * 200))
}

func evalROC10(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok {
		return neutralVote()
	}
	roc := ta.ROC(closes, 10)
	if math.IsNaN(roc) {
		return neutralVote()
	}
	return signedVote(math.Tanh(roc / 8))
}

func evalStreak(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 2 {
		return neutralVote()
	}
	streak := 0
	for i := len(closes) - 1; i > 0; i-- {
		if closes[i] > closes[i-1] {
			if streak < 0 {
				break
			}
			streak++
		} else if closes[i] < closes[i-1] {
			if streak > 0 {
				break
			}
			streak--
		} else {
			break
		}
	}
	return vote(neutralScore + 8*float64(streak))
}

func evalVolumeMomentum(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, okC := seriesField(b, "closes")
	volumes, okV := seriesField(b, "volumes")
	if !okC || !okV || len(volumes) < 5 {
		return neutralVote()
	}
	roc := ta.ROC(closes, 5)
	if math.IsNaN(roc) {
		return neutralVote()
	}
	volZ := ta.ZScore(tail(volumes, 20))
	// volume expansion amplifies the move, contraction mutes it
	amp := clamp(1+volZ/2, 0.25, 2)
	return signedVote(math.Tanh(roc / 8 * amp))
}

func evalRSIDivergence(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 25 {
		return neutralVote()
	}
	rsi := ta.RSISeries(closes, 14)
	if rsi == nil {
		return neutralVote()
	}
	priceSlope := ta.Slope(tail(closes, 10))
	rsiSlope := ta.Slope(tail(rsi, 10))
	if math.IsNaN(rsiSlope) {
		return neutralVote()
	}
	if priceSlope > 0 && rsiSlope < 0 {
		return vote(35) // bearish divergence: price up, momentum fading
	}
	if priceSlope < 0 && rsiSlope > 0 {
		return vote(65) // bullish divergence
	}
	return neutralVote()
}

func evalAcceleration(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	closes, ok := seriesField(b, "closes")
	if !ok || len(closes) < 10 {
		return neutralVote()
	}
	recent := ta.Slope(tail(closes, 5))
	prior := ta.Slope(closes[len(closes)-10 : len(closes)-5])
	price := closes[len(closes)-1]
	if price == 0 {
		return neutralVote()
	}
	accel := (recent - prior) / price
	return signedVote(math.Tanh(accel * 100))
}
