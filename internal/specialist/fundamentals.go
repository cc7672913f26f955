package specialist

import (
	"math"

	"signal-council/internal/domain"
)

// fundamentalsSpecialists read slow-moving fields sourced from filings,
// earnings and valuation feeds.
func fundamentalsSpecialists() []Strategy {
	return []Strategy{
		newStrategy("fundamentals.valuation", evalValuation),
		newStrategy("fundamentals.revenue_growth", evalRevenueGrowth),
		newStrategy("fundamentals.earnings_surprise", evalEarningsSurprise),
		newStrategy("fundamentals.leverage", evalLeverage),
		newStrategy("fundamentals.fcf_yield", evalFCFYield),
		newStrategy("fundamentals.filing_momentum", evalFilingMomentum),
		newStrategy("fundamentals.guidance", evalGuidance),
	}
}

// pe_ratio against sector_pe: discount to sector is bullish.
func evalValuation(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	pe, okPE := floatField(b, "pe_ratio")
	sector, okS := floatField(b, "sector_pe")
	if !okPE || !okS || pe <= 0 || sector <= 0 {
		return neutralVote()
	}
	discount := (sector - pe) / sector
	return signedVote(math.Tanh(discount * 2))
}

// revenue_growth: year-over-year fraction.
func evalRevenueGrowth(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "revenue_growth")
	if !ok {
		return neutralVote()
	}
	return signedVote(math.Tanh(v * 3))
}

// earnings_surprise: last reported surprise as a fraction of estimate.
func evalEarningsSurprise(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "earnings_surprise")
	if !ok {
		return neutralVote()
	}
	return signedVote(math.Tanh(v * 6))
}

// debt_to_equity: heavy leverage is a drag, a light balance sheet a mild plus.
func evalLeverage(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "debt_to_equity")
	if !ok || v < 0 {
		return neutralVote()
	}
	switch {
	case v > 2.5:
		return vote(32)
	case v > 1.5:
		return vote(42)
	case v < 0.3:
		return vote(58)
	default:
		return neutralVote()
	}
}

// fcf_yield: free-cash-flow yield fraction.
func evalFCFYield(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "fcf_yield")
	if !ok {
		return neutralVote()
	}
	return signedVote(math.Tanh(v * 12))
}

// filing_activity_z: z-score of patent/contract filing volume vs the
// ticker's own baseline.
func evalFilingMomentum(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "filing_activity_z")
	if !ok {
		return neutralVote()
	}
	return signedVote(math.Tanh(v / 2.5))
}

// guidance_delta: management guidance revision as a fraction.
func evalGuidance(b domain.SignalBundle) (float64, domain.DirectionalCall) {
	v, ok := floatField(b, "guidance_delta")
	if !ok {
		return neutralVote()
	}
	return signedVote(math.Tanh(v * 8))
}
