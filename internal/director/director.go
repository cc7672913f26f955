// Package director aggregates one fixed group of specialists into a single
// verdict. Aggregation always succeeds: a specialist that panics or returns
// nothing useful becomes a neutral fallback vote, never an error.
package director

import (
	"log"

	"signal-council/internal/domain"
	"signal-council/internal/specialist"
)

// WeightFn resolves the current ledger weight for a component id. A nil
// WeightFn means everyone votes at the cold-start weight of 1.0.
type WeightFn func(componentID string) float64

type Director struct {
	id          string
	specialists []specialist.Strategy
}

func New(id string, specialists []specialist.Strategy) *Director {
	return &Director{id: id, specialists: specialists}
}

func FromGroups(groups []specialist.Group) []*Director {
	out := make([]*Director, 0, len(groups))
	for _, g := range groups {
		out = append(out, New(g.ID, g.Specialists))
	}
	return out
}

func (d *Director) ID() string { return d.id }

// Evaluate fans the bundle out to every specialist and folds the votes into
// one verdict: weighted mean score, weight-summed majority call. Ties
// resolve to neutral.
func (d *Director) Evaluate(bundle domain.SignalBundle, weightFor WeightFn) domain.DirectorVerdict {
	verdict := domain.DirectorVerdict{
		DirectorID: d.id,
		Votes:      make([]domain.SpecialistVote, 0, len(d.specialists)),
	}

	var weightSum, scoreSum float64
	callWeight := map[domain.DirectionalCall]float64{}
	allFallback := true

	for _, s := range d.specialists {
		score, call, fellBack := safeEvaluate(s, bundle)
		weight := 1.0
		if weightFor != nil {
			weight = weightFor(s.ID())
		}
		verdict.Votes = append(verdict.Votes, domain.SpecialistVote{
			SpecialistID: s.ID(),
			RawScore:     score,
			Call:         call,
			WeightUsed:   weight,
			Fallback:     fellBack,
		})
		weightSum += weight
		scoreSum += score * weight
		callWeight[call] += weight
		if !fellBack {
			allFallback = false
		}
	}

	if weightSum == 0 || allFallback {
		verdict.AggregatedScore = 50
		verdict.Call = domain.CallNeutral
		verdict.LowConfidence = true
		return verdict
	}

	verdict.AggregatedScore = scoreSum / weightSum
	verdict.Call = majorityCall(callWeight)
	return verdict
}

func safeEvaluate(s specialist.Strategy, bundle domain.SignalBundle) (score float64, call domain.DirectionalCall, fellBack bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("specialist %s panicked, using neutral fallback: %v", s.ID(), r)
			score, call, fellBack = 50, domain.CallNeutral, true
		}
	}()
	score, call = s.Evaluate(bundle)
	if score < 0 || score > 100 || !call.IsValid() {
		return 50, domain.CallNeutral, true
	}
	fellBack = score == 50 && call == domain.CallNeutral
	return score, call, fellBack
}

// majorityCall picks the call with the largest summed weight; any tie for
// the top spot is not a majority and resolves to neutral.
func majorityCall(callWeight map[domain.DirectionalCall]float64) domain.DirectionalCall {
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
