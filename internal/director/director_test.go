package director

import (
	"testing"

	"signal-council/internal/domain"
	"signal-council/internal/specialist"
)

type fixedSpecialist struct {
	id    string
	score float64
	call  domain.DirectionalCall
}

func (f fixedSpecialist) ID() string { return f.id }

func (f fixedSpecialist) Evaluate(domain.SignalBundle) (float64, domain.DirectionalCall) {
	return f.score, f.call
}

type panickySpecialist struct{ id string }

func (p panickySpecialist) ID() string { return p.id }

func (p panickySpecialist) Evaluate(domain.SignalBundle) (float64, domain.DirectionalCall) {
	panic("boom")
}

func TestEvaluateWeightedMeanAndMajority(t *testing.T) {
	d := New("test", []specialist.Strategy{
		fixedSpecialist{id: "a", score: 80, call: domain.CallBullish},
		fixedSpecialist{id: "b", score: 70, call: domain.CallBullish},
		fixedSpecialist{id: "c", score: 30, call: domain.CallBearish},
	})
	weights := map[string]float64{"a": 2.0, "b": 1.0, "c": 1.0}
	verdict := d.Evaluate(domain.SignalBundle{}, func(id string) float64 { return weights[id] })

	want := (80*2.0 + 70 + 30) / 4.0
	if verdict.AggregatedScore != want {
		t.Fatalf("expected weighted mean %f, got %f", want, verdict.AggregatedScore)
	}
	if verdict.Call != domain.CallBullish {
		t.Fatalf("expected bullish majority, got %s", verdict.Call)
	}
	if verdict.LowConfidence {
		t.Fatal("unexpected low confidence")
	}
	if len(verdict.Votes) != 3 {
		t.Fatalf("expected 3 votes, got %d", len(verdict.Votes))
	}
	if verdict.Votes[0].WeightUsed != 2.0 {
		t.Fatalf("expected snapshot weight 2.0, got %f", verdict.Votes[0].WeightUsed)
	}
}

func TestEvaluateTieResolvesNeutral(t *testing.T) {
	d := New("test", []specialist.Strategy{
		fixedSpecialist{id: "a", score: 80, call: domain.CallBullish},
		fixedSpecialist{id: "b", score: 20, call: domain.CallBearish},
	})
	verdict := d.Evaluate(domain.SignalBundle{}, nil)
	if verdict.Call != domain.CallNeutral {
		t.Fatalf("equal-weight tie should be neutral, got %s", verdict.Call)
	}
}

func TestEvaluateAllNeutralFallback(t *testing.T) {
	d := New("test", []specialist.Strategy{
		fixedSpecialist{id: "a", score: 50, call: domain.CallNeutral},
		fixedSpecialist{id: "b", score: 50, call: domain.CallNeutral},
	})
	verdict := d.Evaluate(domain.SignalBundle{}, nil)
	if verdict.AggregatedScore != 50 || verdict.Call != domain.CallNeutral {
		t.Fatalf("expected (50, neutral), got (%f, %s)", verdict.AggregatedScore, verdict.Call)
	}
	if !verdict.LowConfidence {
		t.Fatal("all-neutral verdict must be flagged low confidence")
	}
}

func TestEvaluateRecoversPanickingSpecialist(t *testing.T) {
	d := New("test", []specialist.Strategy{
		panickySpecialist{id: "bad"},
		fixedSpecialist{id: "good", score: 90, call: domain.CallBullish},
	})
	verdict := d.Evaluate(domain.SignalBundle{}, nil)
	if len(verdict.Votes) != 2 {
		t.Fatalf("expected both votes present, got %d", len(verdict.Votes))
	}
	if !verdict.Votes[0].Fallback || verdict.Votes[0].RawScore != 50 {
		t.Fatalf("panicking specialist should become a neutral fallback vote: %+v", verdict.Votes[0])
	}
	if verdict.Call != domain.CallBullish {
		t.Fatalf("surviving specialist should carry the call, got %s", verdict.Call)
	}
}

func TestEvaluateRejectsOutOfRangeScores(t *testing.T) {
	d := New("test", []specialist.Strategy{
		fixedSpecialist{id: "wild", score: 400, call: domain.CallBullish},
	})
	verdict := d.Evaluate(domain.SignalBundle{}, nil)
	if verdict.AggregatedScore != 50 || !verdict.LowConfidence {
		t.Fatalf("out-of-range specialist output should fall back, got %+v", verdict)
	}
}

func TestFromGroupsCanonicalOrder(t *testing.T) {
	directors := FromGroups(specialist.DefaultGroups())
	if len(directors) != 5 {
		t.Fatalf("expected 5 directors, got %d", len(directors))
	}
	wantOrder := []string{"momentum", "trend", "sentiment", "flow", "fundamentals"}
	for i, d := range directors {
		if d.ID() != wantOrder[i] {
			t.Fatalf("director %d: expected %s, got %s", i, wantOrder[i], d.ID())
		}
	}
}
