package ledger

import (
	"testing"
	"time"

	"signal-council/internal/domain"
)

func TestGrade(t *testing.T) {
	e := NewEvolution(0, 0)
	cases := []struct {
		call    domain.DirectionalCall
		pnl     float64
		correct bool
	}{
		{domain.CallBullish, 3.2, true},
		{domain.CallBullish, -1.0, false},
		{domain.CallBullish, 0, false},
		{domain.CallBearish, -2.4, true},
		{domain.CallBearish, 0.8, false},
		{domain.CallNeutral, 0.1, true},
		{domain.CallNeutral, 0.49, true},
		{domain.CallNeutral, 2.0, false},
		{domain.CallNeutral, -2.0, false},
	}
	for _, tc := range cases {
		if got := e.Grade(tc.call, tc.pnl); got != tc.correct {
			t.Fatalf("grade(%s, %f) = %v, want %v", tc.call, tc.pnl, got, tc.correct)
		}
	}
}

func TestColdStartWeightIsExactlyOne(t *testing.T) {
	perf := NewComponent("momentum.rsi14", domain.KindSpecialist, time.Now())
	if perf.Weight != 1.0 {
		t.Fatalf("cold start weight must be 1.0, got %f", perf.Weight)
	}
	if perf.TotalPredictions != 0 || len(perf.History) != 0 {
		t.Fatal("cold start entry must have no history")
	}
}

func TestApplyRollingWindowCap(t *testing.T) {
	e := NewEvolution(0, 0)
	perf := NewComponent("x", domain.KindSpecialist, time.Now())
	now := time.Now()
	for i := 0; i < 150; i++ {
		correct := i >= 50 // first 50 wrong, then 100 right
		perf = e.Apply(perf, correct, 1, now.Add(time.Duration(i)*time.Minute))
	}
	if len(perf.History) != HistoryCapacity {
		t.Fatalf("history length %d, want %d", len(perf.History), HistoryCapacity)
	}
	if perf.TotalPredictions != 150 {
		t.Fatalf("total predictions %d, want 150", perf.TotalPredictions)
	}
	// accuracy computed over the retained window only: the 50 misses were evicted
	if perf.Accuracy != 1.0 {
		t.Fatalf("accuracy over retained window should be 1.0, got %f", perf.Accuracy)
	}
	// newest-first ordering
	if !perf.History[0].RecordedAt.After(perf.History[1].RecordedAt) {
		t.Fatal("history must be newest-first")
	}
}

func TestApplyWeightBoundsUnderAnySequence(t *testing.T) {
	e := NewEvolution(0.25, 0)
	perf := NewComponent("x", domain.KindDirector, time.Now())
	seq := []bool{true, true, true, false, true, false, false, false, false, true}
	for i := 0; i < 30; i++ {
		perf = e.Apply(perf, seq[i%len(seq)], float64(i), time.Now())
		if perf.Weight < MinWeight || perf.Weight > MaxWeight {
			t.Fatalf("weight %f escaped [%f, %f]", perf.Weight, MinWeight, MaxWeight)
		}
		if perf.TrustScore < 0 || perf.TrustScore > 1 {
			t.Fatalf("trust %f escaped [0,1]", perf.TrustScore)
		}
		if want := WeightFromTrust(perf.TrustScore); perf.Weight != want {
			t.Fatalf("weight %f not derived from trust (want %f)", perf.Weight, want)
		}
	}
}

func TestPerfectWindowOutranksMixedWindow(t *testing.T) {
	e := NewEvolution(0, 0)
	now := time.Now()

	perfect := NewComponent("a", domain.KindSpecialist, now)
	for i := 0; i < 10; i++ {
		perfect = e.Apply(perfect, true, 1, now)
	}

	mixed := NewComponent("b", domain.KindSpecialist, now)
	for i := 0; i < 10; i++ {
		mixed = e.Apply(mixed, i%2 == 0, 1, now)
	}

	if perfect.TrustScore <= mixed.TrustScore {
		t.Fatalf("10/10 trust %f should beat 5/10 trust %f", perfect.TrustScore, mixed.TrustScore)
	}
	if perfect.Weight <= mixed.Weight {
		t.Fatalf("10/10 weight %f should beat 5/10 weight %f", perfect.Weight, mixed.Weight)
	}
	if perfect.Accuracy != 1.0 || mixed.Accuracy != 0.5 {
		t.Fatalf("accuracies %f / %f, want 1.0 / 0.5", perfect.Accuracy, mixed.Accuracy)
	}
}

func TestSingleOutlierCannotSwingTrust(t *testing.T) {
	e := NewEvolution(0, 0)
	perf := NewComponent("x", domain.KindSpecialist, time.Now())
	for i := 0; i < 50; i++ {
		perf = e.Apply(perf, true, 1, time.Now())
	}
	before := perf.TrustScore
	perf = e.Apply(perf, false, 50, time.Now()) // one large miss
	drop := before - perf.TrustScore
	if drop <= 0 {
		t.Fatal("a miss must lower trust")
	}
	if drop > DefaultTrustAlpha {
		t.Fatalf("one outcome moved trust by %f, more than the EWMA step %f", drop, DefaultTrustAlpha)
	}
}

func TestWeightFromTrustClamp(t *testing.T) {
	if WeightFromTrust(0) != MinWeight {
		t.Fatal("zero trust should floor at MinWeight")
	}
	if WeightFromTrust(1) != MaxWeight {
		t.Fatal("full trust should cap at MaxWeight")
	}
	if WeightFromTrust(-5) != MinWeight || WeightFromTrust(9) != MaxWeight {
		t.Fatal("out-of-range trust should clamp")
	}
}
