package specialist

import (
	"testing"

	"signal-council/internal/domain"
)

func TestDefaultGroupsShape(t *testing.T) {
	groups := DefaultGroups()
	if len(groups) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(groups))
	}
	total := 0
	for _, g := range groups {
		if len(g.Specialists) != 7 {
			t.Fatalf("group %s has %d specialists, expected 7", g.ID, len(g.Specialists))
		}
		total += len(g.Specialists)
	}
	if total != 35 {
		t.Fatalf("expected 35 specialists, got %d", total)
	}
}

func TestRegistryStableUniqueIDs(t *testing.T) {
	r := NewRegistry(DefaultGroups())
	if r.Len() != 35 {
		t.Fatalf("expected 35 registered ids, got %d", r.Len())
	}
	seen := map[string]bool{}
	for _, id := range r.IDs() {
		if seen[id] {
			t.Fatalf("duplicate specialist id %s", id)
		}
		seen[id] = true
		if _, ok := r.Get(id); !ok {
			t.Fatalf("id %s not resolvable", id)
		}
	}
}

func TestAllSpecialistsNeutralOnEmptyBundle(t *testing.T) {
	for _, g := range DefaultGroups() {
		for _, s := range g.Specialists {
			score, call := s.Evaluate(domain.SignalBundle{})
			if score != 50 || call != domain.CallNeutral {
				t.Fatalf("%s on empty bundle: got (%f, %s), want (50, neutral)", s.ID(), score, call)
			}
		}
	}
}

func TestAllSpecialistsTolerateMalformedFields(t *testing.T) {
	// every field present but with a hostile type or shape
	bundle := domain.SignalBundle{
		"closes":                "not-a-series",
		"volumes":               []any{"a", "b"},
		"news_sentiment":        "very bullish",
		"social_sentiment":      map[string]any{},
		"social_volume_z":       nil,
		"fear_greed":            -40.0,
		"reddit_bull_ratio":     7.0,
		"analyst_revision":      []float64{1},
		"headline_shock":        "bad",
		"insider_net_buys":      struct{}{},
		"put_call_ratio":        -1.0,
		"iv_skew":               "steep",
		"oi_change":             true,
		"block_trade_imbalance": "sell",
		"feature_window":        [][]float64{{1, 2}, {3}},
		"pe_ratio":              -5.0,
		"sector_pe":             0.0,
		"revenue_growth":        "10%",
		"earnings_surprise":     nil,
		"debt_to_equity":        -2.0,
		"fcf_yield":             "high",
		"filing_activity_z":     "3",
		"guidance_delta":        []any{},
	}
	for _, g := range DefaultGroups() {
		for _, s := range g.Specialists {
			score, call := s.Evaluate(bundle)
			if score < 0 || score > 100 {
				t.Fatalf("%s produced out-of-range score %f", s.ID(), score)
			}
			if !call.IsValid() {
				t.Fatalf("%s produced invalid call %q", s.ID(), call)
			}
		}
	}
}

func TestMomentumSpecialistsOnTrendingSeries(t *testing.T) {
	closes := make([]float64, 60)
	volumes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*1.5
		volumes[i] = 1000 + float64(i)*10
	}
	bundle := domain.SignalBundle{"closes": closes, "volumes": volumes}

	score, call := evalROC10(bundle)
	if call != domain.CallBullish {
		t.Fatalf("steady uptrend should be bullish roc, got (%f, %s)", score, call)
	}
	score, call = evalStreak(bundle)
	if call != domain.CallBullish {
		t.Fatalf("unbroken up streak should be bullish, got (%f, %s)", score, call)
	}
}

func TestSentimentFearGreedMapping(t *testing.T) {
	score, call := evalFearGreed(domain.SignalBundle{"fear_greed": 90.0})
	if call != domain.CallBullish || score <= 50 {
		t.Fatalf("greed should vote bullish, got (%f, %s)", score, call)
	}
	score, call = evalFearGreed(domain.SignalBundle{"fear_greed": 10.0})
	if call != domain.CallBearish || score >= 50 {
		t.Fatalf("fear should vote bearish, got (%f, %s)", score, call)
	}
	_, call = evalFearGreed(domain.SignalBundle{"fear_greed": 150.0})
	if call != domain.CallNeutral {
		t.Fatal("out-of-range index should fall back to neutral")
	}
}

func TestHeadlineShockOnlyDragsDown(t *testing.T) {
	score, call := evalHeadlineShock(domain.SignalBundle{"headline_shock": 1.0})
	if call != domain.CallBearish || score >= 50 {
		t.Fatalf("max shock should be bearish, got (%f, %s)", score, call)
	}
	_, call = evalHeadlineShock(domain.SignalBundle{"headline_shock": -0.5})
	if call != domain.CallNeutral {
		t.Fatal("negative shock should be neutral")
	}
}

func TestVoteBandsAndClamping(t *testing.T) {
	score, call := vote(120)
	if score != 100 || call != domain.CallBullish {
		t.Fatalf("expected clamp to (100, bullish), got (%f, %s)", score, call)
	}
	score, call = vote(-3)
	if score != 0 || call != domain.CallBearish {
		t.Fatalf("expected clamp to (0, bearish), got (%f, %s)", score, call)
	}
	_, call = vote(50)
	if call != domain.CallNeutral {
		t.Fatal("mid-band score should be neutral")
	}
}
