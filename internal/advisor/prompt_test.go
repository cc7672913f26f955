package advisor

import (
	"strings"
	"testing"

	"signal-council/internal/domain"
)

func TestFormatDecisionContextIncludesEveryVote(t *testing.T) {
	d := sampleDecision()
	out := FormatDecisionContext(d)

	for _, want := range []string{"ACME", "buy", "momentum", "trend", "flow", "flow.obv"} {
		if !strings.Contains(out, want) {
			t.Fatalf("context missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "confidence 82.0") {
		t.Fatalf("context missing confidence:\n%s", out)
	}
}

func TestFallbackExplanationNamesDissenters(t *testing.T) {
	out := FallbackExplanation(sampleDecision())
	if !strings.Contains(out, "flow (bearish)") {
		t.Fatalf("expected dissenting director named, got %q", out)
	}
	if !strings.Contains(out, "momentum") {
		t.Fatalf("expected driving directors named, got %q", out)
	}
}

func TestFallbackExplanationUnanimous(t *testing.T) {
	d := sampleDecision()
	for i := range d.Verdicts {
		d.Verdicts[i].Call = domain.CallBullish
	}
	out := FallbackExplanation(d)
	if !strings.Contains(out, "unanimous") {
		t.Fatalf("expected unanimity noted, got %q", out)
	}
}
