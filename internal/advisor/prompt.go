package advisor

import (
	"fmt"
	"strings"

	"signal-council/internal/domain"
)

const explainerSystemPrompt = `You explain equity trading recommendations produced by a council of weighted voting strategies. You receive the full breakdown of director verdicts and specialist votes for one decision.

Rules:
- Explain WHY the final action was chosen, from the votes and weights given. Never invent data.
- Name the directors that drove the call and any that dissented.
- Mention confidence and what the score dispersion implies.
- Two short paragraphs maximum. No financial advice disclaimers.`

func FormatDecisionContext(d *domain.Decision) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Decision %s for %s (%s)\n", d.ID, d.Ticker, d.SignalType))
	sb.WriteString(fmt.Sprintf("Final action: %s | composite score %.1f (%s) | confidence %.1f | position hint %.2f\n",
		d.FinalAction, d.CompositeScore, d.CompositeCall, d.Confidence, d.PositionSizeHint))

	for _, v := range d.Verdicts {
		sb.WriteString(fmt.Sprintf("\nDirector %s: score %.1f, call %s, weight %.2f",
			v.DirectorID, v.AggregatedScore, v.Call, v.WeightUsed))
		if v.LowConfidence {
			sb.WriteString(" (low confidence, all specialists fell back)")
		}
		sb.WriteString("\n")
		for _, vote := range v.Votes {
			sb.WriteString(fmt.Sprintf("  %s: %.1f %s w=%.2f", vote.SpecialistID, vote.RawScore, vote.Call, vote.WeightUsed))
			if vote.Fallback {
				sb.WriteString(" [fallback]")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FallbackExplanation summarizes the decision without an LLM. It reads only
// what the verdicts already say, so it can never contradict the stored data.
func FallbackExplanation(d *domain.Decision) string {
	agree := make([]string, 0, len(d.Verdicts))
	dissent := make([]string, 0, len(d.Verdicts))
	for _, v := range d.Verdicts {
		if v.Call == d.CompositeCall {
			agree = append(agree, v.DirectorID)
		} else {
			dissent = append(dissent, fmt.Sprintf("%s (%s)", v.DirectorID, v.Call))
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s on %s: composite score %.1f with a %s lean, confidence %.0f/100.",
		strings.ToUpper(string(d.FinalAction)), d.Ticker, d.CompositeScore, d.CompositeCall, d.Confidence))
	if len(agree) > 0 {
		sb.WriteString(fmt.Sprintf(" Driven by %s.", strings.Join(agree, ", ")))
	}
	if len(dissent) > 0 {
		sb.WriteString(fmt.Sprintf(" Dissenting: %s.", strings.Join(dissent, ", ")))
	} else {
		sb.WriteString(" The council was unanimous.")
	}
	return sb.String()
}
