package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"signal-council/internal/domain"

	"github.com/openai/openai-go"
	"go.opentelemetry.io/otel/trace"
)

type stubLLMClient struct {
	response *openai.ChatCompletion
	err      error
	calls    int
}

func (s *stubLLMClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func sampleDecision() *domain.Decision {
	return &domain.Decision{
		ID:             "d-1",
		Ticker:         "ACME",
		SignalType:     "daily_scan",
		CompositeScore: 71.4,
		CompositeCall:  domain.CallBullish,
		FinalAction:    domain.ActionBuy,
		Confidence:     82,
		Verdicts: []domain.DirectorVerdict{
			{DirectorID: "momentum", AggregatedScore: 78, Call: domain.CallBullish, WeightUsed: 1.3},
			{DirectorID: "trend", AggregatedScore: 74, Call: domain.CallBullish, WeightUsed: 1.0},
			{DirectorID: "flow", AggregatedScore: 44, Call: domain.CallBearish, WeightUsed: 0.8,
				Votes: []domain.SpecialistVote{
					{SpecialistID: "flow.obv", RawScore: 40, Call: domain.CallBearish, WeightUsed: 0.8},
				}},
		},
	}
}

func TestExplainDecisionHappyPath(t *testing.T) {
	llm := &stubLLMClient{
		response: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "momentum and trend carried the buy"}},
			},
		},
	}
	svc := NewExplainerService(trace.NewNoopTracerProvider().Tracer("test"), llm, "gpt-4o-mini")

	reply, err := svc.ExplainDecision(context.Background(), sampleDecision())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "momentum and trend carried the buy" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if llm.calls != 1 {
		t.Fatalf("expected one LLM call, got %d", llm.calls)
	}
}

func TestExplainDecisionFallsBackOnLLMError(t *testing.T) {
	llm := &stubLLMClient{err: errors.New("api down")}
	svc := NewExplainerService(trace.NewNoopTracerProvider().Tracer("test"), llm, "gpt-4o-mini")

	reply, err := svc.ExplainDecision(context.Background(), sampleDecision())
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if !strings.Contains(reply, "ACME") || !strings.Contains(reply, "flow") {
		t.Fatalf("fallback should summarize the verdicts, got %q", reply)
	}
}

func TestExplainDecisionWithoutLLM(t *testing.T) {
	svc := NewExplainerService(trace.NewNoopTracerProvider().Tracer("test"), nil, "")

	reply, err := svc.ExplainDecision(context.Background(), sampleDecision())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a local summary")
	}
}

func TestExplainDecisionEmptyChoicesFallsBack(t *testing.T) {
	llm := &stubLLMClient{response: &openai.ChatCompletion{}}
	svc := NewExplainerService(trace.NewNoopTracerProvider().Tracer("test"), llm, "gpt-4o-mini")

	reply, err := svc.ExplainDecision(context.Background(), sampleDecision())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "BUY") {
		t.Fatalf("expected local summary, got %q", reply)
	}
}
