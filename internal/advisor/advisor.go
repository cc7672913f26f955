// Package advisor turns a sealed or pending decision into a short natural
// language rationale. The LLM is optional; without it (or when it fails) a
// deterministic local summary is produced from the verdicts themselves.
package advisor

import (
	"context"
	"fmt"
	"log"

	"signal-council/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type ExplainerService struct {
	tracer trace.Tracer
	llm    LLMClient
	model  string
}

func NewExplainerService(tracer trace.Tracer, llm LLMClient, model string) *ExplainerService {
	return &ExplainerService{tracer: tracer, llm: llm, model: model}
}

func (s *ExplainerService) ExplainDecision(ctx context.Context, decision *domain.Decision) (string, error) {
	ctx, span := s.tracer.Start(ctx, "explainer.explain-decision")
	defer span.End()
	span.SetAttributes(attribute.String("decision_id", decision.ID))

	if s.llm == nil {
		return FallbackExplanation(decision), nil
	}

	reply, err := s.callLLM(ctx, decision)
	if err != nil {
		span.RecordError(err)
		log.Printf("explainer LLM call failed, using local summary: %v", err)
		return FallbackExplanation(decision), nil
	}
	return reply, nil
}

func (s *ExplainerService) callLLM(ctx context.Context, decision *domain.Decision) (string, error) {
	ctx, span := s.tracer.Start(ctx, "explainer.llm-call")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", s.model))

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(explainerSystemPrompt),
			openai.UserMessage(FormatDecisionContext(decision)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
