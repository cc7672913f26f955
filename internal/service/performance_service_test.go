package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"signal-council/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type mockReader struct {
	components []domain.ComponentPerformance
	listCalls  int
	getCalls   int
}

func (m *mockReader) ListComponentPerformance(ctx context.Context) ([]domain.ComponentPerformance, error) {
	m.listCalls++
	return m.components, nil
}

func (m *mockReader) GetComponentPerformance(ctx context.Context, id string) (*domain.ComponentPerformance, error) {
	m.getCalls++
	for _, c := range m.components {
		if c.ComponentID == id {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrUnknownComponent
}

type mockAudit struct {
	lastLimit int
}

func (m *mockAudit) ListRecentAudit(ctx context.Context, limit int) ([]domain.EvolutionAuditEntry, error) {
	m.lastLimit = limit
	return nil, nil
}

type fakeRedis struct {
	data map[string][]byte
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = append([]byte(nil), v...)
	case string:
		f.data[key] = []byte(v)
	default:
		bytes, _ := json.Marshal(v)
		f.data[key] = bytes
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(string(v), nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func TestLeaderboardCachesOnMiss(t *testing.T) {
	t.Parallel()

	reader := &mockReader{components: []domain.ComponentPerformance{
		{ComponentID: "momentum.rsi14", Weight: 1.4},
		{ComponentID: "director.trend", Weight: 0.9},
	}}
	cache := newFakeRedis()
	svc := NewPerformanceService(testTracer, reader, &mockAudit{}, cache, time.Minute)

	board, err := svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(board) != 2 || reader.listCalls != 1 {
		t.Fatalf("expected one backing read, got %d calls and %d rows", reader.listCalls, len(board))
	}
	if _, ok := cache.data[leaderboardCacheKey]; !ok {
		t.Fatal("leaderboard not cached")
	}

	board, err = svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.listCalls != 1 {
		t.Fatalf("cache hit should not hit the reader again, got %d calls", reader.listCalls)
	}
	if len(board) != 2 {
		t.Fatalf("cached board lost rows: %d", len(board))
	}
}

func TestComponentCacheHit(t *testing.T) {
	t.Parallel()

	reader := &mockReader{components: []domain.ComponentPerformance{
		{ComponentID: "flow.obv", TrustScore: 0.6, Weight: 1.4},
	}}
	cache := newFakeRedis()
	svc := NewPerformanceService(testTracer, reader, &mockAudit{}, cache, time.Minute)

	first, err := svc.Component(context.Background(), "flow.obv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Component(context.Background(), "flow.obv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.getCalls != 1 {
		t.Fatalf("expected one backing read, got %d", reader.getCalls)
	}
	if first.Weight != second.Weight || second.ComponentID != "flow.obv" {
		t.Fatalf("cached component mismatch: %+v vs %+v", first, second)
	}
}

func TestComponentWorksWithoutRedis(t *testing.T) {
	t.Parallel()

	reader := &mockReader{components: []domain.ComponentPerformance{
		{ComponentID: "flow.obv"},
	}}
	svc := NewPerformanceService(testTracer, reader, &mockAudit{}, nil, time.Minute)

	if _, err := svc.Component(context.Background(), "flow.obv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Leaderboard(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecentAuditClampsLimit(t *testing.T) {
	t.Parallel()

	audit := &mockAudit{}
	svc := NewPerformanceService(testTracer, &mockReader{}, audit, nil, time.Minute)

	if _, err := svc.RecentAudit(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audit.lastLimit != 100 {
		t.Fatalf("zero limit should clamp to 100, got %d", audit.lastLimit)
	}
	if _, err := svc.RecentAudit(context.Background(), 9999); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audit.lastLimit != 100 {
		t.Fatalf("oversized limit should clamp to 100, got %d", audit.lastLimit)
	}
	if _, err := svc.RecentAudit(context.Background(), 25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audit.lastLimit != 25 {
		t.Fatalf("in-range limit should pass through, got %d", audit.lastLimit)
	}
}
