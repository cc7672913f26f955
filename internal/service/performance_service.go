package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"signal-council/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	leaderboardCacheKey  = "perf:leaderboard"
	componentCachePrefix = "perf:component:"
)

// PerformanceReader is the engine-facing read surface this service caches.
type PerformanceReader interface {
	GetComponentPerformance(ctx context.Context, componentID string) (*domain.ComponentPerformance, error)
	ListComponentPerformance(ctx context.Context) ([]domain.ComponentPerformance, error)
}

type AuditReader interface {
	ListRecentAudit(ctx context.Context, limit int) ([]domain.EvolutionAuditEntry, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// PerformanceService fronts the ledger reads with a short-TTL Redis cache.
// The board changes only when an outcome seals, so a small TTL absorbs the
// dashboard polling without serving stale weights for long.
type PerformanceService struct {
	tracer trace.Tracer
	reader PerformanceReader
	audit  AuditReader
	redis  RedisClient
	ttl    time.Duration
}

func NewPerformanceService(tracer trace.Tracer, reader PerformanceReader, audit AuditReader, redisClient RedisClient, ttl time.Duration) *PerformanceService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PerformanceService{
		tracer: tracer,
		reader: reader,
		audit:  audit,
		redis:  redisClient,
		ttl:    ttl,
	}
}

// Leaderboard returns every component's ledger entry, heaviest first.
func (s *PerformanceService) Leaderboard(ctx context.Context) ([]domain.ComponentPerformance, error) {
	ctx, span := s.tracer.Start(ctx, "performance-service.leaderboard")
	defer span.End()

	if s.redis != nil {
		var cached []domain.ComponentPerformance
		if ok := s.readCache(ctx, leaderboardCacheKey, &cached); ok {
			return cached, nil
		}
	}

	components, err := s.reader.ListComponentPerformance(ctx)
	if err != nil {
		return nil, err
	}
	if s.redis != nil {
		s.writeCache(ctx, leaderboardCacheKey, components)
	}
	return components, nil
}

func (s *PerformanceService) Component(ctx context.Context, componentID string) (*domain.ComponentPerformance, error) {
	ctx, span := s.tracer.Start(ctx, "performance-service.component")
	defer span.End()

	key := componentCachePrefix + componentID
	if s.redis != nil {
		var cached domain.ComponentPerformance
		if ok := s.readCache(ctx, key, &cached); ok {
			return &cached, nil
		}
	}

	component, err := s.reader.GetComponentPerformance(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if s.redis != nil {
		s.writeCache(ctx, key, component)
	}
	return component, nil
}

// RecentAudit is served straight from Postgres; audit is an inspection
// surface, not a hot path.
func (s *PerformanceService) RecentAudit(ctx context.Context, limit int) ([]domain.EvolutionAuditEntry, error) {
	ctx, span := s.tracer.Start(ctx, "performance-service.recent-audit")
	defer span.End()

	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.audit.ListRecentAudit(ctx, limit)
}

func (s *PerformanceService) readCache(ctx context.Context, key string, out any) bool {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("redis cache read error: %v", err)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("redis cache decode error for %s: %v", key, err)
		return false
	}
	return true
}

func (s *PerformanceService) writeCache(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		log.Printf("redis cache write error for %s: %v", key, err)
	}
}
