package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"signal-council/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

const upsertComponentSQL = `
INSERT INTO component_performance
    (component_id, kind, total_predictions, history, accuracy, trust_score, weight, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (component_id) DO UPDATE SET
    total_predictions = EXCLUDED.total_predictions,
    history = EXCLUDED.history,
    accuracy = EXCLUDED.accuracy,
    trust_score = EXCLUDED.trust_score,
    weight = EXCLUDED.weight,
    updated_at = EXCLUDED.updated_at`

const componentColumns = `component_id, kind, total_predictions, history, accuracy, trust_score, weight, updated_at`

type PerformanceRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewPerformanceRepository(pool PgxPool, tracer trace.Tracer) *PerformanceRepository {
	return &PerformanceRepository{pool: pool, tracer: tracer}
}

func (r *PerformanceRepository) GetComponent(ctx context.Context, id string) (*domain.ComponentPerformance, error) {
	ctx, span := r.tracer.Start(ctx, "performance-repo.get-component")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`SELECT `+componentColumns+` FROM component_performance WHERE component_id = $1`, id)
	c, err := scanComponent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownComponent, id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListComponents returns the whole board, heaviest weight first so callers
// render the current pecking order without sorting.
func (r *PerformanceRepository) ListComponents(ctx context.Context) ([]domain.ComponentPerformance, error) {
	ctx, span := r.tracer.Start(ctx, "performance-repo.list-components")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT `+componentColumns+` FROM component_performance ORDER BY weight DESC, component_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []domain.ComponentPerformance
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, *c)
	}
	return components, rows.Err()
}

func (r *PerformanceRepository) ListRecentAudit(ctx context.Context, limit int) ([]domain.EvolutionAuditEntry, error) {
	ctx, span := r.tracer.Start(ctx, "performance-repo.list-recent-audit")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, decision_id, component_id, correct, magnitude,
		        trust_before, trust_after, weight_before, weight_after, recorded_at
		 FROM weight_evolution_audit
		 ORDER BY id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.EvolutionAuditEntry
	for rows.Next() {
		var a domain.EvolutionAuditEntry
		if err := rows.Scan(
			&a.ID, &a.DecisionID, &a.ComponentID, &a.Correct, &a.Magnitude,
			&a.TrustBefore, &a.TrustAfter, &a.WeightBefore, &a.WeightAfter, &a.RecordedAt,
		); err != nil {
			return nil, err
		}
		a.RecordedAt = a.RecordedAt.UTC()
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

func scanComponent(row pgx.Row) (*domain.ComponentPerformance, error) {
	var c domain.ComponentPerformance
	var history []byte
	if err := row.Scan(
		&c.ComponentID, &c.Kind, &c.TotalPredictions, &history,
		&c.Accuracy, &c.TrustScore, &c.Weight, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &c.History); err != nil {
		return nil, fmt.Errorf("decode history for %s: %w", c.ComponentID, err)
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
