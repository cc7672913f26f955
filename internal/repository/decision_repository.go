package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"signal-council/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

// PgxPool is the slice of pgxpool.Pool the repositories use; tests swap in
// fakes.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const decisionColumns = `id, ticker, signal_type, created_at, verdicts, composite_score,
	composite_call, final_action, confidence, position_size_hint, status`

type DecisionRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewDecisionRepository(pool PgxPool, tracer trace.Tracer) *DecisionRepository {
	return &DecisionRepository{pool: pool, tracer: tracer}
}

func (r *DecisionRepository) InsertDecision(ctx context.Context, decision domain.Decision) error {
	ctx, span := r.tracer.Start(ctx, "decision-repo.insert-decision")
	defer span.End()

	verdicts, err := json.Marshal(decision.Verdicts)
	if err != nil {
		return fmt.Errorf("encode verdicts: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO decisions (`+decisionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		decision.ID, decision.Ticker, decision.SignalType, decision.CreatedAt, verdicts,
		decision.CompositeScore, decision.CompositeCall, decision.FinalAction,
		decision.Confidence, decision.PositionSizeHint, decision.Status,
	)
	return err
}

func (r *DecisionRepository) GetDecision(ctx context.Context, id string) (*domain.Decision, error) {
	ctx, span := r.tracer.Start(ctx, "decision-repo.get-decision")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`SELECT `+decisionColumns+` FROM decisions WHERE id = $1`, id)
	decision, err := scanDecision(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDecision, id)
	}
	if err != nil {
		return nil, err
	}
	return decision, nil
}

func (r *DecisionRepository) ListRecent(ctx context.Context, limit int) ([]domain.Decision, error) {
	ctx, span := r.tracer.Start(ctx, "decision-repo.list-recent")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT `+decisionColumns+` FROM decisions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDecisions(rows)
}

func (r *DecisionRepository) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]domain.Decision, error) {
	ctx, span := r.tracer.Start(ctx, "decision-repo.list-pending-before")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT `+decisionColumns+`
		 FROM decisions
		 WHERE status = 'pending' AND created_at < $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		cutoff, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDecisions(rows)
}

func (r *DecisionRepository) GetOutcome(ctx context.Context, decisionID string) (*domain.Outcome, error) {
	ctx, span := r.tracer.Start(ctx, "decision-repo.get-outcome")
	defer span.End()

	var o domain.Outcome
	err := r.pool.QueryRow(ctx,
		`SELECT decision_id, result, pnl, recorded_at FROM outcomes WHERE decision_id = $1`,
		decisionID,
	).Scan(&o.DecisionID, &o.Result, &o.PnL, &o.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: no outcome for %s", domain.ErrUnknownDecision, decisionID)
	}
	if err != nil {
		return nil, err
	}
	o.RecordedAt = o.RecordedAt.UTC()
	return &o, nil
}

// SealDecision commits the pending->sealed flip, the outcome row, the
// performance upserts and the audit rows in one transaction. The guarded
// UPDATE is the cross-process idempotence check: a decision sealed by a
// concurrent writer makes RowsAffected zero and the whole batch rolls back.
func (r *DecisionRepository) SealDecision(ctx context.Context, outcome domain.Outcome, updates []domain.ComponentPerformance, audit []domain.EvolutionAuditEntry) error {
	ctx, span := r.tracer.Start(ctx, "decision-repo.seal-decision")
	defer span.End()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE decisions SET status = 'sealed' WHERE id = $1 AND status = 'pending'`,
		outcome.DecisionID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var status domain.DecisionStatus
		err := tx.QueryRow(ctx, `SELECT status FROM decisions WHERE id = $1`, outcome.DecisionID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrUnknownDecision, outcome.DecisionID)
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", domain.ErrAlreadySealed, outcome.DecisionID)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO outcomes (decision_id, result, pnl, recorded_at) VALUES ($1, $2, $3, $4)`,
		outcome.DecisionID, outcome.Result, outcome.PnL, outcome.RecordedAt,
	); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		history, err := json.Marshal(u.History)
		if err != nil {
			return fmt.Errorf("encode history for %s: %w", u.ComponentID, err)
		}
		batch.Queue(upsertComponentSQL,
			u.ComponentID, u.Kind, u.TotalPredictions, history,
			u.Accuracy, u.TrustScore, u.Weight, u.UpdatedAt,
		)
	}
	for _, a := range audit {
		batch.Queue(
			`INSERT INTO weight_evolution_audit
			     (decision_id, component_id, correct, magnitude,
			      trust_before, trust_after, weight_before, weight_after, recorded_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			a.DecisionID, a.ComponentID, a.Correct, a.Magnitude,
			a.TrustBefore, a.TrustAfter, a.WeightBefore, a.WeightAfter, a.RecordedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < len(updates)+len(audit); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanDecision(row pgx.Row) (*domain.Decision, error) {
	var d domain.Decision
	var verdicts []byte
	if err := row.Scan(
		&d.ID, &d.Ticker, &d.SignalType, &d.CreatedAt, &verdicts, &d.CompositeScore,
		&d.CompositeCall, &d.FinalAction, &d.Confidence, &d.PositionSizeHint, &d.Status,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(verdicts, &d.Verdicts); err != nil {
		return nil, fmt.Errorf("decode verdicts for %s: %w", d.ID, err)
	}
	d.CreatedAt = d.CreatedAt.UTC()
	return &d, nil
}

func collectDecisions(rows pgx.Rows) ([]domain.Decision, error) {
	var decisions []domain.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, *d)
	}
	return decisions, rows.Err()
}
