package job

import (
	"context"
	"log"
	"math"
	"time"

	"signal-council/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// PnLSource reports the realized percent move for a decision whose
// evaluation window has closed.
type PnLSource interface {
	RealizedPnL(ctx context.Context, decision domain.Decision) (float64, error)
}

type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, decisionID string, result domain.OutcomeResult, pnl float64) error
}

type PendingLister interface {
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]domain.Decision, error)
}

// OutcomeResolverJob sweeps decisions that have been pending past the
// outcome deadline, fetches their realized pnl and seals them through the
// engine. One decision failing never aborts the batch.
type OutcomeResolverJob struct {
	tracer        trace.Tracer
	decisions     PendingLister
	source        PnLSource
	recorder      OutcomeRecorder
	pollInterval  time.Duration
	batchSize     int
	deadline      time.Duration
	flatThreshold float64
}

func NewOutcomeResolverJob(tracer trace.Tracer, decisions PendingLister, source PnLSource, recorder OutcomeRecorder, pollInterval, deadline time.Duration, batchSize int) *OutcomeResolverJob {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Minute
	}
	if deadline <= 0 {
		deadline = 24 * time.Hour
	}
	if batchSize <= 0 {
		batchSize = 40
	}
	return &OutcomeResolverJob{
		tracer:        tracer,
		decisions:     decisions,
		source:        source,
		recorder:      recorder,
		pollInterval:  pollInterval,
		batchSize:     batchSize,
		deadline:      deadline,
		flatThreshold: 0.5,
	}
}

func (j *OutcomeResolverJob) Start(ctx context.Context) {
	if j.source == nil {
		log.Println("Outcome resolver job disabled: no pnl source")
		<-ctx.Done()
		return
	}
	j.runOnce(ctx)
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *OutcomeResolverJob) runOnce(ctx context.Context) {
	ctx, span := j.tracer.Start(ctx, "outcome-resolver-job.run-once")
	defer span.End()

	cutoff := time.Now().UTC().Add(-j.deadline)
	pending, err := j.decisions.ListPendingBefore(ctx, cutoff, j.batchSize)
	if err != nil {
		log.Printf("Outcome resolver list error: %v", err)
		return
	}

	sealed := 0
	for _, decision := range pending {
		pnl, err := j.source.RealizedPnL(ctx, decision)
		if err != nil {
			log.Printf("Outcome resolver pnl error for %s: %v", decision.ID, err)
			continue
		}
		result := j.resultFor(decision.FinalAction, pnl)
		if err := j.recorder.RecordOutcome(ctx, decision.ID, result, pnl); err != nil {
			log.Printf("Outcome resolver seal error for %s: %v", decision.ID, err)
			continue
		}
		sealed++
	}
	if sealed > 0 {
		log.Printf("Outcome resolver sealed %d decisions", sealed)
	}
}

// resultFor labels the trade outcome from the decision's own direction. A
// flat move is neutral no matter what was recommended.
func (j *OutcomeResolverJob) resultFor(action domain.FinalAction, pnl float64) domain.OutcomeResult {
	if math.Abs(pnl) < j.flatThreshold {
		return domain.OutcomeNeutral
	}
	switch action {
	case domain.ActionStrongBuy, domain.ActionBuy:
		if pnl > 0 {
			return domain.OutcomeWin
		}
		return domain.OutcomeLoss
	case domain.ActionStrongSell, domain.ActionSell:
		if pnl < 0 {
			return domain.OutcomeWin
		}
		return domain.OutcomeLoss
	default:
		return domain.OutcomeNeutral
	}
}
