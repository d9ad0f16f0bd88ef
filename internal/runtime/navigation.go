package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/schema"
)

// Advance validates the fields of the current stage and moves forward by
// one stage only when all of them pass. On failure the state keeps its stage
// and carries the errors. On the last stage it does nothing: leaving the last
// stage is what Submit is for.
func (c *Controller) Advance(ctx context.Context, state *domain.State) (*domain.State, schema.Verdict, error) {
	if state.Status == domain.StatusSubmitted {
		return nil, schema.Verdict{}, domain.ErrSessionSubmitted
	}

	next := state.Clone()
	next.CurrentStage = c.clamp(state.CurrentStage)
	current := next.CurrentStage

	if current == c.Last() {
		return next, schema.Verdict{Valid: true}, nil
	}

	fields := c.stages[current-1].Fields
	verdict := c.validator.ValidateFields(next.Values, fields...)
	c.emitValidation(ctx, next, domain.ScopeStage, current, verdict)

	if !verdict.Valid {
		next.Errors = verdict.Errors
		c.logger.Debug("advance rejected",
			"session_id", next.SessionID,
			"stage", current,
			"fields", verdict.FailedFields(),
		)
		return next, verdict, nil
	}

	next.Errors = nil
	c.move(ctx, next, current+1)
	return next, verdict, nil
}

// Back moves to the previous stage without validating anything.
// On stage 1 it does nothing.
func (c *Controller) Back(ctx context.Context, state *domain.State) (*domain.State, error) {
	if state.Status == domain.StatusSubmitted {
		return nil, domain.ErrSessionSubmitted
	}

	next := state.Clone()
	next.CurrentStage = c.clamp(state.CurrentStage)
	if next.CurrentStage > 1 {
		next.Errors = nil
		c.move(ctx, next, next.CurrentStage-1)
	}
	return next, nil
}

// Submit validates the entire record, including stages already left, and
// hands the normalized record to the submission handler when it passes.
// It is only allowed on the last stage. A handler failure leaves the
// session active so the caller may retry.
func (c *Controller) Submit(ctx context.Context, state *domain.State) (*domain.State, schema.Verdict, error) {
	if state.Status == domain.StatusSubmitted {
		return nil, schema.Verdict{}, domain.ErrSessionSubmitted
	}
	if c.clamp(state.CurrentStage) != c.Last() {
		return nil, schema.Verdict{}, fmt.Errorf("session %s on stage %d: %w", state.SessionID, state.CurrentStage, domain.ErrNotFinalStage)
	}

	next := state.Clone()
	verdict := c.validator.Validate(next.Values)
	c.emitValidation(ctx, next, domain.ScopeRecord, next.CurrentStage, verdict)

	if !verdict.Valid {
		next.Errors = verdict.Errors
		c.emitSubmit(ctx, next, verdict)
		c.logger.Info("submission rejected",
			"session_id", next.SessionID,
			"fields", verdict.FailedFields(),
		)
		return next, verdict, nil
	}

	if c.handler != nil {
		if err := c.handler.Submit(ctx, next, verdict.Record); err != nil {
			return nil, verdict, fmt.Errorf("submission handler: %w", err)
		}
	}

	next.Errors = nil
	next.Status = domain.StatusSubmitted
	c.emitSubmit(ctx, next, verdict)
	c.emitStage(ctx, c.hooks.OnStageLeave, domain.EventStageLeave, next, next.CurrentStage)
	c.logger.Info("submission accepted", "session_id", next.SessionID)
	return next, verdict, nil
}

func (c *Controller) move(ctx context.Context, state *domain.State, to int) {
	from := state.CurrentStage
	c.emitStage(ctx, c.hooks.OnStageLeave, domain.EventStageLeave, state, from)

	state.CurrentStage = to
	state.History = append(state.History, to)

	c.logger.Debug("stage changed", "session_id", state.SessionID, "from", from, "to", to)
	c.emitStage(ctx, c.hooks.OnStageEnter, domain.EventStageEnter, state, to)
}
