package runtime

import (
	"context"

	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/schema"
)

func (c *Controller) base(t domain.EventType, state *domain.State) domain.EventBase {
	b := domain.EventBase{Timestamp: c.now(), Type: t}
	if state != nil {
		b.SessionID = state.SessionID
	}
	return b
}

func (c *Controller) emitStage(ctx context.Context, hook func(context.Context, *domain.StageEvent), t domain.EventType, state *domain.State, stage int) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.StageEvent{
		EventBase: c.base(t, state),
		Stage:     stage,
		StageName: c.stages[stage-1].Name,
	})
}

func (c *Controller) emitValidation(ctx context.Context, state *domain.State, scope domain.ValidationScope, stage int, v schema.Verdict) {
	if c.hooks.OnValidation == nil {
		return
	}
	c.hooks.OnValidation(ctx, &domain.ValidationEvent{
		EventBase: c.base(domain.EventValidation, state),
		Scope:     scope,
		Stage:     stage,
		Valid:     v.Valid,
		Errors:    v.Errors,
	})
}

func (c *Controller) emitSubmit(ctx context.Context, state *domain.State, v schema.Verdict) {
	if c.hooks.OnSubmit == nil {
		return
	}
	c.hooks.OnSubmit(ctx, &domain.SubmitEvent{
		EventBase: c.base(domain.EventSubmit, state),
		Accepted:  v.Valid,
		Errors:    v.Errors,
	})
}
