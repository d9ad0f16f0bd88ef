package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/onboard/internal/logging"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/ports"
	"github.com/aretw0/onboard/pkg/schema"
)

// Validator is the part of the schema engine the controller depends on.
// *schema.Schema satisfies it.
type Validator interface {
	Fields() []string
	Validate(data map[string]any) schema.Verdict
	ValidateFields(data map[string]any, fields ...string) schema.Verdict
	ValidateField(name string, raw any, record map[string]any) error
}

// StageDefinitionError reports a stage set the controller refuses to run.
type StageDefinitionError struct {
	Stage  int
	Reason string
}

func (e *StageDefinitionError) Error() string {
	if e.Stage == 0 {
		return fmt.Sprintf("invalid stages: %s", e.Reason)
	}
	return fmt.Sprintf("invalid stage %d: %s", e.Stage, e.Reason)
}

// Controller drives a session through its stages.
// It keeps no session state of its own: every operation takes a State and
// returns a new one, leaving the input untouched.
type Controller struct {
	validator Validator
	stages    []domain.Stage
	hooks     domain.LifecycleHooks
	handler   ports.SubmissionHandler
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
// Repeated calls are merged in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithSubmissionHandler sets the recipient of accepted records.
func WithSubmissionHandler(h ports.SubmissionHandler) Option {
	return func(c *Controller) {
		c.handler = h
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController checks the stage definitions against the validator and
// returns a controller for them. Stages must be numbered 1..N in order,
// be non-empty, and only name fields the validator knows, each at most once.
func NewController(v Validator, stages []domain.Stage, opts ...Option) (*Controller, error) {
	if err := checkStages(v, stages); err != nil {
		return nil, err
	}

	c := &Controller{
		validator: v,
		stages:    cloneStages(stages),
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func checkStages(v Validator, stages []domain.Stage) error {
	if len(stages) == 0 {
		return &StageDefinitionError{Reason: "at least one stage is required"}
	}

	known := v.Fields()
	owner := make(map[string]int)
	for i, st := range stages {
		if st.Index != i+1 {
			return &StageDefinitionError{Stage: st.Index, Reason: fmt.Sprintf("expected index %d", i+1)}
		}
		if len(st.Fields) == 0 {
			return &StageDefinitionError{Stage: st.Index, Reason: "no fields"}
		}
		for _, f := range st.Fields {
			if !slices.Contains(known, f) {
				return &StageDefinitionError{Stage: st.Index, Reason: fmt.Sprintf("unknown field %q", f)}
			}
			if prev, dup := owner[f]; dup {
				return &StageDefinitionError{Stage: st.Index, Reason: fmt.Sprintf("field %q already in stage %d", f, prev)}
			}
			owner[f] = st.Index
		}
	}
	return nil
}

func cloneStages(stages []domain.Stage) []domain.Stage {
	out := make([]domain.Stage, len(stages))
	for i, st := range stages {
		st.Fields = slices.Clone(st.Fields)
		out[i] = st
	}
	return out
}

// Stages returns a copy of the stage definitions.
func (c *Controller) Stages() []domain.Stage {
	return cloneStages(c.stages)
}

// Last returns the index of the final stage.
func (c *Controller) Last() int {
	return len(c.stages)
}

// CurrentStage returns the stage the session is on.
func (c *Controller) CurrentStage(state *domain.State) domain.Stage {
	st := c.stages[c.clamp(state.CurrentStage)-1]
	st.Fields = slices.Clone(st.Fields)
	return st
}

// FieldsForStage returns the field names of stage n.
func (c *Controller) FieldsForStage(n int) ([]string, error) {
	if n < 1 || n > len(c.stages) {
		return nil, fmt.Errorf("stage %d of %d: %w", n, len(c.stages), domain.ErrStageOutOfRange)
	}
	return slices.Clone(c.stages[n-1].Fields), nil
}

// clamp keeps a stage index inside [1, N] for states built by hand.
func (c *Controller) clamp(n int) int {
	return max(1, min(n, len(c.stages)))
}

// Start creates the state of a new session on stage 1.
func (c *Controller) Start(ctx context.Context, sessionID string, initial map[string]any) (*domain.State, error) {
	state := domain.NewState(sessionID)
	for k, v := range initial {
		if v != nil {
			state.Values[k] = v
		}
	}

	c.logger.Debug("session started", "session_id", sessionID, "stage", 1)
	c.emitStage(ctx, c.hooks.OnStageEnter, domain.EventStageEnter, state, 1)
	return state, nil
}

// Update merges field edits into a copy of state. A nil value clears the
// field. Errors shown for edited fields are dropped since they are stale.
func (c *Controller) Update(ctx context.Context, state *domain.State, values map[string]any) (*domain.State, error) {
	if state.Status == domain.StatusSubmitted {
		return nil, domain.ErrSessionSubmitted
	}

	next := state.Clone()
	for k, v := range values {
		if v == nil {
			delete(next.Values, k)
		} else {
			next.Values[k] = v
		}
		delete(next.Errors, k)
	}
	if len(next.Errors) == 0 {
		next.Errors = nil
	}
	return next, nil
}
