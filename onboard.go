package onboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/onboard/internal/logging"
	"github.com/aretw0/onboard/internal/runtime"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/ports"
	"github.com/aretw0/onboard/pkg/registration"
	"github.com/aretw0/onboard/pkg/schema"
)

// Engine is the high-level entry point of the library.
// It couples the registration schema with the stage controller.
type Engine struct {
	schema     *schema.Schema
	controller *runtime.Controller
	stages     []domain.Stage
	hooks      domain.LifecycleHooks
	handler    ports.SubmissionHandler
	logger     *slog.Logger
	now        func() time.Time
}

var _ ports.Engine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Repeated calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides "now" for the age rule and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithSubmissionHandler sets who receives accepted records.
func WithSubmissionHandler(h ports.SubmissionHandler) Option {
	return func(e *Engine) {
		e.handler = h
	}
}

// WithStages replaces the default stage layout. Every stage must name
// fields of the registration schema.
func WithStages(stages ...domain.Stage) Option {
	return func(e *Engine) {
		e.stages = stages
	}
}

// New initializes a registration Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		stages: registration.Stages(),
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	eng.schema = registration.NewSchema(registration.WithClock(eng.now))

	ctrl, err := runtime.NewController(eng.schema, eng.stages,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithSubmissionHandler(eng.handler),
		runtime.WithClock(eng.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build controller: %w", err)
	}
	eng.controller = ctrl
	return eng, nil
}

// Stages returns the ordered stage definitions.
func (e *Engine) Stages() []domain.Stage {
	return e.controller.Stages()
}

// Schema returns the validation schema.
func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

// ValidateField checks one raw value. record, when non-nil, supplies the
// other fields for cross-field rules attached to name.
func (e *Engine) ValidateField(ctx context.Context, name string, raw any, record map[string]any) error {
	return e.controller.ValidateField(ctx, name, raw, record)
}

// ValidateSubset checks the named fields only.
func (e *Engine) ValidateSubset(ctx context.Context, record map[string]any, fields ...string) schema.Verdict {
	return e.controller.ValidateSubset(ctx, record, fields...)
}

// ValidateRecord checks the whole record.
func (e *Engine) ValidateRecord(ctx context.Context, record map[string]any) schema.Verdict {
	return e.controller.ValidateRecord(ctx, record)
}

// CurrentStage returns the stage the session is on.
func (e *Engine) CurrentStage(state *domain.State) domain.Stage {
	return e.controller.CurrentStage(state)
}

// FieldsForStage returns the field names of stage n.
func (e *Engine) FieldsForStage(n int) ([]string, error) {
	return e.controller.FieldsForStage(n)
}

// Start creates the initial state and triggers lifecycle hooks.
func (e *Engine) Start(ctx context.Context, sessionID string, initial map[string]any) (*domain.State, error) {
	return e.controller.Start(ctx, sessionID, initial)
}

// Update merges field edits into the state.
func (e *Engine) Update(ctx context.Context, state *domain.State, values map[string]any) (*domain.State, error) {
	return e.controller.Update(ctx, state, values)
}

// Advance moves to the next stage when the current one is valid.
func (e *Engine) Advance(ctx context.Context, state *domain.State) (*domain.State, schema.Verdict, error) {
	return e.controller.Advance(ctx, state)
}

// Back moves to the previous stage.
func (e *Engine) Back(ctx context.Context, state *domain.State) (*domain.State, error) {
	return e.controller.Back(ctx, state)
}

// Submit validates everything and hands the record off.
func (e *Engine) Submit(ctx context.Context, state *domain.State) (*domain.State, schema.Verdict, error) {
	return e.controller.Submit(ctx, state)
}

// Normalize decodes a valid verdict's record into a typed Record.
func (e *Engine) Normalize(v schema.Verdict) (*registration.Record, error) {
	if !v.Valid {
		return nil, fmt.Errorf("cannot normalize invalid record: %w", v.Err())
	}
	return registration.Decode(v.Record)
}
