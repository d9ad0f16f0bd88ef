package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageEnter EventType = "stage_enter"
	EventStageLeave EventType = "stage_leave"
	EventValidation EventType = "validation"
	EventSubmit     EventType = "submit"
)

// ValidationScope names what a validation event covered.
type ValidationScope string

const (
	ScopeField  ValidationScope = "field"
	ScopeStage  ValidationScope = "stage"
	ScopeRecord ValidationScope = "record"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// StageEvent represents entry into or exit from a stage.
type StageEvent struct {
	EventBase
	Stage     int    `json:"stage"`
	StageName string `json:"stage_name"`
}

// ValidationEvent reports the outcome of a validation run.
type ValidationEvent struct {
	EventBase
	Scope  ValidationScope   `json:"scope"`
	Stage  int               `json:"stage,omitempty"`
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// SubmitEvent reports a final submission attempt.
type SubmitEvent struct {
	EventBase
	Accepted bool              `json:"accepted"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// LifecycleHooks defines callbacks for controller observability.
type LifecycleHooks struct {
	OnStageEnter func(context.Context, *StageEvent)
	OnStageLeave func(context.Context, *StageEvent)
	OnValidation func(context.Context, *ValidationEvent)
	OnSubmit     func(context.Context, *SubmitEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStageEnter: chain(h.OnStageEnter, other.OnStageEnter),
		OnStageLeave: chain(h.OnStageLeave, other.OnStageLeave),
		OnValidation: chain(h.OnValidation, other.OnValidation),
		OnSubmit:     chain(h.OnSubmit, other.OnSubmit),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
