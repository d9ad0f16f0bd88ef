package domain

import "maps"

// Status defines where a session is in its lifecycle.
type Status string

const (
	StatusActive    Status = "active"    // Collecting values
	StatusSubmitted Status = "submitted" // Accepted and handed off
)

// State represents the current snapshot of a registration session.
// It is owned by the caller and passed to the controller, which returns
// a new State instead of mutating the one it was given.
type State struct {
	// SessionID identifies the session in stores and events.
	SessionID string `json:"session_id"`

	// CurrentStage is the 1-based index of the active stage.
	CurrentStage int `json:"current_stage"`

	// Status indicates whether the session is still collecting values.
	Status Status `json:"status"`

	// Values holds the raw field values supplied by the presentation layer.
	Values map[string]any `json:"values"`

	// Errors holds the messages of the last rejected verdict, for display.
	Errors map[string]string `json:"errors,omitempty"`

	// History tracks the stages visited, in order.
	History []int `json:"history"`
}

// NewState creates a clean state on the first stage.
func NewState(sessionID string) *State {
	return &State{
		SessionID:    sessionID,
		CurrentStage: 1,
		Status:       StatusActive,
		Values:       make(map[string]any),
		History:      []int{1},
	}
}

// Clone returns a copy that shares no maps or slices with s.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Values = maps.Clone(s.Values)
	if next.Values == nil {
		next.Values = make(map[string]any)
	}
	next.Errors = maps.Clone(s.Errors)
	next.History = append([]int(nil), s.History...)
	return &next
}
