package domain

import (
	"maps"
	"reflect"
)

// StateDiff represents the changes between two states.
// It is serialized to JSON so clients can apply partial updates.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	CurrentStage *int    `json:"current_stage,omitempty"`
	Status       *Status `json:"status,omitempty"`

	// Values contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Values map[string]any `json:"values,omitempty"`

	// Errors is the full replacement error set, sent only when it changed.
	Errors map[string]string `json:"errors,omitempty"`

	// ErrorsCleared is set when the new state has no errors left.
	ErrorsCleared bool `json:"errors_cleared,omitempty"`

	// History contains stages appended since the old state.
	History []int `json:"history,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState.
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{SessionID: newState.SessionID}

	if oldState == nil || oldState.CurrentStage != newState.CurrentStage {
		diff.CurrentStage = &newState.CurrentStage
	}
	if oldState == nil || oldState.Status != newState.Status {
		diff.Status = &newState.Status
	}

	diff.Values = diffValues(oldState, newState)

	if oldState == nil {
		if len(newState.Errors) > 0 {
			diff.Errors = maps.Clone(newState.Errors)
		}
	} else if !maps.Equal(oldState.Errors, newState.Errors) {
		if len(newState.Errors) == 0 {
			diff.ErrorsCleared = true
		} else {
			diff.Errors = maps.Clone(newState.Errors)
		}
	}

	diff.History = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffValues(old *State, new *State) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Values {
			delta[k] = v
		}
		if len(delta) == 0 {
			return nil
		}
		return delta
	}

	for k, newVal := range new.Values {
		oldVal, exists := old.Values[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	for k := range old.Values {
		if _, exists := new.Values[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffHistory assumes History is append-only.
func diffHistory(old *State, new *State) []int {
	if len(new.History) == 0 {
		return nil
	}
	if old == nil {
		return append([]int(nil), new.History...)
	}
	if len(new.History) > len(old.History) {
		return append([]int(nil), new.History[len(old.History):]...)
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CurrentStage == nil &&
		d.Status == nil &&
		len(d.Values) == 0 &&
		len(d.Errors) == 0 &&
		!d.ErrorsCleared &&
		len(d.History) == 0
}
