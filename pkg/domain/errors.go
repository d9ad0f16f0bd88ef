package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNotFinalStage is returned when a submit is requested before the last stage.
var ErrNotFinalStage = errors.New("submit is only allowed on the final stage")

// ErrSessionSubmitted is returned when a submitted session is modified.
var ErrSessionSubmitted = errors.New("session already submitted")

// ErrStageOutOfRange is returned when a stage index does not exist.
var ErrStageOutOfRange = errors.New("stage out of range")
