package ports

import (
	"context"

	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/schema"
)

// Engine defines the form engine as seen by adapters (HTTP, MCP).
// It holds no session state: every call takes the state and returns a new one.
type Engine interface {
	// Stages returns the ordered stage definitions.
	Stages() []domain.Stage

	// Schema returns the validation schema.
	Schema() *schema.Schema

	// ValidateField checks a single value, optionally against the rest of the record.
	ValidateField(ctx context.Context, name string, raw any, record map[string]any) error

	// ValidateSubset checks the named fields and the rules they fully cover.
	ValidateSubset(ctx context.Context, record map[string]any, fields ...string) schema.Verdict

	// ValidateRecord checks the whole record.
	ValidateRecord(ctx context.Context, record map[string]any) schema.Verdict

	// CurrentStage returns the stage the session is on.
	CurrentStage(state *domain.State) domain.Stage

	// FieldsForStage returns the field names of stage n.
	FieldsForStage(n int) ([]string, error)

	// Start creates the state for a new session.
	Start(ctx context.Context, sessionID string, initial map[string]any) (*domain.State, error)

	// Update merges raw field values into the state.
	Update(ctx context.Context, state *domain.State, values map[string]any) (*domain.State, error)

	// Advance moves to the next stage if the current one is valid.
	Advance(ctx context.Context, state *domain.State) (*domain.State, schema.Verdict, error)

	// Back moves to the previous stage without validation.
	Back(ctx context.Context, state *domain.State) (*domain.State, error)

	// Submit validates the whole record and hands it off when valid.
	Submit(ctx context.Context, state *domain.State) (*domain.State, schema.Verdict, error)
}
