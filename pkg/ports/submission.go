package ports

import (
	"context"

	"github.com/aretw0/onboard/pkg/domain"
)

// SubmissionHandler receives the normalized record once the whole form is
// valid. What it does with it (storage, transport) is outside the core.
type SubmissionHandler interface {
	Submit(ctx context.Context, state *domain.State, record map[string]any) error
}

// SubmissionHandlerFunc adapts a function to SubmissionHandler.
type SubmissionHandlerFunc func(ctx context.Context, state *domain.State, record map[string]any) error

// Submit calls f.
func (f SubmissionHandlerFunc) Submit(ctx context.Context, state *domain.State, record map[string]any) error {
	return f(ctx, state, record)
}
