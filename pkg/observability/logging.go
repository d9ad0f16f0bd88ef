package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/onboard/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one structured line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(ctx context.Context, e *domain.StageEvent) {
			logger.InfoContext(ctx, "stage_enter", "session_id", e.SessionID, "stage", e.Stage, "name", e.StageName)
		},
		OnStageLeave: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_leave", "session_id", e.SessionID, "stage", e.Stage)
		},
		OnValidation: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.DebugContext(ctx, "validation",
				"session_id", e.SessionID,
				"scope", e.Scope,
				"valid", e.Valid,
				"errors", len(e.Errors),
			)
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.InfoContext(ctx, "submit", "session_id", e.SessionID, "accepted", e.Accepted)
		},
	}
}
