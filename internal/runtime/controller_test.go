package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/onboard/internal/runtime"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/ports"
	"github.com/aretw0/onboard/pkg/registration"
	"github.com/aretw0/onboard/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newController(t *testing.T, opts ...runtime.Option) *runtime.Controller {
	t.Helper()
	s := registration.NewSchema(registration.WithClock(clock))
	opts = append([]runtime.Option{runtime.WithClock(clock)}, opts...)
	c, err := runtime.NewController(s, registration.Stages(), opts...)
	require.NoError(t, err)
	return c
}

func identity() map[string]any {
	return map[string]any{
		registration.FieldName:        "Jane Doe",
		registration.FieldEmail:       "jane@example.com",
		registration.FieldDateOfBirth: "1990-03-10",
	}
}

func account() map[string]any {
	return map[string]any{
		registration.FieldAccountType:   registration.AccountDemo,
		registration.FieldRiskTolerance: registration.RiskMedium,
	}
}

func credentials() map[string]any {
	return map[string]any{
		registration.FieldPassword:        "Abcdef1!",
		registration.FieldConfirmPassword: "Abcdef1!",
		registration.FieldTermsAccepted:   "on",
	}
}

func TestNewController_RejectsBadStages(t *testing.T) {
	s := registration.NewSchema()

	tests := []struct {
		name   string
		stages []domain.Stage
	}{
		{"empty", nil},
		{"wrong index", []domain.Stage{{Index: 2, Fields: []string{"name"}}}},
		{"no fields", []domain.Stage{{Index: 1}}},
		{"unknown field", []domain.Stage{{Index: 1, Fields: []string{"nickname"}}}},
		{"duplicate field", []domain.Stage{
			{Index: 1, Fields: []string{"name"}},
			{Index: 2, Fields: []string{"name"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runtime.NewController(s, tt.stages)
			var serr *runtime.StageDefinitionError
			assert.True(t, errors.As(err, &serr), "got %v", err)
		})
	}
}

func TestController_StartAndFields(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	state, err := c.Start(ctx, "s1", map[string]any{"name": "Jane", "email": nil})
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStage)
	assert.Equal(t, "identity", c.CurrentStage(state).Name)
	assert.Equal(t, map[string]any{"name": "Jane"}, state.Values)

	fields, err := c.FieldsForStage(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"accountType", "riskTolerance", "panNumber"}, fields)

	_, err = c.FieldsForStage(0)
	assert.ErrorIs(t, err, domain.ErrStageOutOfRange)
	_, err = c.FieldsForStage(4)
	assert.ErrorIs(t, err, domain.ErrStageOutOfRange)
}

func TestController_AdvanceInvalidNameKeepsStage(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	values := identity()
	values[registration.FieldName] = "Al"
	state, _ := c.Start(ctx, "s1", values)

	next, verdict, err := c.Advance(ctx, state)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, 1, next.CurrentStage)
	assert.Equal(t, map[string]string{"name": registration.MsgNameTooShort}, next.Errors)
	assert.Equal(t, []int{1}, next.History)

	// The input state is never mutated.
	assert.Nil(t, state.Errors)
}

func TestController_AdvanceIgnoresLaterStages(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	values := identity()
	values[registration.FieldPassword] = "x"
	state, _ := c.Start(ctx, "s1", values)

	next, verdict, err := c.Advance(ctx, state)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, 2, next.CurrentStage)
	assert.Equal(t, []int{1, 2}, next.History)
}

// The PAN number is only required for Live accounts.
func TestController_AdvanceAccountStage(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	state, _ := c.Start(ctx, "s1", identity())
	state, _, _ = c.Advance(ctx, state)
	require.Equal(t, 2, state.CurrentStage)

	state, _ = c.Update(ctx, state, map[string]any{
		registration.FieldAccountType:   registration.AccountLive,
		registration.FieldRiskTolerance: registration.RiskHigh,
		registration.FieldPANNumber:     "",
	})
	next, verdict, err := c.Advance(ctx, state)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, 2, next.CurrentStage)
	assert.Equal(t, registration.MsgPANNumber, next.Errors[registration.FieldPANNumber])

	next, _ = c.Update(ctx, next, map[string]any{registration.FieldPANNumber: "AB12CD34EF"})
	assert.Empty(t, next.Errors, "editing a field clears its stale error")

	next, verdict, err = c.Advance(ctx, next)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, 3, next.CurrentStage)
}

func TestController_AdvanceAtLastStageIsNoop(t *testing.T) {
	c := newController(t)
	state := domain.NewState("s1")
	state.CurrentStage = 3

	next, verdict, err := c.Advance(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, 3, next.CurrentStage)
	assert.Equal(t, domain.StatusActive, next.Status)
}

func TestController_Back(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	state, _ := c.Start(ctx, "s1", nil)
	next, err := c.Back(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, 1, next.CurrentStage)
	assert.Equal(t, []int{1}, next.History)

	state.CurrentStage = 3
	state.Values[registration.FieldName] = "Al"
	next, err = c.Back(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, 2, next.CurrentStage, "back never validates")
}

func TestController_StageStaysInRange(t *testing.T) {
	c := newController(t)
	state := domain.NewState("s1")
	state.CurrentStage = 9

	assert.Equal(t, 3, c.CurrentStage(state).Index)
	next, err := c.Back(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 2, next.CurrentStage)
}

func TestController_SubmitBeforeLastStage(t *testing.T) {
	c := newController(t)
	state, _ := c.Start(context.Background(), "s1", identity())

	_, _, err := c.Submit(context.Background(), state)
	assert.ErrorIs(t, err, domain.ErrNotFinalStage)
}

// A field from a passed stage is edited before submission.
func TestController_SubmitRevalidatesEarlierStages(t *testing.T) {
	var received map[string]any
	handler := ports.SubmissionHandlerFunc(func(ctx context.Context, s *domain.State, record map[string]any) error {
		received = record
		return nil
	})
	c := newController(t, runtime.WithSubmissionHandler(handler))
	ctx := context.Background()

	state := walkToLastStage(t, c)

	state, _ = c.Update(ctx, state, map[string]any{registration.FieldEmail: "not-an-email"})
	next, verdict, err := c.Submit(ctx, state)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, map[string]string{"email": registration.MsgInvalidEmail}, next.Errors)
	assert.Equal(t, domain.StatusActive, next.Status)
	assert.Nil(t, received)

	state, _ = c.Update(ctx, next, map[string]any{registration.FieldEmail: "jane@example.com"})
	next, verdict, err = c.Submit(ctx, state)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, domain.StatusSubmitted, next.Status)
	require.NotNil(t, received)
	assert.Equal(t, true, received[registration.FieldTermsAccepted])
	assert.Equal(t, time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC), received[registration.FieldDateOfBirth])
}

func TestController_SubmittedSessionIsFrozen(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	state := walkToLastStage(t, c)
	state, _, err := c.Submit(ctx, state)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSubmitted, state.Status)

	_, err = c.Update(ctx, state, map[string]any{"name": "Other"})
	assert.ErrorIs(t, err, domain.ErrSessionSubmitted)
	_, _, err = c.Advance(ctx, state)
	assert.ErrorIs(t, err, domain.ErrSessionSubmitted)
	_, err = c.Back(ctx, state)
	assert.ErrorIs(t, err, domain.ErrSessionSubmitted)
	_, _, err = c.Submit(ctx, state)
	assert.ErrorIs(t, err, domain.ErrSessionSubmitted)
}

func TestController_SubmissionHandlerFailure(t *testing.T) {
	boom := errors.New("downstream unavailable")
	handler := ports.SubmissionHandlerFunc(func(context.Context, *domain.State, map[string]any) error {
		return boom
	})
	c := newController(t, runtime.WithSubmissionHandler(handler))

	state := walkToLastStage(t, c)
	_, _, err := c.Submit(context.Background(), state)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.StatusActive, state.Status)
}

func TestController_LifecycleHooks(t *testing.T) {
	var entered, left []int
	var scopes []domain.ValidationScope
	var submits []bool

	hooks := domain.LifecycleHooks{
		OnStageEnter: func(_ context.Context, e *domain.StageEvent) { entered = append(entered, e.Stage) },
		OnStageLeave: func(_ context.Context, e *domain.StageEvent) { left = append(left, e.Stage) },
		OnValidation: func(_ context.Context, e *domain.ValidationEvent) { scopes = append(scopes, e.Scope) },
		OnSubmit:     func(_ context.Context, e *domain.SubmitEvent) { submits = append(submits, e.Accepted) },
	}
	c := newController(t, runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	state := walkToLastStage(t, c)
	state, _ = c.Back(ctx, state)
	state, _, _ = c.Advance(ctx, state)
	_, _, err := c.Submit(ctx, state)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 2, 3}, entered)
	assert.Equal(t, []int{1, 2, 3, 2, 3}, left)
	assert.Equal(t, []domain.ValidationScope{
		domain.ScopeStage, domain.ScopeStage, domain.ScopeStage, domain.ScopeRecord,
	}, scopes)
	assert.Equal(t, []bool{true}, submits)
}

func TestController_ValidateField(t *testing.T) {
	var events []*domain.ValidationEvent
	c := newController(t, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnValidation: func(_ context.Context, e *domain.ValidationEvent) { events = append(events, e) },
	}))
	ctx := context.Background()

	err := c.ValidateField(ctx, registration.FieldEmail, "jane@", nil)
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, registration.MsgInvalidEmail, verr.Reason)

	require.Len(t, events, 1)
	assert.Equal(t, domain.ScopeField, events[0].Scope)
	assert.Equal(t, map[string]string{"email": registration.MsgInvalidEmail}, events[0].Errors)
	assert.Equal(t, fixedNow, events[0].Timestamp)
}

func walkToLastStage(t *testing.T, c *runtime.Controller) *domain.State {
	t.Helper()
	ctx := context.Background()

	state, err := c.Start(ctx, "s1", identity())
	require.NoError(t, err)
	for _, values := range []map[string]any{account(), credentials()} {
		next, verdict, err := c.Advance(ctx, state)
		require.NoError(t, err)
		require.True(t, verdict.Valid, "errors: %v", verdict.Errors)
		state, err = c.Update(ctx, next, values)
		require.NoError(t, err)
	}
	require.Equal(t, 3, state.CurrentStage)
	return state
}
