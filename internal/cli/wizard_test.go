package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/onboard"
	"github.com/aretw0/onboard/internal/presentation/tui"
	"github.com/aretw0/onboard/pkg/adapters/memory"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/registration"
	"github.com/aretw0/onboard/pkg/session"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newWizard(t *testing.T, input string, opts ...WizardOption) (*Wizard, *onboard.Engine, *bytes.Buffer) {
	t.Helper()
	engine, err := onboard.New(onboard.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(input), io.Discard)
	opts = append([]WizardOption{
		WithStyler(tui.NewStylerWithProfile(termenv.Ascii)),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return NewWizard(engine, p, &out, opts...), engine, &out
}

func lines(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}

func TestWizard_CompletesRegistration(t *testing.T) {
	input := lines(
		"Jo", "Jane Doe", "jane@example.com", "1990-03-10",
		"Live", "High", "", "ab12cd34ef",
		"Abcdef1!", "Abcdef1!", "yes",
	)
	w, engine, out := newWizard(t, input)

	state, err := engine.Start(context.Background(), "s1", nil)
	require.NoError(t, err)

	final, rec, err := w.Run(context.Background(), state)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, domain.StatusSubmitted, final.Status)
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, registration.AccountLive, rec.AccountType)
	assert.Equal(t, 34, rec.Age(fixedNow))

	text := out.String()
	assert.Contains(t, text, "Stage 1/3 · About you")
	assert.Contains(t, text, registration.MsgNameTooShort)
	assert.Contains(t, text, registration.MsgPANNumber)
	assert.Contains(t, text, "Registration complete")
	assert.NotContains(t, text, "Abcdef1!")
}

func TestWizard_BackAndQuit(t *testing.T) {
	sessions := session.NewManager(memory.NewStore())
	input := lines(
		"Jane Doe", "jane@example.com", "1990-03-10",
		CommandBack,
		"", "", "",
		"Demo", CommandQuit,
	)
	w, engine, _ := newWizard(t, input, WithSessions(sessions))

	state, err := engine.Start(context.Background(), "s2", nil)
	require.NoError(t, err)

	final, rec, err := w.Run(context.Background(), state)
	require.ErrorIs(t, err, ErrQuit)
	assert.True(t, IsInterrupted(err))
	assert.Nil(t, rec)
	assert.Equal(t, 2, final.CurrentStage)
	assert.Equal(t, "Demo", final.Values[registration.FieldAccountType])
	assert.Equal(t, []int{1, 2, 1, 2}, final.History)

	saved, err := sessions.Load(context.Background(), "s2")
	require.NoError(t, err)
	assert.Equal(t, final.CurrentStage, saved.CurrentStage)
	assert.Equal(t, "Jane Doe", saved.Values[registration.FieldName])
}

func TestWizard_RewindsToFailedStage(t *testing.T) {
	input := lines(
		"Abcdef1!", "Abcdef1!", "yes",
		"Alice", "", "",
		"", "", "",
		"", "", "",
	)
	w, engine, out := newWizard(t, input)

	ctx := context.Background()
	state, err := engine.Start(ctx, "s3", map[string]any{
		"name":          "Al",
		"email":         "al@example.com",
		"dateOfBirth":   "1980-01-01",
		"accountType":   "Demo",
		"riskTolerance": "Low",
	})
	require.NoError(t, err)
	state = state.Clone()
	state.CurrentStage = 3

	final, rec, err := w.Run(ctx, state)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Alice", rec.Name)
	assert.Equal(t, domain.StatusSubmitted, final.Status)
	assert.Contains(t, out.String(), "The registration was not accepted")
}

func TestWizard_ClosedInput(t *testing.T) {
	w, engine, _ := newWizard(t, "Jane Doe\n")

	state, err := engine.Start(context.Background(), "s4", nil)
	require.NoError(t, err)

	_, _, err = w.Run(context.Background(), state)
	require.Error(t, err)
	assert.True(t, IsInterrupted(err))
}

func TestWizard_RejectsSubmittedSession(t *testing.T) {
	w, _, _ := newWizard(t, "")
	state := domain.NewState("s5")
	state.Status = domain.StatusSubmitted

	_, _, err := w.Run(context.Background(), state)
	assert.ErrorIs(t, err, domain.ErrSessionSubmitted)
}

func TestPrompter_Cancelled(t *testing.T) {
	r, _ := io.Pipe()
	p := NewPrompter(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Ask(ctx, "name: ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrompter_SecretReader(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out, WithSecretReader(func() ([]byte, error) {
		return []byte("s3cret\n"), nil
	}))

	got, err := p.AskSecret(context.Background(), "password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "password: \n", out.String())
}
