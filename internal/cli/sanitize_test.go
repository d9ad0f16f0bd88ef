package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/onboard/pkg/adapters/memory"
	"github.com/aretw0/onboard/pkg/registration"
	"github.com/aretw0/onboard/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeAnswer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int
		want    string
		wantErr error
	}{
		{"plain", "Jane Doe", 0, "Jane Doe", nil},
		{"colored paste", "\x1b[1;31mJane Doe\x1b[0m", 0, "Jane Doe", nil},
		{"bell and null", "Ja\x07ne\x00", 0, "Jane", nil},
		{"tab", "Jane\tDoe", 0, "Jane Doe", nil},
		{"newline", "Jane\r\n", 0, "Jane", nil},
		{"accents kept", "José Ñúñez", 0, "José Ñúñez", nil},
		{"at limit", "abcd", 4, "abcd", nil},
		{"over limit", "abcde", 4, "", ErrAnswerTooLarge},
		{"invalid utf-8", "Jane\xff", 0, "", ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeAnswer(tt.input, tt.limit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_MaxAnswerSize(t *testing.T) {
	p := NewPrompter(strings.NewReader("toolong\nok\n"), io.Discard, WithMaxAnswerSize(4))
	ctx := context.Background()

	_, err := p.Ask(ctx, "")
	assert.ErrorIs(t, err, ErrAnswerTooLarge)

	got, err := p.Ask(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestWizard_RepromptsRejectedAnswers(t *testing.T) {
	sessions := session.NewManager(memory.NewStore())
	input := lines(
		strings.Repeat("a", DefaultMaxAnswerSize+1),
		"\x1b[1mJane Doe\x1b[0m",
		CommandQuit,
	)
	w, engine, out := newWizard(t, input, WithSessions(sessions))

	state, err := engine.Start(context.Background(), "s5", nil)
	require.NoError(t, err)

	final, _, err := w.Run(context.Background(), state)
	require.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, "Jane Doe", final.Values[registration.FieldName])
	assert.Contains(t, out.String(), ErrAnswerTooLarge.Error())
}
