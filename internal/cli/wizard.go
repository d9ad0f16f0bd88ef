package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"
	"time"

	"github.com/aretw0/onboard"
	"github.com/aretw0/onboard/internal/presentation/tui"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/registration"
	"github.com/aretw0/onboard/pkg/schema"
	"github.com/aretw0/onboard/pkg/session"
)

// Commands understood at any prompt.
const (
	CommandBack = ":back"
	CommandQuit = ":quit"
)

// ErrQuit is returned by Wizard.Run when the user leaves with :quit.
var ErrQuit = errors.New("wizard: quit")

type command int

const (
	commandNone command = iota
	commandBack
	commandQuit
)

// Wizard walks a user through the registration stages on a terminal.
type Wizard struct {
	engine   *onboard.Engine
	prompter *Prompter
	out      io.Writer
	style    tui.Styler
	render   func(string) (string, error)
	sessions *session.Manager
	now      func() time.Time
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithSessions persists progress after every step.
func WithSessions(m *session.Manager) WizardOption {
	return func(w *Wizard) {
		w.sessions = m
	}
}

// WithStyler overrides the output colors.
func WithStyler(s tui.Styler) WizardOption {
	return func(w *Wizard) {
		w.style = s
	}
}

// WithRenderer sets the markdown renderer used for the final summary.
func WithRenderer(r func(string) (string, error)) WizardOption {
	return func(w *Wizard) {
		w.render = r
	}
}

// WithClock sets the clock used to compute the age shown in the summary.
func WithClock(now func() time.Time) WizardOption {
	return func(w *Wizard) {
		w.now = now
	}
}

// NewWizard creates a Wizard reading answers from p and writing to out.
func NewWizard(engine *onboard.Engine, p *Prompter, out io.Writer, opts ...WizardOption) *Wizard {
	w := &Wizard{
		engine:   engine,
		prompter: p,
		out:      out,
		style:    tui.NewStyler(),
		render:   tui.PlainRenderer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run drives state until it is submitted. It returns the accepted record,
// or ErrQuit with the partial state when the user leaves early.
func (w *Wizard) Run(ctx context.Context, state *domain.State) (*domain.State, *registration.Record, error) {
	if state.Status == domain.StatusSubmitted {
		return state, nil, domain.ErrSessionSubmitted
	}

	stages := w.engine.Stages()
	last := stages[len(stages)-1].Index

	for {
		stage := w.engine.CurrentStage(state)
		fmt.Fprintln(w.out)
		fmt.Fprintln(w.out, w.style.StageHeader(stage, len(stages)))
		w.style.PrintErrors(w.out, state.Errors, []domain.Stage{stage})

		values, cmd, err := w.collect(ctx, state, stage)
		if err != nil {
			return state, nil, err
		}
		if len(values) > 0 {
			next, err := w.engine.Update(ctx, state, values)
			if err != nil {
				return state, nil, err
			}
			state = next
		}

		switch cmd {
		case commandQuit:
			return state, nil, errors.Join(ErrQuit, w.save(ctx, state))
		case commandBack:
			next, err := w.engine.Back(ctx, state)
			if err != nil {
				return state, nil, err
			}
			state = next
			if err := w.save(ctx, state); err != nil {
				return state, nil, err
			}
			continue
		}

		if stage.Index < last {
			next, verdict, err := w.engine.Advance(ctx, state)
			if err != nil {
				return state, nil, err
			}
			state = next
			if err := w.save(ctx, state); err != nil {
				return state, nil, err
			}
			if !verdict.Valid {
				fmt.Fprintln(w.out, w.style.Error("Please fix the following before continuing:"))
			}
			continue
		}

		next, verdict, err := w.engine.Submit(ctx, state)
		if err != nil {
			return state, nil, err
		}
		state = next
		if !verdict.Valid {
			fmt.Fprintln(w.out, w.style.Error("The registration was not accepted:"))
			w.style.PrintErrors(w.out, verdict.Errors, stages)
			if state, err = w.rewind(ctx, state, verdict); err != nil {
				return state, nil, err
			}
			if err := w.save(ctx, state); err != nil {
				return state, nil, err
			}
			continue
		}
		if err := w.save(ctx, state); err != nil {
			return state, nil, err
		}

		rec, err := w.engine.Normalize(verdict)
		if err != nil {
			return state, nil, err
		}
		w.summarize(rec)
		return state, rec, nil
	}
}

// collect prompts for each field of the stage until it passes field-level
// validation. An empty answer keeps the current value.
func (w *Wizard) collect(ctx context.Context, state *domain.State, stage domain.Stage) (map[string]any, command, error) {
	values := make(map[string]any)

	for _, field := range stage.Fields {
		current, has := state.Values[field]
		for {
			label := w.label(field, current, has)

			var input string
			var err error
			if registration.Sensitive(field) {
				input, err = w.prompter.AskSecret(ctx, label)
			} else {
				input, err = w.prompter.Ask(ctx, label)
			}
			if errors.Is(err, ErrAnswerTooLarge) || errors.Is(err, ErrInvalidUTF8) {
				fmt.Fprintln(w.out, w.style.Error("  ✗ "+err.Error()))
				continue
			}
			if err != nil {
				return values, commandNone, err
			}

			switch input {
			case CommandBack:
				return values, commandBack, nil
			case CommandQuit:
				return values, commandQuit, nil
			}

			var raw any
			switch {
			case input != "":
				raw = input
			case has:
				raw = current
			}

			scope := maps.Clone(state.Values)
			if scope == nil {
				scope = make(map[string]any)
			}
			maps.Copy(scope, values)

			if err := w.engine.ValidateField(ctx, field, raw, scope); err != nil {
				fmt.Fprintln(w.out, w.style.Error("  ✗ "+reason(err)))
				continue
			}
			if input != "" {
				values[field] = input
			}
			break
		}
	}
	return values, commandNone, nil
}

// rewind goes back to the earliest stage holding a failed field.
func (w *Wizard) rewind(ctx context.Context, state *domain.State, verdict schema.Verdict) (*domain.State, error) {
	target := w.engine.CurrentStage(state).Index
	for _, st := range w.engine.Stages() {
		for f := range verdict.Errors {
			if st.Has(f) && st.Index < target {
				target = st.Index
			}
		}
	}

	for state.CurrentStage > target {
		next, err := w.engine.Back(ctx, state)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}

func (w *Wizard) label(field string, current any, has bool) string {
	var b strings.Builder
	b.WriteString(field)

	if choices := registration.Choices(field); len(choices) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(choices, "/"))
	} else if f, ok := w.engine.Schema().Lookup(field); ok {
		switch f.Type().Name() {
		case "date":
			b.WriteString(" (YYYY-MM-DD)")
		case "bool":
			b.WriteString(" (yes/no)")
		}
		if f.IsOptional() {
			b.WriteString(w.style.Hint(" optional"))
		}
	}

	if has && current != nil {
		shown := fmt.Sprint(current)
		if registration.Sensitive(field) {
			shown = "set"
		}
		b.WriteString(w.style.Hint(" <" + shown + ">"))
	}
	b.WriteString(": ")
	return b.String()
}

func (w *Wizard) summarize(rec *registration.Record) {
	md := tui.Summary(rec, w.now())
	out, err := w.render(md)
	if err != nil {
		out = md
	}
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, strings.TrimSpace(out))
}

func (w *Wizard) save(ctx context.Context, state *domain.State) error {
	if w.sessions == nil {
		return nil
	}
	return w.sessions.Save(ctx, state.SessionID, state)
}

func reason(err error) string {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return err.Error()
}
