package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/onboard/pkg/domain"
	"github.com/muesli/termenv"
)

// Styler colors wizard output for a given terminal profile.
type Styler struct {
	profile termenv.Profile
}

// NewStyler detects the color profile of the current terminal.
func NewStyler() Styler {
	return Styler{profile: termenv.ColorProfile()}
}

// NewStylerWithProfile is used for tests and non-terminal output.
func NewStylerWithProfile(p termenv.Profile) Styler {
	return Styler{profile: p}
}

// Heading formats a stage header.
func (s Styler) Heading(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#60a5fa")).Bold().String()
}

// Error formats a failure message.
func (s Styler) Error(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#f87171")).String()
}

// OK formats a success message.
func (s Styler) OK(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#34d399")).String()
}

// Hint formats secondary text.
func (s Styler) Hint(text string) string {
	return s.profile.String(text).Faint().String()
}

// StageHeader renders "Stage 2/3 · Account".
func (s Styler) StageHeader(stage domain.Stage, total int) string {
	title := stage.Title
	if title == "" {
		title = stage.Name
	}
	return s.Heading(fmt.Sprintf("Stage %d/%d · %s", stage.Index, total, title))
}

// PrintErrors writes field errors grouped by stage, in stage order.
// Fields that belong to no stage are listed last.
func (s Styler) PrintErrors(w io.Writer, errs map[string]string, stages []domain.Stage) {
	if len(errs) == 0 {
		return
	}

	seen := make(map[string]bool, len(errs))
	for _, st := range stages {
		var lines []string
		for _, f := range st.Fields {
			if msg, ok := errs[f]; ok {
				lines = append(lines, fmt.Sprintf("  ✗ %s: %s", f, msg))
				seen[f] = true
			}
		}
		if len(lines) > 0 {
			fmt.Fprintln(w, s.Hint(st.Title))
			fmt.Fprintln(w, s.Error(strings.Join(lines, "\n")))
		}
	}

	var rest []string
	for f := range errs {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	for _, f := range rest {
		fmt.Fprintln(w, s.Error(fmt.Sprintf("  ✗ %s: %s", f, errs[f])))
	}
}
