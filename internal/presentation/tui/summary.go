package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/onboard/pkg/registration"
)

// Summary renders an accepted registration as markdown.
// The password never appears in it.
func Summary(rec *registration.Record, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Registration complete\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")

	row := func(k, v string) {
		fmt.Fprintf(&b, "| %s | %s |\n", k, escape(v))
	}
	row("Name", rec.Name)
	row("Email", rec.Email)
	row("Date of birth", fmt.Sprintf("%s (age %d)", rec.DateOfBirth.Format(time.DateOnly), rec.Age(now)))
	row("Account", rec.AccountType)
	row("Risk tolerance", rec.RiskTolerance)
	if rec.PANNumber != "" {
		row("PAN", strings.ToUpper(rec.PANNumber))
	}
	row("Terms", "accepted")
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
