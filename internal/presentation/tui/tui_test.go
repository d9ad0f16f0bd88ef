package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/onboard/pkg/registration"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPrintErrors_GroupsByStage(t *testing.T) {
	s := NewStylerWithProfile(termenv.Ascii)
	var buf bytes.Buffer

	s.PrintErrors(&buf, map[string]string{
		"password": "too weak",
		"name":     "too short",
		"extra":    "odd",
	}, registration.Stages())

	out := buf.String()
	assert.Less(t, strings.Index(out, "name"), strings.Index(out, "password"))
	assert.Less(t, strings.Index(out, "password"), strings.Index(out, "extra"))
	assert.Contains(t, out, "About you")
	assert.NotContains(t, out, "\x1b[", "ascii profile must not emit escapes")
}

func TestStageHeader(t *testing.T) {
	s := NewStylerWithProfile(termenv.Ascii)
	st := registration.Stages()[1]
	assert.Equal(t, "Stage 2/3 · Account", s.StageHeader(st, 3))
}

func TestStyler_AsciiIsPlain(t *testing.T) {
	s := NewStylerWithProfile(termenv.Ascii)
	for name, fn := range map[string]func(string) string{
		"heading": s.Heading,
		"error":   s.Error,
		"ok":      s.OK,
		"hint":    s.Hint,
	} {
		assert.Equal(t, "text", fn("text"), name)
	}

	colored := NewStylerWithProfile(termenv.TrueColor)
	assert.Contains(t, colored.Hint("text"), "\x1b[")
}

func TestSummary(t *testing.T) {
	rec := &registration.Record{
		Name:          "Jane | Doe",
		Email:         "jane@example.com",
		DateOfBirth:   time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC),
		AccountType:   registration.AccountLive,
		RiskTolerance: registration.RiskHigh,
		PANNumber:     "ab12cd34ef",
		Password:      "Abcdef1!",
		TermsAccepted: true,
	}

	md := Summary(rec, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, md, `Jane \| Doe`)
	assert.Contains(t, md, "1990-03-10 (age 34)")
	assert.Contains(t, md, "AB12CD34EF")
	assert.NotContains(t, md, "Abcdef1!")

	out, err := PlainRenderer(md)
	assert.NoError(t, err)
	assert.Equal(t, md, out)
}
