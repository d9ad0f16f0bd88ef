package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	base := func(ts time.Time) domain.EventBase {
		return domain.EventBase{Timestamp: ts, SessionID: "s1"}
	}

	hooks.OnStageEnter(ctx, &domain.StageEvent{EventBase: base(start), Stage: 1})
	hooks.OnStageEnter(ctx, &domain.StageEvent{EventBase: base(start), Stage: 2})
	hooks.OnValidation(ctx, &domain.ValidationEvent{
		EventBase: base(start),
		Scope:     domain.ScopeStage,
		Errors:    map[string]string{"name": "too short", "email": "bad"},
	})
	hooks.OnValidation(ctx, &domain.ValidationEvent{EventBase: base(start), Scope: domain.ScopeStage, Valid: true})
	hooks.OnSubmit(ctx, &domain.SubmitEvent{EventBase: base(start.Add(90 * time.Second)), Accepted: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageEntries.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("stage", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("stage", "valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldFailures.WithLabelValues("name")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("accepted")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Completion))

	expected := `
		# HELP onboard_submissions_total Final submission attempts by outcome
		# TYPE onboard_submissions_total counter
		onboard_submissions_total{result="accepted"} 1
	`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "onboard_submissions_total"))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := observability.LogHooks(logger)

	hooks.OnStageEnter(context.Background(), &domain.StageEvent{
		EventBase: domain.EventBase{SessionID: "s1"},
		Stage:     2,
		StageName: "account",
	})
	hooks.OnSubmit(context.Background(), &domain.SubmitEvent{
		EventBase: domain.EventBase{SessionID: "s1"},
		Accepted:  false,
	})

	out := buf.String()
	assert.Contains(t, out, "msg=stage_enter")
	assert.Contains(t, out, "name=account")
	assert.Contains(t, out, "accepted=false")
}
