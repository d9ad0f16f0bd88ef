// Package observability turns controller lifecycle events into Prometheus
// metrics and structured log lines.
package observability

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/onboard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "onboard"

// Metrics holds the collectors fed by the controller hooks.
type Metrics struct {
	StageEntries  *prometheus.CounterVec
	Validations   *prometheus.CounterVec
	FieldFailures *prometheus.CounterVec
	Submissions   *prometheus.CounterVec
	Completion    prometheus.Histogram

	mu      sync.Mutex
	started map[string]time.Time
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StageEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_entries_total",
				Help:      "Total number of times a stage was entered",
			},
			[]string{"stage"},
		),
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Validation runs by scope and outcome",
			},
			[]string{"scope", "result"},
		),
		FieldFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "field_failures_total",
				Help:      "Validation failures attributed to each field",
			},
			[]string{"field"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Final submission attempts by outcome",
			},
			[]string{"result"},
		),
		Completion: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "completion_seconds",
				Help:      "Time from session start to accepted submission",
				Buckets:   []float64{10, 30, 60, 120, 300, 600, 1800},
			},
		),
		started: make(map[string]time.Time),
	}
	reg.MustRegister(m.StageEntries, m.Validations, m.FieldFailures, m.Submissions, m.Completion)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(ctx context.Context, e *domain.StageEvent) {
			m.StageEntries.WithLabelValues(strconv.Itoa(e.Stage)).Inc()
			if e.Stage == 1 && e.SessionID != "" {
				m.mu.Lock()
				if _, ok := m.started[e.SessionID]; !ok {
					m.started[e.SessionID] = e.Timestamp
				}
				m.mu.Unlock()
			}
		},
		OnValidation: func(ctx context.Context, e *domain.ValidationEvent) {
			m.Validations.WithLabelValues(string(e.Scope), result(e.Valid)).Inc()
			for field := range e.Errors {
				m.FieldFailures.WithLabelValues(field).Inc()
			}
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			m.Submissions.WithLabelValues(accepted(e.Accepted)).Inc()
			if !e.Accepted {
				return
			}
			m.mu.Lock()
			start, ok := m.started[e.SessionID]
			delete(m.started, e.SessionID)
			m.mu.Unlock()
			if ok {
				m.Completion.Observe(e.Timestamp.Sub(start).Seconds())
			}
		},
	}
}

// Forget drops the start time of an abandoned session.
func (m *Metrics) Forget(sessionID string) {
	m.mu.Lock()
	delete(m.started, sessionID)
	m.mu.Unlock()
}

func result(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

func accepted(ok bool) string {
	if ok {
		return "accepted"
	}
	return "rejected"
}
