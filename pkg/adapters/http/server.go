package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/onboard"
	"github.com/aretw0/onboard/internal/logging"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/ports"
	"github.com/aretw0/onboard/pkg/registration"
	"github.com/aretw0/onboard/pkg/schema"
	"github.com/aretw0/onboard/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Redacted replaces sensitive values in responses.
const Redacted = "********"

// Server implements the generated ServerInterface over the engine and its
// sessions.
type Server struct {
	Engine   ports.Engine
	Sessions *session.Manager
	Streams  *StreamManager

	logger    *slog.Logger
	newID     func() string
	sensitive map[string]bool
	metrics   http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithIDGenerator overrides how new session IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		s.newID = fn
	}
}

// WithSensitiveFields sets the fields whose values are never echoed back.
func WithSensitiveFields(fields ...string) Option {
	return func(s *Server) {
		s.sensitive = make(map[string]bool, len(fields))
		for _, f := range fields {
			s.sensitive[f] = true
		}
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine ports.Engine, sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
		sensitive: map[string]bool{
			registration.FieldPassword:        true,
			registration.FieldConfirmPassword: true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", s.getSpec)
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	var mws []MiddlewareFunc
	if spec, err := GetSwagger(); err != nil {
		s.logger.Error("openapi document unavailable, request validation disabled", "err", err)
	} else {
		mws = append(mws, validateRequests(spec, s.badRequest))
	}

	return HandlerWithOptions(s, ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      mws,
		ErrorHandlerFunc: s.badRequest,
	})
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, InfoResponse{
		App:     "onboard-http",
		Version: strings.TrimSpace(onboard.Version),
	})
}

// GetStages handles GET /stages.
func (s *Server) GetStages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Stages())
}

// ValidateRecord handles POST /validate: a stateless full-record check.
func (s *Server) ValidateRecord(w http.ResponseWriter, r *http.Request) {
	var body ValidateRecordJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	s.writeJSON(w, http.StatusOK, toVerdict(s.Engine.ValidateRecord(r.Context(), body.Values)))
}

// ValidateField handles POST /validate/{field}.
func (s *Server) ValidateField(w http.ResponseWriter, r *http.Request, field string) {
	if _, ok := s.Engine.Schema().Lookup(field); !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("unknown field %q", field))
		return
	}

	var body ValidateFieldJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}

	resp := FieldResponse{Field: field, Valid: true}
	if err := s.Engine.ValidateField(r.Context(), field, body.Value, body.Record); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			resp.Error = verr.Reason
			resp.Kind = string(verr.Kind)
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// CreateSession handles POST /sessions. The body is optional.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionJSONRequestBody
	if r.ContentLength != 0 && !s.decode(w, r, &body) {
		return
	}

	id := s.newID()
	state, err := s.Engine.Start(r.Context(), id, body.Values)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if err := s.Sessions.Save(r.Context(), id, state); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("session created", "session_id", id, "request_id", middleware.GetReqID(r.Context()))
	w.Header().Set("Location", "/sessions/"+id)
	s.writeJSON(w, http.StatusCreated, s.response(state, nil, domain.Diff(nil, state)))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, id string) {
	state, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.response(state, nil, nil))
}

// UpdateSession handles PATCH /sessions/{id}: field edits.
func (s *Server) UpdateSession(w http.ResponseWriter, r *http.Request, id string) {
	var body UpdateSessionJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	s.mutate(w, r, id, func(state *domain.State) (*domain.State, *schema.Verdict, error) {
		next, err := s.Engine.Update(r.Context(), state, body.Values)
		return next, nil, err
	})
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Advance handles POST /sessions/{id}/advance.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request, id string) {
	s.mutate(w, r, id, func(state *domain.State) (*domain.State, *schema.Verdict, error) {
		next, verdict, err := s.Engine.Advance(r.Context(), state)
		return next, &verdict, err
	})
}

// Back handles POST /sessions/{id}/back.
func (s *Server) Back(w http.ResponseWriter, r *http.Request, id string) {
	s.mutate(w, r, id, func(state *domain.State) (*domain.State, *schema.Verdict, error) {
		next, err := s.Engine.Back(r.Context(), state)
		return next, nil, err
	})
}

// Submit handles POST /sessions/{id}/submit.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request, id string) {
	s.mutate(w, r, id, func(state *domain.State) (*domain.State, *schema.Verdict, error) {
		next, verdict, err := s.Engine.Submit(r.Context(), state)
		return next, &verdict, err
	})
}

// mutate runs op as one locked read-modify-write of the session and
// broadcasts the resulting diff to SSE subscribers.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, id string, op func(*domain.State) (*domain.State, *schema.Verdict, error)) {
	var (
		before  *domain.State
		verdict *schema.Verdict
	)
	after, err := s.Sessions.Update(r.Context(), id, func(state *domain.State) (*domain.State, error) {
		before = state.Clone()
		next, v, err := op(state)
		verdict = v
		return next, err
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	diff := domain.Diff(before, after)
	if diff != nil {
		s.broadcast(diff)
	}
	s.writeJSON(w, http.StatusOK, s.response(after, verdict, diff))
}

func (s *Server) broadcast(diff *domain.StateDiff) {
	if s.Streams.Subscribers(diff.SessionID) == 0 {
		return
	}
	data, err := json.Marshal(s.redactDiff(diff))
	if err != nil {
		s.logger.Error("failed to encode diff", "session_id", diff.SessionID, "err", err)
		return
	}
	s.Streams.Broadcast(diff.SessionID, string(data))
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
// The optional watch query parameter filters diffs by "values", "errors",
// "stage" or "status".
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, id string, params SubscribeEventsParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	if _, err := s.Sessions.Load(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	var watch []string
	if params.Watch != nil && *params.Watch != "" {
		watch = strings.Split(*params.Watch, ",")
	}

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !matchesWatch(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func matchesWatch(msg string, watch []string) bool {
	var diff domain.StateDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watch {
		switch strings.TrimSpace(field) {
		case "values":
			if len(diff.Values) > 0 {
				return true
			}
		case "errors":
			if diff.Errors != nil || diff.ErrorsCleared {
				return true
			}
		case "stage":
			if diff.CurrentStage != nil {
				return true
			}
		case "status":
			if diff.Status != nil {
				return true
			}
		}
	}
	return false
}

// -- Helpers --

func (s *Server) response(state *domain.State, verdict *schema.Verdict, diff *domain.StateDiff) SessionResponse {
	resp := SessionResponse{
		State: *s.redactState(state),
		Stage: s.Engine.CurrentStage(state),
		Diff:  s.redactDiff(diff),
	}
	if verdict != nil {
		v := toVerdict(*verdict)
		resp.Verdict = &v
	}
	return resp
}

func toVerdict(v schema.Verdict) VerdictResponse {
	return VerdictResponse{Valid: v.Valid, Errors: v.Errors}
}

func (s *Server) redactState(state *domain.State) *domain.State {
	out := state.Clone()
	s.redact(out.Values)
	return out
}

func (s *Server) redactDiff(diff *domain.StateDiff) *domain.StateDiff {
	if diff == nil || len(diff.Values) == 0 {
		return diff
	}
	out := *diff
	out.Values = make(map[string]any, len(diff.Values))
	for k, v := range diff.Values {
		out.Values[k] = v
	}
	s.redact(out.Values)
	return &out
}

func (s *Server) redact(values map[string]any) {
	for k, v := range values {
		if s.sensitive[k] && v != nil {
			values[k] = Redacted
		}
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, http.StatusBadRequest, err)
}

func (s *Server) getSpec(w http.ResponseWriter, r *http.Request) {
	spec, err := rawSpec()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("load openapi document: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/yaml")
	w.Write(spec)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotFinalStage), errors.Is(err, domain.ErrSessionSubmitted):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrStageOutOfRange):
		status = http.StatusBadRequest
	}
	s.writeError(w, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Onboard API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
