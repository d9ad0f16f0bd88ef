package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/ports"
)

type secretsMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewSecretsMiddleware creates a middleware that drops values whose field
// name matches one of the patterns before they reach the store. A resumed
// session therefore asks for those fields again.
func NewSecretsMiddleware(patterns ...string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid secret pattern %q: %w", p, err)
		}
		compiled[i] = re
	}
	return func(next ports.StateStore) ports.StateStore {
		return &secretsMiddleware{next: next, patterns: compiled}
	}, nil
}

func (m *secretsMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	// The caller keeps using its copy.
	cloned := state.Clone()
	for field := range cloned.Values {
		if m.secret(field) {
			delete(cloned.Values, field)
			delete(cloned.Errors, field)
		}
	}
	return m.next.Save(ctx, sessionID, cloned)
}

func (m *secretsMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *secretsMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *secretsMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *secretsMiddleware) secret(field string) bool {
	for _, p := range m.patterns {
		if p.MatchString(field) {
			return true
		}
	}
	return false
}
