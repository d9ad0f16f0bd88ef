package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/onboard/internal/config"
	"github.com/aretw0/onboard/pkg/adapters/memory"
	"github.com/aretw0/onboard/pkg/adapters/redis"
	"github.com/aretw0/onboard/pkg/persistence/middleware"
	"github.com/aretw0/onboard/pkg/ports"
	"github.com/aretw0/onboard/pkg/session"
)

// OpenSessions builds a session manager on the backend named by cfg.
// Extra middlewares run before the encryption layer, if any, so they see
// plain values.
// The returned close function releases backend connections.
func OpenSessions(cfg config.Config, logger *slog.Logger, mws ...middleware.Middleware) (*session.Manager, func() error, error) {
	var opts []session.Option
	if logger != nil {
		opts = append(opts, session.WithLogger(logger))
	}
	if cfg.Store.LockTTL > 0 {
		opts = append(opts, session.WithLockTTL(cfg.Store.LockTTL))
	}

	if cfg.Store.Encryption.Enabled() {
		enc, err := encryption(cfg.Store.Encryption)
		if err != nil {
			return nil, nil, err
		}
		mws = append(mws, enc)
	}

	var (
		store   ports.StateStore
		closeFn = func() error { return nil }
	)
	switch cfg.Store.Backend {
	case config.StoreMemory, "":
		store = memory.NewStore()

	case config.StoreRedis:
		var storeOpts []redis.Option
		if cfg.Store.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(cfg.Store.TTL))
		}
		prefix := redis.DefaultPrefix
		if cfg.Store.Prefix != "" {
			prefix = cfg.Store.Prefix
			storeOpts = append(storeOpts, redis.WithPrefix(prefix))
		}
		rs := redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB, storeOpts...)
		store, closeFn = rs, rs.Close
		opts = append(opts, session.WithLocker(redis.NewLocker(rs.Client(), prefix)))
		if !cfg.Store.Encryption.Enabled() && logger != nil {
			logger.Warn("session values are stored in plaintext; set store.encryption.key to encrypt them",
				"backend", cfg.Store.Backend, "addr", cfg.Store.Redis.Addr)
		}

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return session.NewManager(middleware.Chain(store, mws...), opts...), closeFn, nil
}

func encryption(cfg config.EncryptionConfig) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("store.encryption.key: %w", err)
	}
	ec := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cfg.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("store.encryption.fallback_keys[%d]: %w", i, err)
		}
		ec.FallbackKeys = append(ec.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(ec)
}
