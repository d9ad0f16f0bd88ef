package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/onboard/pkg/adapters/memory"
	"github.com/aretw0/onboard/pkg/adapters/redis"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/persistence/middleware"
	"github.com/aretw0/onboard/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func encrypted(t *testing.T, next ports.StateStore, cfg middleware.EncryptionConfig) ports.StateStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	if err != nil {
		t.Fatalf("NewEncryptionMiddleware() error = %v", err)
	}
	return mw(next)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, encrypted(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}

func TestEncryptionMiddleware_RedisContract(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redis.NewFromClient(client)
	ports.RunStateStoreContract(t, encrypted(t, store, middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})

	ctx := context.Background()
	state := domain.NewState("s1")
	state.CurrentStage = 3
	state.Values["password"] = "Abcdef1!"

	if err := secure.Save(ctx, "s1", state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, err := underlying.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if val, ok := stored.Values["password"]; ok {
		t.Fatalf("Expected password to be hidden, found: %v", val)
	}
	if _, ok := stored.Values[middleware.EnvelopeKey]; !ok {
		t.Fatal("Expected envelope in values")
	}
	if stored.CurrentStage != 3 || stored.History != nil {
		t.Errorf("envelope = stage %d, history %v; want stage 3 and no history", stored.CurrentStage, stored.History)
	}

	loaded, err := secure.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Values["password"] != "Abcdef1!" {
		t.Errorf("Expected password to round-trip, got %v", loaded.Values["password"])
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureOld := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: oldKey})
	state := domain.NewState("rotation")
	state.Values["name"] = "old"
	if err := secureOld.Save(ctx, "rotation", state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	secureNew := encrypted(t, underlying, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	loaded, err := secureNew.Load(ctx, "rotation")
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded.Values["name"] != "old" {
		t.Errorf("Decryption with fallback key failed")
	}

	loaded.Values["name"] = "new"
	if err := secureNew.Save(ctx, "rotation", loaded); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}
	if _, err := secureOld.Load(ctx, "rotation"); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_PlainState(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	if err := underlying.Save(ctx, "plain", domain.NewState("plain")); err != nil {
		t.Fatal(err)
	}

	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if _, err := secure.Load(ctx, "plain"); !errors.Is(err, middleware.ErrNotEncrypted) {
		t.Errorf("Load() error = %v, want ErrNotEncrypted", err)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	if _, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")}); err == nil {
		t.Error("Expected error for invalid key size")
	}
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	got, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	if err != nil || string(got) != string(key) {
		t.Errorf("ParseKey() = %v, %v", got, err)
	}

	if _, err := middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
		t.Error("ParseKey() should reject short keys")
	}
	if _, err := middleware.ParseKey("%%%"); err == nil {
		t.Error("ParseKey() should reject invalid base64")
	}
}
