package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

func newAccountFixture() (*AccountUseCase, *memoryStore) {
	store := newMemoryStore()
	return NewAccountUseCase(store, []byte(testJWTSecret), 6, zap.NewNop()), store
}

func TestRegisterThenLogin(t *testing.T) {
	uc, store := newAccountFixture()

	if err := uc.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := store.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.Tokens != 6 {
		t.Fatalf("expected starting balance 6, got %d", user.Tokens)
	}
	if bytes.Equal(user.PasswordHash, []byte("pw1")) {
		t.Fatal("password stored in cleartext")
	}

	token, err := uc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("login token invalid: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %s", claims.Subject)
	}
}

func TestRegisterDuplicateKeepsOriginalCredential(t *testing.T) {
	uc, store := newAccountFixture()

	if err := uc.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	original, _ := store.FindByUsername(context.Background(), "alice")

	err := uc.Register(context.Background(), "alice", "pw2")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	after, _ := store.FindByUsername(context.Background(), "alice")
	if !bytes.Equal(original.PasswordHash, after.PasswordHash) {
		t.Fatal("duplicate register mutated the stored credential")
	}
	if _, err := uc.Login(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("original credential no longer valid: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _ := newAccountFixture()
	_ = uc.Register(context.Background(), "alice", "pw1")

	_, err := uc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	uc, _ := newAccountFixture()

	_, err := uc.Login(context.Background(), "nobody", "pw")
	if !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}
