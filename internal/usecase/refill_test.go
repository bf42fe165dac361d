package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/image-classify/internal/repository"
)

const testAdminSecret = "rotate-me"

func newAdminFixture(t *testing.T) (*AdminUseCase, *memoryStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminSecret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin secret: %v", err)
	}
	store := newMemoryStore()
	return NewAdminUseCase(store, store, hash, zap.NewNop()), store
}

func TestRefillCreditsExactAmount(t *testing.T) {
	uc, store := newAdminFixture(t)
	_ = store.CreateUser(context.Background(), "alice", []byte("hash"), 1)

	balance, err := uc.Refill(context.Background(), "alice", testAdminSecret, 5)
	if err != nil {
		t.Fatalf("refill failed: %v", err)
	}
	if balance != 6 {
		t.Fatalf("expected balance 6, got %d", balance)
	}
}

func TestRefillRejectsNonPositiveAmount(t *testing.T) {
	uc, store := newAdminFixture(t)
	_ = store.CreateUser(context.Background(), "alice", []byte("hash"), 4)

	for _, amount := range []int64{0, -3} {
		_, err := uc.Refill(context.Background(), "alice", testAdminSecret, amount)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if balance, _ := store.Balance(context.Background(), "alice"); balance != 4 {
		t.Fatalf("rejected refill mutated balance: %d", balance)
	}
}

func TestRefillRejectsBadSecret(t *testing.T) {
	uc, store := newAdminFixture(t)
	_ = store.CreateUser(context.Background(), "alice", []byte("hash"), 4)

	_, err := uc.Refill(context.Background(), "alice", "guess", 5)
	if !errors.Is(err, ErrInvalidSecret) {
		t.Fatalf("expected ErrInvalidSecret, got %v", err)
	}
	if balance, _ := store.Balance(context.Background(), "alice"); balance != 4 {
		t.Fatalf("rejected refill mutated balance: %d", balance)
	}
}

func TestRefillUnknownUserCheckedBeforeSecret(t *testing.T) {
	uc, _ := newAdminFixture(t)

	_, err := uc.Refill(context.Background(), "nobody", "guess", 5)
	if !errors.Is(err, repository.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}
