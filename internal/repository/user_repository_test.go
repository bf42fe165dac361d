package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type transientTestError struct{}

func (transientTestError) Error() string   { return "transient" }
func (transientTestError) Timeout() bool   { return true }
func (transientTestError) Temporary() bool { return true }

func TestExecuteWithRetryRetriesTransientErrors(t *testing.T) {
	repo := &UserRepository{
		logger:         zap.NewNop(),
		retryAttempts:  3,
		initialBackoff: time.Millisecond,
		maxBackoff:     2 * time.Millisecond,
	}

	attempts := 0
	err := repo.executeWithRetry(context.Background(), "test.operation", "req-1", func() error {
		attempts++
		if attempts < 2 {
			return transientTestError{}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestExecuteWithRetryStopsOnPermanentError(t *testing.T) {
	repo := &UserRepository{
		logger:         zap.NewNop(),
		retryAttempts:  3,
		initialBackoff: time.Millisecond,
		maxBackoff:     2 * time.Millisecond,
	}

	attempts := 0
	err := repo.executeWithRetry(context.Background(), "test.operation", "req-2", func() error {
		attempts++
		return gorm.ErrRecordNotFound
	})

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestExecuteWithRetryHonorsContextCancellation(t *testing.T) {
	repo := &UserRepository{
		logger:         zap.NewNop(),
		retryAttempts:  5,
		initialBackoff: 10 * time.Millisecond,
		maxBackoff:     20 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	err := repo.executeWithRetry(ctx, "test.operation", "req-3", func() error {
		attempts++
		return transientTestError{}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts == 0 {
		t.Fatal("expected at least one attempt")
	}
}

func TestIsDuplicateKeyDetectsUniqueViolations(t *testing.T) {
	if !isDuplicateKey(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("SQLSTATE 23505 should be a duplicate key")
	}
	if !isDuplicateKey(gorm.ErrDuplicatedKey) {
		t.Fatal("gorm.ErrDuplicatedKey should be a duplicate key")
	}
	if isDuplicateKey(&pgconn.PgError{Code: "40001"}) {
		t.Fatal("serialization failure is not a duplicate key")
	}
	if isDuplicateKey(errors.New("boom")) {
		t.Fatal("arbitrary error is not a duplicate key")
	}
}
