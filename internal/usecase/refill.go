package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/image-classify/internal/logging"
	"github.com/example/image-classify/internal/repository"
)

// AdminUseCase handles administrative token refills. The admin secret is
// supplied as a bcrypt hash through configuration so it can be rotated
// without a rebuild; the comparison is bcrypt's own, never ==.
type AdminUseCase struct {
	store      AccountStore
	ledger     TokenLedger
	secretHash []byte
	logger     *zap.Logger
}

// NewAdminUseCase constructs the refill flow. secretHash is the bcrypt hash
// of the administrative secret.
func NewAdminUseCase(store AccountStore, ledger TokenLedger, secretHash []byte, logger *zap.Logger) *AdminUseCase {
	return &AdminUseCase{
		store:      store,
		ledger:     ledger,
		secretHash: secretHash,
		logger:     logger.Named("admin_usecase"),
	}
}

// Refill credits amount tokens to username and returns the new balance.
// The existence check runs before the secret check to keep the wire contract
// of the service stable (301 for unknown user, 302 for bad secret).
func (uc *AdminUseCase) Refill(ctx context.Context, username, secret string, amount int64) (int64, error) {
	opLogger := logging.WithUser(uc.logger, username)

	if _, err := uc.store.FindByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			return 0, repository.ErrUnknownUser
		}
		opLogger.Error("user lookup failed", zap.Error(err))
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword(uc.secretHash, []byte(secret)); err != nil {
		opLogger.Warn("refill rejected, bad admin secret")
		return 0, ErrInvalidSecret
	}

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	balance, err := uc.ledger.AddTokens(ctx, username, amount)
	if err != nil {
		opLogger.Error("ledger credit failed", zap.Error(err))
		return 0, err
	}

	opLogger.Info("tokens refilled", zap.Int64("amount", amount), zap.Int64("balance", balance))
	return balance, nil
}
