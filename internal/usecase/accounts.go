package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/image-classify/internal/logging"
	"github.com/example/image-classify/internal/repository"
)

// AccountStore defines the account persistence operations needed by the
// registration and login flows.
type AccountStore interface {
	CreateUser(ctx context.Context, username string, passwordHash []byte, startingTokens int64) error
	FindByUsername(ctx context.Context, username string) (*repository.User, error)
}

// AccountUseCase handles registration and credential verification.
type AccountUseCase struct {
	store          AccountStore
	logger         *zap.Logger
	jwtSecret      []byte
	tokenTTL       time.Duration
	startingTokens int64
}

// NewAccountUseCase constructs the account flow. startingTokens is the
// balance granted at registration; jwtSecret signs the session token
// returned by Login.
func NewAccountUseCase(store AccountStore, jwtSecret []byte, startingTokens int64, logger *zap.Logger) *AccountUseCase {
	return &AccountUseCase{
		store:          store,
		logger:         logger.Named("account_usecase"),
		jwtSecret:      jwtSecret,
		tokenTTL:       time.Hour,
		startingTokens: startingTokens,
	}
}

// Register creates a new account. The plaintext password is hashed with
// bcrypt and never stored or logged; the token balance is initialized in the
// same insert.
func (uc *AccountUseCase) Register(ctx context.Context, username, password string) error {
	opLogger := logging.WithUser(uc.logger, username)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		opLogger.Error("password hashing failed", zap.Error(err))
		return logging.NewOperationError("usecase.register", "", err)
	}

	if err := uc.store.CreateUser(ctx, username, hash, uc.startingTokens); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return ErrUserExists
		}
		opLogger.Error("account creation failed", zap.Error(err))
		return err
	}

	opLogger.Info("account registered", zap.Int64("starting_tokens", uc.startingTokens))
	return nil
}

// VerifyCredentials checks a username/password pair. The hash comparison is
// bcrypt's own, which is timing-stable; a plain equality check is never used.
func (uc *AccountUseCase) VerifyCredentials(ctx context.Context, username, password string) error {
	user, err := uc.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			return ErrInvalidUsername
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// Login verifies credentials and issues a signed session token for the
// bearer-protected endpoints.
func (uc *AccountUseCase) Login(ctx context.Context, username, password string) (string, error) {
	if err := uc.VerifyCredentials(ctx, username, password); err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		logging.WithUser(uc.logger, username).Error("token signing failed", zap.Error(err))
		return "", logging.NewOperationError("usecase.login", "", err)
	}
	return signed, nil
}
