package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/image-classify/internal/logging"
)

// Persistence failure modes. Callers branch with errors.Is.
var (
	ErrDuplicateUsername  = errors.New("repository: username already exists")
	ErrUnknownUser        = errors.New("repository: unknown user")
	ErrInsufficientTokens = errors.New("repository: insufficient tokens")
)

// User is one account row: credentials and token balance live together so
// registration initializes both in a single insert.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;size:64"`
	PasswordHash []byte    `gorm:"column:password_hash;not null"`
	Tokens       int64     `gorm:"column:tokens;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "users"
}

// UserRepository provides account and token ledger persistence.
type UserRepository struct {
	db             *gorm.DB
	logger         *zap.Logger
	retryAttempts  int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:             db,
		logger:         logger.Named("user_repository"),
		retryAttempts:  3,
		initialBackoff: 50 * time.Millisecond,
		maxBackoff:     time.Second,
	}
}

// AutoMigrate ensures the schema is available.
func (r *UserRepository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&User{}, &ClassificationLog{})
}

// Ping reports whether the underlying database is reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateUser inserts a new account with the given password hash and starting
// token balance. The unique index on username is the authoritative duplicate
// guard; a concurrent insert of the same name surfaces as ErrDuplicateUsername.
func (r *UserRepository) CreateUser(ctx context.Context, username string, passwordHash []byte, startingTokens int64) error {
	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
		Tokens:       startingTokens,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateUsername
		}
		return logging.NewOperationError("repository.create_user", "", err)
	}
	return nil
}

// FindByUsername loads an account, retrying transient failures.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.executeWithRetry(ctx, "repository.find_by_username", "", func() error {
		return r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return &user, nil
}

// Balance returns the current token balance. Unknown users read as zero;
// callers that need existence must have verified credentials already.
func (r *UserRepository) Balance(ctx context.Context, username string) (int64, error) {
	user, err := r.FindByUsername(ctx, username)
	if errors.Is(err, ErrUnknownUser) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return user.Tokens, nil
}

// ChargeToken atomically spends one token. The balance test and the
// decrement happen in a single conditional UPDATE so concurrent charges on
// the same row serialize at the database and can never drive the balance
// negative. Ledger mutations are never retried: a lost ack must not
// double-apply.
func (r *UserRepository) ChargeToken(ctx context.Context, username string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("username = ? AND tokens > 0", username).
		UpdateColumn("tokens", gorm.Expr("tokens - 1"))
	if res.Error != nil {
		return logging.NewOperationError("repository.charge_token", "", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByUsername(ctx, username); errors.Is(err, ErrUnknownUser) {
			return ErrUnknownUser
		}
		return ErrInsufficientTokens
	}
	return nil
}

// AddTokens atomically credits amount tokens and returns the new balance.
// Amount validation belongs to the caller.
func (r *UserRepository) AddTokens(ctx context.Context, username string, amount int64) (int64, error) {
	var tokens int64
	res := r.db.WithContext(ctx).
		Raw("UPDATE users SET tokens = tokens + ? WHERE username = ? RETURNING tokens", amount, username).
		Scan(&tokens)
	if res.Error != nil {
		return 0, logging.NewOperationError("repository.add_tokens", "", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrUnknownUser
	}
	return tokens, nil
}

func (r *UserRepository) executeWithRetry(ctx context.Context, operation, requestID string, fn func() error) error {
	if r.retryAttempts <= 1 {
		return fn()
	}

	backoff := r.initialBackoff
	opLogger := logging.WithOperation(r.logger, operation, requestID)
	var err error
	for attempt := 0; attempt < r.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, requestID, ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= r.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("database operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if !isTransientError(err) || attempt == r.retryAttempts-1 {
			return err
		}

		opLogger.Warn("transient database error", zap.Error(err), zap.Int("attempt", attempt+1))
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var temporary interface{ Temporary() bool }
	if errors.As(err, &temporary) && temporary.Temporary() {
		return true
	}

	return false
}
