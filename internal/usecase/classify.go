package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/image-classify/internal/classifier"
	"github.com/example/image-classify/internal/fetcher"
	"github.com/example/image-classify/internal/logging"
	"github.com/example/image-classify/internal/repository"
)

// TokenLedger defines the ledger operations needed by the classification and
// refill flows. ChargeToken and AddTokens must be atomic per username.
type TokenLedger interface {
	Balance(ctx context.Context, username string) (int64, error)
	ChargeToken(ctx context.Context, username string) error
	AddTokens(ctx context.Context, username string, amount int64) (int64, error)
}

// ClassificationStore persists successful classification records.
type ClassificationStore interface {
	SaveLog(ctx context.Context, log *repository.ClassificationLog) error
	AggregateStats(ctx context.Context) (*repository.StatsAggregation, error)
}

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) error
}

// ImageSource retrieves remote image bytes under size and time bounds.
type ImageSource interface {
	Fetch(ctx context.Context, url string) (*fetcher.Resource, error)
}

// ClassificationUseCase orchestrates one classify request: credentials,
// fast-path balance read, fetch, inference, then the atomic charge. The
// ledger is only touched by the final charge, so every failure path leaves
// it exactly as it was.
type ClassificationUseCase struct {
	verifier       CredentialVerifier
	ledger         TokenLedger
	logs           ClassificationStore
	cache          Cache
	source         ImageSource
	model          classifier.Client
	logger         *zap.Logger
	topK           int32
	cacheTTL       time.Duration
	retryAttempts  int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

type cachedClassification struct {
	Hash        string                  `json:"sha1_hash"`
	Model       string                  `json:"model,omitempty"`
	Predictions []classifier.Prediction `json:"predictions"`
	CreatedAt   time.Time               `json:"created_at"`
}

// NewClassificationUseCase constructs the classify flow. topK caps the
// number of returned predictions.
func NewClassificationUseCase(verifier CredentialVerifier, ledger TokenLedger, logs ClassificationStore, cache Cache, source ImageSource, model classifier.Client, topK int32, logger *zap.Logger) *ClassificationUseCase {
	return &ClassificationUseCase{
		verifier:       verifier,
		ledger:         ledger,
		logs:           logs,
		cache:          cache,
		source:         source,
		model:          model,
		logger:         logger.Named("classification_usecase"),
		topK:           topK,
		cacheTTL:       5 * time.Minute,
		retryAttempts:  3,
		initialBackoff: 50 * time.Millisecond,
		maxBackoff:     time.Second,
	}
}

// Classify runs one request end to end and returns the ranked predictions.
//
// The charge happens only after a successful classification, as a single
// conditional ledger mutation. If a concurrent request drained the balance
// between the fast-path read and the charge, the computed result is
// discarded and the request fails with ErrInsufficientTokens: a token buys
// at most one delivered result, and no result is delivered unpaid.
func (uc *ClassificationUseCase) Classify(ctx context.Context, username, password, url string) ([]classifier.Prediction, error) {
	requestID := uuid.NewString()
	start := time.Now()
	opLogger := logging.WithUser(logging.WithOperation(uc.logger, "usecase.classify", requestID), username)

	if err := uc.verifier.VerifyCredentials(ctx, username, password); err != nil {
		return nil, err
	}

	// Fast-path read only; the atomic charge below is the authoritative gate.
	balance, err := uc.ledger.Balance(ctx, username)
	if err != nil {
		opLogger.Error("balance read failed", zap.Error(err))
		return nil, logging.NewOperationError("usecase.classify.balance", requestID, err)
	}
	if balance <= 0 {
		return nil, repository.ErrInsufficientTokens
	}

	resource, err := uc.source.Fetch(ctx, url)
	if err != nil {
		opLogger.Warn("image fetch failed", zap.Error(err))
		return nil, err
	}

	hash := sha1.Sum(resource.Data)
	hashHex := hex.EncodeToString(hash[:])

	predictions, hit := uc.cachedPredictions(ctx, requestID, hashHex)
	if !hit {
		predictions, err = uc.model.Classify(ctx, resource.Data, uc.topK)
		if err != nil {
			wrapped := logging.NewOperationError("usecase.classify.inference", requestID, err)
			opLogger.Error("inference failed", zap.Error(wrapped))
			return nil, err
		}
		if uc.topK > 0 && int32(len(predictions)) > uc.topK {
			predictions = predictions[:uc.topK]
		}
		uc.storePredictions(ctx, requestID, hashHex, predictions)
	}

	if err := uc.ledger.ChargeToken(ctx, username); err != nil {
		if errors.Is(err, repository.ErrInsufficientTokens) {
			opLogger.Info("charge lost to concurrent request, discarding result")
		} else {
			opLogger.Error("charge failed", zap.Error(err))
		}
		return nil, err
	}

	uc.persistLog(ctx, requestID, username, url, hashHex, predictions, time.Since(start))
	opLogger.Info("classification complete",
		zap.Int("predictions", len(predictions)),
		zap.Bool("cache_hit", hit),
		zap.Duration("duration", time.Since(start)))
	return predictions, nil
}

// cachedPredictions looks up a prior result by image hash. Any cache problem
// degrades to a miss; the cache must never fail a paying request.
func (uc *ClassificationUseCase) cachedPredictions(ctx context.Context, requestID, hashHex string) ([]classifier.Prediction, bool) {
	cacheKey := fmt.Sprintf("classification:%s", hashHex)
	raw, err := uc.withRedisGet(ctx, requestID, "cache.get.classification", cacheKey)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.WithOperation(uc.logger, "usecase.classify.cache", requestID).Warn("cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var payload cachedClassification
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logging.WithOperation(uc.logger, "usecase.classify.cache", requestID).Warn("failed to decode cached result", zap.Error(err))
		return nil, false
	}
	if len(payload.Predictions) == 0 {
		return nil, false
	}
	return payload.Predictions, true
}

func (uc *ClassificationUseCase) storePredictions(ctx context.Context, requestID, hashHex string, predictions []classifier.Prediction) {
	cacheKey := fmt.Sprintf("classification:%s", hashHex)
	payload := cachedClassification{
		Hash:        hashHex,
		Predictions: predictions,
		CreatedAt:   time.Now().UTC(),
	}
	serialized, err := json.Marshal(payload)
	if err != nil {
		logging.WithOperation(uc.logger, "usecase.classify.cache", requestID).Warn("failed to serialize result", zap.Error(err))
		return
	}
	if err := uc.withRedisRetry(ctx, requestID, "cache.set.classification", func() error {
		return uc.cache.Set(ctx, cacheKey, string(serialized), uc.cacheTTL)
	}); err != nil {
		logging.WithOperation(uc.logger, "usecase.classify.cache", requestID).Warn("cache write failed", zap.Error(err))
	}
}

// persistLog records the delivered result. The charge has already happened;
// an audit write failure is logged but cannot take the result back.
func (uc *ClassificationUseCase) persistLog(ctx context.Context, requestID, username, url, hashHex string, predictions []classifier.Prediction, elapsed time.Duration) {
	log := &repository.ClassificationLog{
		RequestID:  requestID,
		Username:   username,
		URL:        url,
		SHA1Hash:   hashHex,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if len(predictions) > 0 {
		log.TopLabel = predictions[0].Label
		log.TopConfidence = predictions[0].Confidence
	}
	if err := uc.logs.SaveLog(ctx, log); err != nil {
		logging.WithOperation(uc.logger, "usecase.classify.persist", requestID).Error("failed to persist classification log", zap.Error(err))
	}
}

func (uc *ClassificationUseCase) withRedisRetry(ctx context.Context, requestID, operation string, fn func() error) error {
	if uc.retryAttempts <= 1 {
		err := fn()
		return logging.NewOperationError(operation, requestID, err)
	}

	backoff := uc.initialBackoff
	opLogger := logging.WithOperation(uc.logger, operation, requestID)
	var err error
	for attempt := 0; attempt < uc.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, requestID, ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= uc.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("redis operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if !isTransientError(err) || attempt == uc.retryAttempts-1 {
			return logging.NewOperationError(operation, requestID, err)
		}

		opLogger.Warn("transient redis error", zap.Error(err), zap.Int("attempt", attempt+1))
	}
	return logging.NewOperationError(operation, requestID, err)
}

func (uc *ClassificationUseCase) withRedisGet(ctx context.Context, requestID, operation, cacheKey string) (string, error) {
	var result string
	err := uc.withRedisRetry(ctx, requestID, operation, func() error {
		value, err := uc.cache.Get(ctx, cacheKey)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
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
