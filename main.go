package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/image-classify/internal/auth"
	"github.com/example/image-classify/internal/fetcher"
	"github.com/example/image-classify/internal/grpcclient"
	"github.com/example/image-classify/internal/handlers"
	"github.com/example/image-classify/internal/logging"
	"github.com/example/image-classify/internal/repository"
	"github.com/example/image-classify/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	// The admin secret hash must come from the environment; there is no
	// in-code fallback.
	adminHash := os.Getenv("ADMIN_PW_HASH")
	if adminHash == "" {
		logger.Fatal("ADMIN_PW_HASH is required")
	}

	db := initDatabase(ctx, logger)
	repo := repository.NewUserRepository(db, logger)
	if err := repo.AutoMigrate(ctx); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	redisCtx, redisCancel := context.WithTimeout(ctx, 5*time.Second)
	defer redisCancel()
	redisClient := initRedis(redisCtx, logger)

	classifierAddr := getEnv("CLASSIFIER_ADDR", "inference:50051")
	model, conn, err := grpcclient.DialClassifier(ctx, classifierAddr, logger)
	if err != nil {
		logger.Fatal("failed to connect to classifier", zap.Error(err))
	}
	defer conn.Close()

	jwtSecret := []byte(getEnv("JWT_SECRET", "dev-secret"))
	startingTokens := getEnvInt64("STARTING_TOKENS", 6)
	maxImageBytes := getEnvInt64("MAX_IMAGE_BYTES", 8<<20)
	fetchTimeout := time.Duration(getEnvInt64("FETCH_TIMEOUT_SECONDS", 10)) * time.Second
	topK := int32(getEnvInt64("TOP_K", 5))

	cache := usecase.NewRedisCache(redisClient)
	images := fetcher.NewImageFetcher(maxImageBytes, fetchTimeout)
	accounts := usecase.NewAccountUseCase(repo, jwtSecret, startingTokens, logger)
	classifyUC := usecase.NewClassificationUseCase(accounts, repo, repo, cache, images, model, topK, logger)
	adminUC := usecase.NewAdminUseCase(repo, repo, []byte(adminHash), logger)

	r := gin.Default()
	handlers.RegisterRoutes(r, accounts, classifyUC, adminUC, auth.JWTMiddleware(jwtSecret), readyCheck(repo, conn))

	addr := ":" + getEnv("PORT", "5025")
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	logger.Info("classification API listening", zap.String("addr", addr))
	if err := serveHTTPServer(server, 15*time.Second, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func initDatabase(ctx context.Context, zapLogger *zap.Logger) *gorm.DB {
	dsn := getEnv("DATABASE_DSN", "host=postgres user=postgres password=postgres dbname=imageclassify port=5432 sslmode=disable")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn), TranslateError: true})
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("failed to access db handle", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		zapLogger.Fatal("database ping failed", zap.Error(err))
	}

	return db
}

func initRedis(ctx context.Context, zapLogger *zap.Logger) *redis.Client {
	addr := getEnv("REDIS_ADDR", "redis:6379")
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	return client
}

func readyCheck(repo *repository.UserRepository, conn *grpc.ClientConn) handlers.ReadyCheck {
	return func(ctx context.Context) gin.H {
		return gin.H{
			"db":         repo.Ping(ctx) == nil,
			"classifier": conn.GetState() == connectivity.Ready,
		}
	}
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
