package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/image-classify/internal/auth"
	"github.com/example/image-classify/internal/classifier"
	"github.com/example/image-classify/internal/fetcher"
	"github.com/example/image-classify/internal/repository"
	"github.com/example/image-classify/internal/usecase"
)

const testJWTSecret = "test-secret"

type memStore struct {
	mu    sync.Mutex
	users map[string]*repository.User
	logs  []*repository.ClassificationLog
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*repository.User)}
}

func (s *memStore) CreateUser(ctx context.Context, username string, passwordHash []byte, startingTokens int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return repository.ErrDuplicateUsername
	}
	s.users[username] = &repository.User{Username: username, PasswordHash: passwordHash, Tokens: startingTokens}
	return nil
}

func (s *memStore) FindByUsername(ctx context.Context, username string) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[username]
	if !exists {
		return nil, repository.ErrUnknownUser
	}
	copied := *user
	return &copied, nil
}

func (s *memStore) Balance(ctx context.Context, username string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, exists := s.users[username]; exists {
		return user.Tokens, nil
	}
	return 0, nil
}

func (s *memStore) ChargeToken(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[username]
	if !exists {
		return repository.ErrUnknownUser
	}
	if user.Tokens <= 0 {
		return repository.ErrInsufficientTokens
	}
	user.Tokens--
	return nil
}

func (s *memStore) AddTokens(ctx context.Context, username string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[username]
	if !exists {
		return 0, repository.ErrUnknownUser
	}
	user.Tokens += amount
	return user.Tokens, nil
}

func (s *memStore) SaveLog(ctx context.Context, log *repository.ClassificationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return nil
}

func (s *memStore) AggregateStats(ctx context.Context) (*repository.StatsAggregation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &repository.StatsAggregation{TotalCount: int64(len(s.logs))}, nil
}

type nilCache struct{}

func (nilCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (nilCache) Get(ctx context.Context, key string) (string, error) {
	return "", redis.Nil
}

type fixedFetcher struct{}

func (fixedFetcher) Fetch(ctx context.Context, url string) (*fetcher.Resource, error) {
	if url == "" {
		return nil, fetcher.ErrInvalidURL
	}
	return &fetcher.Resource{Data: []byte("image-bytes"), ContentType: "image/jpeg"}, nil
}

type fixedModel struct{}

func (fixedModel) Classify(ctx context.Context, image []byte, topK int32) ([]classifier.Prediction, error) {
	return []classifier.Prediction{
		{Label: "golden_retriever", Confidence: 84.2},
		{Label: "labrador", Confidence: 9.1},
	}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	logger := zap.NewNop()
	secret := []byte(testJWTSecret)

	accounts := usecase.NewAccountUseCase(store, secret, 6, logger)
	classifyUC := usecase.NewClassificationUseCase(accounts, store, store, nilCache{}, fixedFetcher{}, fixedModel{}, 5, logger)

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin secret: %v", err)
	}
	adminUC := usecase.NewAdminUseCase(store, store, adminHash, logger)

	router := gin.New()
	RegisterRoutes(router, accounts, classifyUC, adminUC, auth.JWTMiddleware(secret), func(ctx context.Context) gin.H {
		return gin.H{"db": true, "classifier": true}
	})
	return router, store
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type statusBody struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Token  string `json:"token"`
}

func decodeStatus(t *testing.T, resp *httptest.ResponseRecorder) statusBody {
	t.Helper()
	var body statusBody
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestRegisterRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := postJSON(t, router, "/register", gin.H{"username": "alice", "password": "pw1"})
	if body := decodeStatus(t, resp); body.Status != 200 {
		t.Fatalf("expected embedded status 200, got %+v", body)
	}

	resp = postJSON(t, router, "/register", gin.H{"username": "alice", "password": "pw2"})
	body := decodeStatus(t, resp)
	if body.Status != 301 || body.Msg != "User already exists" {
		t.Fatalf("expected 301 duplicate, got %+v", body)
	}

	// The original credential must still work.
	resp = postJSON(t, router, "/login", gin.H{"username": "alice", "password": "pw1"})
	if body := decodeStatus(t, resp); body.Status != 200 {
		t.Fatalf("original credential rejected: %+v", body)
	}
}

func TestLoginStatusCodes(t *testing.T) {
	router, _ := newTestRouter(t)
	postJSON(t, router, "/register", gin.H{"username": "alice", "password": "pw1"})

	resp := postJSON(t, router, "/login", gin.H{"username": "nobody", "password": "pw1"})
	if body := decodeStatus(t, resp); body.Status != 301 || body.Msg != "Invalid Username" {
		t.Fatalf("expected 301, got %+v", body)
	}

	resp = postJSON(t, router, "/login", gin.H{"username": "alice", "password": "wrong"})
	if body := decodeStatus(t, resp); body.Status != 302 || body.Msg != "Invalid Password" {
		t.Fatalf("expected 302, got %+v", body)
	}

	resp = postJSON(t, router, "/login", gin.H{"username": "alice", "password": "pw1"})
	body := decodeStatus(t, resp)
	if body.Status != 200 || body.Token == "" {
		t.Fatalf("expected 200 with token, got %+v", body)
	}
}

func TestClassifySuccessReturnsScoresAndCharges(t *testing.T) {
	router, store := newTestRouter(t)
	postJSON(t, router, "/register", gin.H{"username": "alice", "password": "pw1"})

	resp := postJSON(t, router, "/classify", gin.H{"username": "alice", "password": "pw1", "url": "http://example.com/dog.jpg"})
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Code)
	}

	var scores map[string]float64
	if err := json.Unmarshal(resp.Body.Bytes(), &scores); err != nil {
		t.Fatalf("decode scores: %v", err)
	}
	if len(scores) == 0 {
		t.Fatal("expected non-empty label map")
	}
	for label, confidence := range scores {
		if confidence < 0 || confidence > 100 {
			t.Fatalf("confidence %f out of range for %q", confidence, label)
		}
	}

	if balance, _ := store.Balance(context.Background(), "alice"); balance != 5 {
		t.Fatalf("expected 5 tokens left, got %d", balance)
	}
}

func TestClassifyEmptyURL(t *testing.T) {
	router, store := newTestRouter(t)
	postJSON(t, router, "/register", gin.H{"username": "alice", "password": "pw1"})

	resp := postJSON(t, router, "/classify", gin.H{"username": "alice", "password": "pw1", "url": ""})
	body := decodeStatus(t, resp)
	if body.Status != 400 || body.Msg != "No url Provided" {
		t.Fatalf("expected 400 No url Provided, got %+v", body)
	}
	if balance, _ := store.Balance(context.Background(), "alice"); balance != 6 {
		t.Fatalf("balance changed: %d", balance)
	}
}

func TestClassifyOutOfTokens(t *testing.T) {
	router, store := newTestRouter(t)
	postJSON(t, router, "/register", gin.H{"username": "alice", "password": "pw1"})
	store.mu.Lock()
	store.users["alice"].Tokens = 0
	store.mu.Unlock()

	resp := postJSON(t, router, "/classify", gin.H{"username": "alice", "password": "pw1", "url": "http://example.com/dog.jpg"})
	body := decodeStatus(t, resp)
	if body.Status != 303 {
		t.Fatalf("expected 303, got %+v", body)
	}
}

func TestRefillStatusCodes(t *testing.T) {
	router, store := newTestRouter(t)
	postJSON(t, router, "/register", gin.H{"username": "alice", "password": "pw1"})

	resp := postJSON(t, router, "/refill", gin.H{"username": "nobody", "admin_pw": "admin-secret", "amount": 5})
	if body := decodeStatus(t, resp); body.Status != 301 {
		t.Fatalf("expected 301 unknown user, got %+v", body)
	}

	resp = postJSON(t, router, "/refill", gin.H{"username": "alice", "admin_pw": "guess", "amount": 5})
	if body := decodeStatus(t, resp); body.Status != 302 {
		t.Fatalf("expected 302 bad secret, got %+v", body)
	}

	resp = postJSON(t, router, "/refill", gin.H{"username": "alice", "admin_pw": "admin-secret", "amount": 0})
	if body := decodeStatus(t, resp); body.Status != 304 {
		t.Fatalf("expected 304 invalid amount, got %+v", body)
	}

	resp = postJSON(t, router, "/refill", gin.H{"username": "alice", "admin_pw": "admin-secret", "amount": 5})
	if body := decodeStatus(t, resp); body.Status != 200 || body.Msg != "Refilled successfully" {
		t.Fatalf("expected 200, got %+v", body)
	}
	if balance, _ := store.Balance(context.Background(), "alice"); balance != 11 {
		t.Fatalf("expected balance 11, got %d", balance)
	}
}

func TestBalanceRequiresBearerToken(t *testing.T) {
	router, _ := newTestRouter(t)
	postJSON(t, router, "/register", gin.H{"username": "alice", "password": "pw1"})

	req := httptest.NewRequest(http.MethodGet, "/balance", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	login := postJSON(t, router, "/login", gin.H{"username": "alice", "password": "pw1"})
	token := decodeStatus(t, login).Token

	req = httptest.NewRequest(http.MethodGet, "/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Username string `json:"username"`
		Tokens   int64  `json:"tokens"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if body.Username != "alice" || body.Tokens != 6 {
		t.Fatalf("unexpected balance body: %+v", body)
	}
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
