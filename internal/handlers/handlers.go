package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/image-classify/internal/auth"
	"github.com/example/image-classify/internal/classifier"
	"github.com/example/image-classify/internal/fetcher"
	"github.com/example/image-classify/internal/repository"
	"github.com/example/image-classify/internal/usecase"
)

// ReadyCheck reports per-dependency readiness for the readyz probe.
type ReadyCheck func(ctx context.Context) gin.H

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type classifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
}

type refillRequest struct {
	Username string `json:"username"`
	AdminPW  string `json:"admin_pw"`
	Amount   int64  `json:"amount"`
}

// envelope builds the legacy status/msg response body. All four core
// endpoints answer HTTP 200 with the outcome embedded, matching the
// original wire contract.
func envelope(status int, msg string) gin.H {
	return gin.H{"status": status, "msg": msg}
}

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, accounts *usecase.AccountUseCase, classify *usecase.ClassificationUseCase, admin *usecase.AdminUseCase, authMiddleware gin.HandlerFunc, ready ReadyCheck) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, ready(c.Request.Context()))
	})

	router.POST("/register", func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		err := accounts.Register(c.Request.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, usecase.ErrUserExists):
			c.JSON(http.StatusOK, envelope(301, "User already exists"))
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		default:
			c.JSON(http.StatusOK, envelope(200, "You successfully signed up for the API"))
		}
	})

	router.POST("/login", func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		token, err := accounts.Login(c.Request.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, usecase.ErrInvalidUsername):
			c.JSON(http.StatusOK, envelope(301, "Invalid Username"))
		case errors.Is(err, usecase.ErrInvalidPassword):
			c.JSON(http.StatusOK, envelope(302, "Invalid Password"))
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		default:
			c.JSON(http.StatusOK, gin.H{"status": 200, "msg": "Login successful", "token": token})
		}
	})

	router.POST("/classify", func(c *gin.Context) {
		var req classifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		predictions, err := classify.Classify(c.Request.Context(), req.Username, req.Password, req.URL)
		if err != nil {
			c.JSON(http.StatusOK, classifyFailure(err, req.URL))
			return
		}

		result := make(gin.H, len(predictions))
		for _, p := range predictions {
			result[p.Label] = p.Confidence
		}
		c.JSON(http.StatusOK, result)
	})

	router.POST("/refill", func(c *gin.Context) {
		var req refillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		_, err := admin.Refill(c.Request.Context(), req.Username, req.AdminPW, req.Amount)
		switch {
		case errors.Is(err, repository.ErrUnknownUser):
			c.JSON(http.StatusOK, envelope(301, "Invalid Username"))
		case errors.Is(err, usecase.ErrInvalidSecret):
			c.JSON(http.StatusOK, envelope(302, "Invalid Admin Password"))
		case errors.Is(err, usecase.ErrInvalidAmount):
			c.JSON(http.StatusOK, envelope(304, "Invalid Amount"))
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "refill failed"})
		default:
			c.JSON(http.StatusOK, envelope(200, "Refilled successfully"))
		}
	})

	authorized := router.Group("/", authMiddleware)

	authorized.GET("/balance", func(c *gin.Context) {
		username, ok := auth.GetUsername(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		balance, err := classify.BalanceOf(c.Request.Context(), username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "balance lookup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": username, "tokens": balance})
	})

	authorized.GET("/stats", func(c *gin.Context) {
		summary, err := classify.GetStatsSummary(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stats aggregation failed"})
			return
		}
		c.JSON(http.StatusOK, summary)
	})
}

// classifyFailure maps coordinator errors onto the legacy envelope.
func classifyFailure(err error, url string) gin.H {
	switch {
	case errors.Is(err, usecase.ErrInvalidUsername):
		return envelope(301, "Invalid Username")
	case errors.Is(err, usecase.ErrInvalidPassword):
		return envelope(302, "Invalid Password")
	case errors.Is(err, repository.ErrInsufficientTokens):
		return envelope(303, "You are out of tokens, please refill")
	case errors.Is(err, fetcher.ErrInvalidURL):
		if url == "" {
			return envelope(400, "No url Provided")
		}
		return envelope(400, "Invalid url provided")
	case errors.Is(err, fetcher.ErrTimeout):
		return envelope(408, "Image fetch timed out")
	case errors.Is(err, fetcher.ErrTooLarge):
		return envelope(413, "Image exceeds size limit")
	case errors.Is(err, fetcher.ErrNetwork):
		return envelope(500, "Unable to fetch image")
	case errors.Is(err, classifier.ErrUnsupportedFormat):
		return envelope(415, "Unsupported image format")
	default:
		return envelope(500, "Classification failed")
	}
}
