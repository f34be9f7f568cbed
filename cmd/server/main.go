package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fairykipp/backend/internal/config"
	"fairykipp/backend/internal/handler"
	"fairykipp/backend/internal/llm"
	"fairykipp/backend/internal/middleware"
	"fairykipp/backend/internal/story"
	"fairykipp/backend/internal/story/rules"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] Failed to load configuration: %v", err)
	}
	log.Printf("[INFO] Starting Fairykipp backend env=%s provider=%s", cfg.Env, cfg.Provider)

	lexicon := rules.DefaultLexicon()
	if cfg.RulesFile != "" {
		lexicon, err = rules.LoadLexicon(cfg.RulesFile)
		if err != nil {
			log.Fatalf("[FATAL] Failed to load rules lexicon: %v", err)
		}
		log.Printf("[INFO] Loaded rules lexicon from %s", cfg.RulesFile)
	}

	var generator *story.Generator
	client, err := llm.NewClient(context.Background(), llm.Settings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		log.Printf("[WARN] Failed to initialize completion client: %v", err)
		log.Println("[WARN] Story generation will be unavailable")
	} else {
		generator = story.NewGenerator(client, lexicon, cfg.MaxAttempts, story.DefaultAttemptTimeout)
		log.Println("[INFO] Story generator initialized successfully")
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())

	allowedOrigins := cfg.AllowedOrigins
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "Method not allowed",
			"code":  "METHOD_NOT_ALLOWED",
		})
	})

	ipLimiter := middleware.NewIPRateLimiter(rate.Every(1*time.Second), 2)
	dailyQuota := middleware.NewDailyQuota(500)
	log.Printf("[INFO] Rate limiting enabled")

	h := handler.New(generator)

	// Health check endpoints (outside /api group, no rate limiting)
	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)

	api := r.Group("/api")
	{
		api.POST("/story",
			middleware.TokenAuth(cfg.Token),
			middleware.RateLimitMiddleware(ipLimiter, dailyQuota),
			h.HandleStory,
		)
	}

	log.Printf("[INFO] Server ready port=%s allowed_origins=%v", cfg.Port, allowedOrigins)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
