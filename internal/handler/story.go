package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"fairykipp/backend/internal/llm"
	"fairykipp/backend/internal/story"
	"fairykipp/backend/internal/story/prompt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// StoryRequest is the inbound body for POST /api/story.
type StoryRequest struct {
	MotifNoun   string   `json:"motifNoun" binding:"required,max=60"`
	Temperature *float64 `json:"temperature,omitempty"`
	Variant     string   `json:"variant,omitempty"`
}

// StoryResponseDTO carries the generated story back to the game client.
type StoryResponseDTO struct {
	Text string `json:"text"`
}

// Handler serves the story and probe routes. A nil generator means the
// server came up without upstream credentials and runs degraded.
type Handler struct {
	generator *story.Generator
}

// New creates a Handler around the injected generator.
func New(generator *story.Generator) *Handler {
	return &Handler{generator: generator}
}

// HandleStory runs one generation request. Auth and rate limiting happen in
// middleware before this point. Error responses never echo the motif word or
// any partial completion text.
func (h *Handler) HandleStory(c *gin.Context) {
	startTime := time.Now()
	requestID := uuid.New().String()[:8]

	var req StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: motifNoun is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	// Normalize Unicode to NFC form before constraint matching so lookalike
	// sequences cannot slip past the motif check.
	motif := strings.TrimSpace(norm.NFC.String(req.MotifNoun))
	if motif == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: motifNoun is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	variant, err := prompt.ParseVariant(req.Variant)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: unknown variant",
			"code":  "INVALID_VARIANT",
		})
		return
	}

	if h.generator == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Server not configured",
			"code":  "NOT_CONFIGURED",
		})
		return
	}

	res, err := h.generator.Generate(c.Request.Context(), story.Request{
		Motif:       motif,
		Variant:     variant,
		Temperature: req.Temperature,
	})
	duration := time.Since(startTime)

	if err != nil {
		log.Printf("[Story] req=%s failed after %v: %v", requestID, duration, err)

		switch {
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timed out. Please try again.",
				"code":  "TIMEOUT",
			})
		case llm.IsQuotaError(err):
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Upstream quota exceeded. Please try again later.",
				"code":  "UPSTREAM_RATE_LIMITED",
			})
		case errors.Is(err, story.ErrEmptyMotif):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: motifNoun is required",
				"code":  "INVALID_REQUEST",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Failed to generate story. Please try again.",
				"code":  "UPSTREAM_ERROR",
			})
		}
		return
	}

	log.Printf("[Story] req=%s variant=%s fallback=%t duration=%v",
		requestID, variant, res.UsedFallback, duration)

	c.JSON(http.StatusOK, StoryResponseDTO{Text: res.Text})
}
