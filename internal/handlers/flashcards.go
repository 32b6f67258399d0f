package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/repository"
	"github.com/LksLvnt/studymate/internal/services"
)

type FlashcardHandler struct {
	log    *zap.Logger
	review *services.ReviewService
}

func NewFlashcardHandler(log *zap.Logger, review *services.ReviewService) *FlashcardHandler {
	return &FlashcardHandler{log: log, review: review}
}

func (h *FlashcardHandler) List(c *gin.Context) {
	cards, err := repository.ListFlashcards(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Due returns the review queue: cards whose next_review is at or before now,
// most overdue first.
func (h *FlashcardHandler) Due(c *gin.Context) {
	cards, err := repository.ListDueFlashcards(c.Request.Context(), currentUserID(c), time.Now().UTC())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

type reviewRequest struct {
	Quality *int `json:"quality" binding:"required"`
}

// Review grades one card. A quality outside 0..5 is a 400; a concurrent
// grade of the same card that still conflicts after a retry is a 409.
func (h *FlashcardHandler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a quality rating is required"})
		return
	}

	card, event, err := h.review.GradeCard(c.Request.Context(), currentUserID(c), c.Param("id"), *req.Quality)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card, "event": event})
}

func (h *FlashcardHandler) History(c *gin.Context) {
	events, err := repository.ListCardReviewEvents(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
