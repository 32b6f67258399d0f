package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/quizsession"
	"github.com/LksLvnt/studymate/internal/repository"
	"github.com/LksLvnt/studymate/internal/sm2"
)

// writeError maps domain errors onto the API's three client-facing status
// codes. Anything unrecognized is a 500 and the detail stays in the log.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "the record was modified concurrently, retry the request"})
	case errors.Is(err, sm2.ErrInvalidQuality),
		errors.Is(err, quizsession.ErrInvalidOption),
		errors.Is(err, quizsession.ErrNoSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, quizsession.ErrNoActiveQuiz),
		errors.Is(err, quizsession.ErrQuizInProgress),
		errors.Is(err, quizsession.ErrAlreadyConfirmed),
		errors.Is(err, quizsession.ErrNotFinished):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// currentUserID reads the authenticated user's ID placed in the context by
// the session middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}
