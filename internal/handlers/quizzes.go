package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/quizsession"
	"github.com/LksLvnt/studymate/internal/repository"
)

// QuizHandler serves the quiz list and drives quiz sessions. Session state
// lives in memory only; an abandoned run leaves no trace in the database.
type QuizHandler struct {
	log      *zap.Logger
	sessions *quizsession.Registry
}

func NewQuizHandler(log *zap.Logger, sessions *quizsession.Registry) *QuizHandler {
	return &QuizHandler{log: log, sessions: sessions}
}

func (h *QuizHandler) List(c *gin.Context) {
	quizzes, err := repository.ListQuizzes(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) Get(c *gin.Context) {
	quiz, err := repository.GetQuiz(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Attempts(c *gin.Context) {
	attempts, err := repository.ListAttemptsForQuiz(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func (h *QuizHandler) Start(c *gin.Context) {
	userID := currentUserID(c)
	quiz, err := repository.GetQuiz(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if len(quiz.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quiz has no questions"})
		return
	}

	session := h.sessions.GetOrCreate(userID, quiz.ID)
	if err := session.Start(quiz); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

type selectRequest struct {
	Option *int `json:"option" binding:"required"`
}

func (h *QuizHandler) Select(c *gin.Context) {
	session := h.sessions.Get(currentUserID(c), c.Param("id"))
	if session == nil {
		writeError(c, h.log, quizsession.ErrNoActiveQuiz)
		return
	}
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "an option index is required"})
		return
	}
	if err := session.Select(*req.Option); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *QuizHandler) Confirm(c *gin.Context) {
	session := h.sessions.Get(currentUserID(c), c.Param("id"))
	if session == nil {
		writeError(c, h.log, quizsession.ErrNoActiveQuiz)
		return
	}
	if _, err := session.Confirm(); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// Next advances the session. Passing the last question finishes the run and
// persists its one attempt record before responding.
func (h *QuizHandler) Next(c *gin.Context) {
	session := h.sessions.Get(currentUserID(c), c.Param("id"))
	if session == nil {
		writeError(c, h.log, quizsession.ErrNoActiveQuiz)
		return
	}
	attempt, err := session.Next()
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if attempt != nil {
		if err := repository.SaveQuizAttempt(c.Request.Context(), attempt); err != nil {
			writeError(c, h.log, err)
			return
		}
		h.log.Info("quiz attempt recorded",
			zap.String("quiz_id", attempt.QuizID),
			zap.String("user_id", attempt.UserID),
			zap.Int("score", attempt.Score),
			zap.Int("total", attempt.Total),
		)
		c.JSON(http.StatusOK, gin.H{"session": session.Snapshot(), "attempt": attempt})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session.Snapshot()})
}

func (h *QuizHandler) Retry(c *gin.Context) {
	session := h.sessions.Get(currentUserID(c), c.Param("id"))
	if session == nil {
		writeError(c, h.log, quizsession.ErrNoActiveQuiz)
		return
	}
	if err := session.Retry(); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *QuizHandler) Exit(c *gin.Context) {
	userID := currentUserID(c)
	quizID := c.Param("id")
	if session := h.sessions.Get(userID, quizID); session != nil {
		session.Exit()
	}
	h.sessions.Remove(userID, quizID)
	c.Status(http.StatusNoContent)
}
