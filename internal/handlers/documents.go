package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/config"
	"github.com/LksLvnt/studymate/internal/repository"
	"github.com/LksLvnt/studymate/internal/services"
)

type DocumentHandler struct {
	log    *zap.Logger
	ingest *services.IngestService
}

func NewDocumentHandler(log *zap.Logger, ingest *services.IngestService) *DocumentHandler {
	return &DocumentHandler{log: log, ingest: ingest}
}

// Upload accepts a multipart text upload and ingests it. The uploaded file is
// already extracted text; PDF extraction happens client side or in a
// preprocessing step.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file upload is required"})
		return
	}
	maxBytes := int64(config.Conf.Server.MaxUploadMB) << 20
	if fileHeader.Size > maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the upload size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	defer file.Close()

	text, err := io.ReadAll(io.LimitReader(file, maxBytes))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	pageCount, _ := strconv.Atoi(c.PostForm("page_count"))
	doc, err := h.ingest.IngestText(c.Request.Context(), currentUserID(c),
		fileHeader.Filename, c.PostForm("subject"), string(text), pageCount)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := repository.ListDocuments(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := repository.GetDocument(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

type generateRequest struct {
	Count int `json:"count"`
}

func (h *DocumentHandler) GenerateFlashcards(c *gin.Context) {
	doc, err := repository.GetDocument(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	var req generateRequest
	_ = c.ShouldBindJSON(&req)

	cards, err := h.ingest.GenerateFlashcards(c.Request.Context(), doc, req.Count)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cards)
}

func (h *DocumentHandler) GenerateQuiz(c *gin.Context) {
	doc, err := repository.GetDocument(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	var req generateRequest
	_ = c.ShouldBindJSON(&req)

	quiz, err := h.ingest.GenerateQuiz(c.Request.Context(), doc, req.Count)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *DocumentHandler) GenerateStudyGuide(c *gin.Context) {
	doc, err := repository.GetDocument(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	guide, err := h.ingest.GenerateStudyGuide(c.Request.Context(), doc)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, guide)
}

func (h *DocumentHandler) ListStudyGuides(c *gin.Context) {
	guides, err := repository.ListStudyGuides(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, guides)
}

func (h *DocumentHandler) GetStudyGuide(c *gin.Context) {
	guide, err := repository.GetStudyGuide(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, guide)
}
