package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/generation"
	"github.com/LksLvnt/studymate/internal/models"
	"github.com/LksLvnt/studymate/internal/repository"
)

// Chunking parameters, in runes. Consecutive chunks share an overlap so
// sentences cut at a boundary appear whole in at least one chunk.
const (
	ChunkSize    = 2000
	ChunkOverlap = 200
)

func nowUTC() time.Time { return time.Now().UTC() }

// ChunkText slices extracted text into overlapping windows in reading order.
// Whitespace-only input yields no chunks.
func ChunkText(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	runes := []rune(trimmed)
	if len(runes) <= ChunkSize {
		return []string{string(runes)}
	}

	var chunks []string
	step := ChunkSize - ChunkOverlap
	for start := 0; start < len(runes); start += step {
		end := start + ChunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// IngestStore is the persistence surface document ingestion needs. The
// production implementation delegates to the repository package.
type IngestStore interface {
	CreateDocumentWithChunks(ctx context.Context, doc *models.Document, chunks []models.DocumentChunk) error
}

type gormIngestStore struct{}

func (gormIngestStore) CreateDocumentWithChunks(ctx context.Context, doc *models.Document, chunks []models.DocumentChunk) error {
	return repository.CreateDocumentWithChunks(ctx, doc, chunks)
}

// IngestService turns uploaded documents into stored chunks and drives the
// generation of study material from them.
type IngestService struct {
	log   *zap.Logger
	gen   generation.Generator
	store IngestStore
}

func NewIngestService(log *zap.Logger, gen generation.Generator) *IngestService {
	return &IngestService{log: log, gen: gen, store: gormIngestStore{}}
}

// IngestText stores a new document and its chunked text. The row is written
// in a single commit already carrying its terminal status: ready with its
// chunks, or error when no usable text came out of extraction. A failed
// write leaves no document behind, so nothing is ever stuck in processing.
func (s *IngestService) IngestText(ctx context.Context, userID, filename, subject, text string, pageCount int) (*models.Document, error) {
	doc := &models.Document{
		UserID:    userID,
		Filename:  filename,
		Subject:   subject,
		PageCount: pageCount,
	}

	pieces := ChunkText(text)
	if len(pieces) == 0 {
		s.log.Warn("document contained no extractable text",
			zap.String("filename", filename),
		)
		doc.Status = models.DocumentError
		if err := s.store.CreateDocumentWithChunks(ctx, doc, nil); err != nil {
			return nil, err
		}
		return doc, nil
	}

	chunks := make([]models.DocumentChunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = models.DocumentChunk{
			ChunkIndex: i,
			Content:    content,
		}
	}
	doc.Status = models.DocumentReady
	doc.ChunkCount = len(chunks)
	if err := s.store.CreateDocumentWithChunks(ctx, doc, chunks); err != nil {
		return nil, err
	}

	s.log.Info("document ingested",
		zap.String("document_id", doc.ID),
		zap.String("filename", filename),
		zap.Int("chunks", len(chunks)),
	)
	return doc, nil
}

func (s *IngestService) chunkContents(ctx context.Context, doc *models.Document) ([]string, error) {
	if doc.Status != models.DocumentReady {
		return nil, fmt.Errorf("document %s is not ready (status %s)", doc.ID, doc.Status)
	}
	chunks, err := repository.ListChunks(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}
	return contents, nil
}

// GenerateFlashcards asks the generator for cards over the document's text
// and stores the validated result with fresh scheduling state.
func (s *IngestService) GenerateFlashcards(ctx context.Context, doc *models.Document, count int) ([]models.Flashcard, error) {
	contents, err := s.chunkContents(ctx, doc)
	if err != nil {
		return nil, err
	}
	payloads, err := s.gen.Flashcards(ctx, contents, count, doc.Subject)
	if err != nil {
		return nil, err
	}
	if err := generation.ValidateCards(payloads); err != nil {
		return nil, err
	}
	cards := generation.BuildFlashcards(doc, payloads, nowUTC())
	if err := repository.CreateFlashcards(ctx, cards); err != nil {
		return nil, err
	}
	s.log.Info("flashcards generated",
		zap.String("document_id", doc.ID),
		zap.Int("count", len(cards)),
	)
	return cards, nil
}

// GenerateQuiz asks the generator for a question set and stores the quiz.
func (s *IngestService) GenerateQuiz(ctx context.Context, doc *models.Document, count int) (*models.Quiz, error) {
	contents, err := s.chunkContents(ctx, doc)
	if err != nil {
		return nil, err
	}
	title, payloads, err := s.gen.Quiz(ctx, contents, count, doc.Subject)
	if err != nil {
		return nil, err
	}
	if err := generation.ValidateQuestions(payloads); err != nil {
		return nil, err
	}
	if title == "" {
		title = fmt.Sprintf("Quiz: %s", doc.Filename)
	}
	quiz := generation.BuildQuiz(doc, title, payloads)
	if err := repository.CreateQuiz(ctx, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GenerateStudyGuide asks the generator for guide markdown and stores it.
func (s *IngestService) GenerateStudyGuide(ctx context.Context, doc *models.Document) (*models.StudyGuide, error) {
	contents, err := s.chunkContents(ctx, doc)
	if err != nil {
		return nil, err
	}
	title, markdown, err := s.gen.StudyGuide(ctx, contents, doc.Subject)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, fmt.Errorf("generated study guide is empty")
	}
	if title == "" {
		title = fmt.Sprintf("Study Guide: %s", doc.Filename)
	}
	guide := &models.StudyGuide{
		DocumentID:      doc.ID,
		Title:           title,
		ContentMarkdown: markdown,
	}
	if err := repository.CreateStudyGuide(ctx, guide); err != nil {
		return nil, err
	}
	return guide, nil
}

// ImportFlashcards stores an externally generated card payload against the
// document after structural validation.
func (s *IngestService) ImportFlashcards(ctx context.Context, doc *models.Document, payload []byte) ([]models.Flashcard, error) {
	parsed, err := generation.ParseCards(payload)
	if err != nil {
		return nil, err
	}
	cards := generation.BuildFlashcards(doc, parsed, nowUTC())
	if err := repository.CreateFlashcards(ctx, cards); err != nil {
		return nil, err
	}
	return cards, nil
}
