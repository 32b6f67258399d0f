package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/models"
)

// fakeIngestStore records every document handed to it and can fail the write.
type fakeIngestStore struct {
	saved    []models.Document
	chunks   [][]models.DocumentChunk
	failWith error
}

func (f *fakeIngestStore) CreateDocumentWithChunks(ctx context.Context, doc *models.Document, chunks []models.DocumentChunk) error {
	f.saved = append(f.saved, *doc)
	f.chunks = append(f.chunks, chunks)
	return f.failWith
}

func newTestIngestService(store IngestStore) *IngestService {
	return &IngestService{log: zap.NewNop(), store: store}
}

func TestIngestTextStoresReadyDocumentInOneWrite(t *testing.T) {
	store := &fakeIngestStore{}
	svc := newTestIngestService(store)

	doc, err := svc.IngestText(context.Background(), "user-1", "notes.txt", "os", "some lecture notes", 3)
	require.NoError(t, err)

	assert.Equal(t, models.DocumentReady, doc.Status)
	assert.Equal(t, 1, doc.ChunkCount)
	require.Len(t, store.saved, 1)
	assert.Equal(t, models.DocumentReady, store.saved[0].Status)
	require.Len(t, store.chunks[0], 1)
	assert.Equal(t, "some lecture notes", store.chunks[0][0].Content)
}

func TestIngestTextEmptyInputStoresErrorDocument(t *testing.T) {
	store := &fakeIngestStore{}
	svc := newTestIngestService(store)

	doc, err := svc.IngestText(context.Background(), "user-1", "blank.txt", "", "   \n ", 0)
	require.NoError(t, err)

	assert.Equal(t, models.DocumentError, doc.Status)
	require.Len(t, store.saved, 1)
	assert.Equal(t, models.DocumentError, store.saved[0].Status)
	assert.Empty(t, store.chunks[0])
}

// A failed write must not leave a document stranded in a non-terminal state:
// the document and its chunks go down in one commit, and every document the
// service hands to the store already carries a terminal status.
func TestIngestTextFailedWriteLeavesNoProcessingDocument(t *testing.T) {
	store := &fakeIngestStore{failWith: errors.New("connection reset")}
	svc := newTestIngestService(store)

	_, err := svc.IngestText(context.Background(), "user-1", "notes.txt", "os", "some lecture notes", 1)
	require.Error(t, err)

	require.Len(t, store.saved, 1)
	for _, saved := range store.saved {
		assert.NotEqual(t, models.DocumentProcessing, saved.Status)
	}
}

func TestChunkTextEmpty(t *testing.T) {
	assert.Nil(t, ChunkText(""))
	assert.Nil(t, ChunkText("   \n\t  "))
}

func TestChunkTextShortInputIsSingleChunk(t *testing.T) {
	chunks := ChunkText("short document text")
	require.Len(t, chunks, 1)
	assert.Equal(t, "short document text", chunks[0])
}

func TestChunkTextOverlap(t *testing.T) {
	text := strings.Repeat("a", ChunkSize) + strings.Repeat("b", 500)
	chunks := ChunkText(text)

	require.Len(t, chunks, 2)
	assert.Len(t, []rune(chunks[0]), ChunkSize)
	// The second chunk starts ChunkOverlap runes before the first one ends.
	assert.Equal(t, strings.Repeat("a", ChunkOverlap), chunks[1][:ChunkOverlap])
	assert.True(t, strings.HasSuffix(chunks[1], strings.Repeat("b", 500)))
}

func TestChunkTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", ChunkSize*3+123)
	chunks := ChunkText(text)

	step := ChunkSize - ChunkOverlap
	total := 0
	for i, c := range chunks {
		runes := len([]rune(c))
		if i < len(chunks)-1 {
			assert.Equal(t, ChunkSize, runes)
		}
		total += runes
	}
	// Every rune is covered once plus one overlap per boundary.
	assert.Equal(t, len(text)+(len(chunks)-1)*ChunkOverlap, total)
	assert.Equal(t, (len(text)-ChunkSize+step-1)/step+1, len(chunks))
}

func TestChunkTextMultibyte(t *testing.T) {
	text := strings.Repeat("日", ChunkSize+100)
	chunks := ChunkText(text)

	require.Len(t, chunks, 2)
	for _, c := range chunks {
		assert.True(t, strings.HasPrefix(c, "日"))
	}
	assert.Len(t, []rune(chunks[0]), ChunkSize)
}
