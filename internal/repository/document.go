package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/LksLvnt/studymate/internal/database"
	"github.com/LksLvnt/studymate/internal/models"
)

// CreateDocumentWithChunks stores a document together with its chunks and
// final status in a single commit. A document is never durably visible in a
// non-terminal state: a failure anywhere rolls the whole row back.
func CreateDocumentWithChunks(ctx context.Context, doc *models.Document, chunks []models.DocumentChunk) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		if len(chunks) > 0 {
			for i := range chunks {
				chunks[i].DocumentID = doc.ID
			}
			if err := tx.Create(&chunks).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func GetDocument(ctx context.Context, userID, docID string) (*models.Document, error) {
	var doc models.Document
	result := database.DB.WithContext(ctx).First(&doc, "id = ? AND user_id = ?", docID, userID)
	return &doc, translate(result.Error)
}

func ListDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	var docs []models.Document
	result := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs)
	return docs, result.Error
}

func ListChunks(ctx context.Context, docID string) ([]models.DocumentChunk, error) {
	var chunks []models.DocumentChunk
	result := database.DB.WithContext(ctx).
		Where("document_id = ?", docID).
		Order("chunk_index ASC").
		Find(&chunks)
	return chunks, result.Error
}

func CreateStudyGuide(ctx context.Context, guide *models.StudyGuide) error {
	return database.DB.WithContext(ctx).Create(guide).Error
}

func ListStudyGuides(ctx context.Context, userID string) ([]models.StudyGuide, error) {
	var guides []models.StudyGuide
	result := database.DB.WithContext(ctx).
		Joins("JOIN documents ON documents.id = study_guides.document_id").
		Where("documents.user_id = ?", userID).
		Order("study_guides.created_at DESC").
		Find(&guides)
	return guides, result.Error
}

func GetStudyGuide(ctx context.Context, userID, guideID string) (*models.StudyGuide, error) {
	var guide models.StudyGuide
	result := database.DB.WithContext(ctx).
		Joins("JOIN documents ON documents.id = study_guides.document_id").
		Where("study_guides.id = ? AND documents.user_id = ?", guideID, userID).
		First(&guide)
	return &guide, translate(result.Error)
}
