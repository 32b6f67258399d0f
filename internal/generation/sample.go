package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/LksLvnt/studymate/internal/models"
)

// SampleGenerator serves canned content from a sample YAML file. It stands in
// for the external generation pipeline in development and tests, so every
// consumer exercises the same validation path real generated content takes.
type SampleGenerator struct {
	content *models.SampleContent
}

func NewSampleGenerator(path string) (*SampleGenerator, error) {
	content, err := models.LoadSampleContent(path)
	if err != nil {
		return nil, err
	}
	return &SampleGenerator{content: content}, nil
}

func (g *SampleGenerator) StudyGuide(ctx context.Context, chunks []string, subject string) (string, string, error) {
	if len(chunks) == 0 {
		return "", "", fmt.Errorf("no chunks to summarize")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", g.content.Subject)
	for i, chunk := range chunks {
		fmt.Fprintf(&b, "## Section %d\n\n%s\n\n", i+1, excerpt(chunk, 400))
	}
	return fmt.Sprintf("Study Guide: %s", g.content.Subject), b.String(), nil
}

func (g *SampleGenerator) Flashcards(ctx context.Context, chunks []string, count int, subject string) ([]CardPayload, error) {
	cards := make([]CardPayload, 0, len(g.content.Flashcards))
	for _, c := range g.content.Flashcards {
		cards = append(cards, CardPayload{Front: c.Front, Back: c.Back, Topic: c.Topic})
		if count > 0 && len(cards) == count {
			break
		}
	}
	return cards, nil
}

func (g *SampleGenerator) Quiz(ctx context.Context, chunks []string, count int, subject string) (string, []QuestionPayload, error) {
	questions := make([]QuestionPayload, 0, len(g.content.Quiz.Questions))
	for _, q := range g.content.Quiz.Questions {
		questions = append(questions, QuestionPayload{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
			Topic:        q.Topic,
		})
		if count > 0 && len(questions) == count {
			break
		}
	}
	return g.content.Quiz.Title, questions, nil
}

func excerpt(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "…"
}
