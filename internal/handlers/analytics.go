package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/analytics"
	"github.com/LksLvnt/studymate/internal/models"
	"github.com/LksLvnt/studymate/internal/repository"
)

type AnalyticsHandler struct {
	log *zap.Logger
}

func NewAnalyticsHandler(log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{log: log}
}

func (h *AnalyticsHandler) Accuracy(c *gin.Context) {
	events, err := repository.ListReviewEvents(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, analytics.AccuracyOverTime(events))
}

func (h *AnalyticsHandler) loadTopicInputs(ctx context.Context, userID string) ([]models.ReviewEvent, []models.Flashcard, []models.QuizAttempt, []models.Quiz, error) {
	events, err := repository.ListReviewEvents(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cards, err := repository.ListFlashcards(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	attempts, err := repository.ListQuizAttempts(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	quizzes, err := repository.ListQuizzes(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return events, cards, attempts, quizzes, nil
}

func (h *AnalyticsHandler) Topics(c *gin.Context) {
	events, cards, attempts, quizzes, err := h.loadTopicInputs(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, analytics.TopicBreakdown(events, cards, attempts, quizzes))
}

// Confidence returns a card's ease factor history, the closest observable
// proxy for how well the card is known.
func (h *AnalyticsHandler) Confidence(c *gin.Context) {
	userID := currentUserID(c)
	cardID := c.Param("id")
	if _, err := repository.GetFlashcard(c.Request.Context(), userID, cardID); err != nil {
		writeError(c, h.log, err)
		return
	}
	events, err := repository.ListCardReviewEvents(c.Request.Context(), userID, cardID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, analytics.ConfidenceCurve(events, cardID))
}

// AccuracyChart returns ECharts options for the accuracy timeline, ready for
// the frontend to feed into echarts.setOption.
func (h *AnalyticsHandler) AccuracyChart(c *gin.Context) {
	events, err := repository.ListReviewEvents(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	line := accuracyChart(analytics.AccuracyOverTime(events))
	optionsJSON, err := json.Marshal(line.JSON())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, "application/json", optionsJSON)
}

func (h *AnalyticsHandler) TopicsChart(c *gin.Context) {
	events, cards, attempts, quizzes, err := h.loadTopicInputs(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	bar := topicChart(analytics.TopicBreakdown(events, cards, attempts, quizzes))
	optionsJSON, err := json.Marshal(bar.JSON())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, "application/json", optionsJSON)
}

func accuracyChart(points []analytics.AccuracyPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Review Accuracy Over Time",
			Subtitle: "Share of reviews rated 3 or higher per day",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		items = append(items, opts.LineData{Value: []interface{}{p.Date.Format("2006-01-02"), p.Accuracy}})
	}
	line.AddSeries("Accuracy", items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

func topicChart(stats []analytics.TopicStat) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Accuracy by Topic"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	topics := make([]string, 0, len(stats))
	items := make([]opts.BarData, 0, len(stats))
	for _, s := range stats {
		if !s.HasData {
			continue
		}
		topics = append(topics, s.Topic)
		items = append(items, opts.BarData{
			Name:  fmt.Sprintf("%s (%d/%d)", s.Topic, s.Correct, s.Total),
			Value: s.Accuracy,
		})
	}
	bar.SetXAxis(topics).AddSeries("Accuracy", items)
	return bar
}
