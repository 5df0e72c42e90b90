package handler

import (
	"time"

	"tickersight/internal/model"
)

type TickerResponse struct {
	ID        int64  `json:"id"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

type ArticleResponse struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	URL            string   `json:"url"`
	Source         string   `json:"source"`
	Provider       string   `json:"provider"`
	PublishedAt    string   `json:"published_at"`
	SentimentScore *float64 `json:"sentiment_score"`
}

type InsightResponse struct {
	ID              int64   `json:"id"`
	InsightType     string  `json:"insight_type"`
	Content         string  `json:"content"`
	Sentiment       string  `json:"sentiment"`
	ConfidenceScore float64 `json:"confidence_score"`
	SourcesAnalyzed int     `json:"sources_analyzed"`
	CreatedAt       string  `json:"created_at"`
}

type TickerDashboardResponse struct {
	Ticker           TickerResponse    `json:"ticker"`
	LatestNews       []ArticleResponse `json:"latest_news"`
	Insights         []InsightResponse `json:"ai_insights"`
	OverallSentiment string            `json:"overall_sentiment"`
	SourcesCount     int               `json:"news_sources_count"`
}

const (
	RefreshStatusCompleted = "completed"
	RefreshStatusScheduled = "scheduled"
)

type RefreshResponse struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"`
}

type CreateTickerRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

func toTickerResponse(t model.Ticker) TickerResponse {
	return TickerResponse{
		ID:        t.ID,
		Symbol:    t.Symbol,
		Name:      t.Name,
		Type:      t.Type,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func toArticleResponses(articles []model.NewsArticle) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, ArticleResponse{
			ID:             a.ID,
			Title:          a.Title,
			Summary:        a.Summary,
			URL:            a.URL,
			Source:         a.Source,
			Provider:       a.Provider,
			PublishedAt:    a.PublishedAt.Format(time.RFC3339),
			SentimentScore: a.SentimentScore,
		})
	}
	return res
}

func toInsightResponses(insights []model.AIInsight) []InsightResponse {
	res := make([]InsightResponse, 0, len(insights))
	for _, i := range insights {
		res = append(res, InsightResponse{
			ID:              i.ID,
			InsightType:     i.InsightType,
			Content:         i.Content,
			Sentiment:       i.Sentiment,
			ConfidenceScore: i.ConfidenceScore,
			SourcesAnalyzed: i.SourcesAnalyzed,
			CreatedAt:       i.CreatedAt.Format(time.RFC3339),
		})
	}
	return res
}
