package model

import "time"

const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

const InsightTypeMarketAnalysis = "market_analysis"

// NewsArticle is a persisted article. The URL is globally unique and acts as
// the dedup key across repeated fetch cycles. Rows are never mutated after
// insert.
type NewsArticle struct {
	ID             int64
	TickerID       int64
	Title          string
	Summary        string
	URL            string
	Source         string
	Provider       string
	PublishedAt    time.Time
	SentimentScore *float64
	CreatedAt      time.Time
}

// AIInsight is one synthesized analysis for a ticker. Insights accumulate as
// immutable history; every pipeline run appends a new row.
type AIInsight struct {
	ID              int64
	TickerID        int64
	NewsArticleID   *int64
	InsightType     string
	Content         string
	Sentiment       string
	ConfidenceScore float64
	SourcesAnalyzed int
	CreatedAt       time.Time
}
