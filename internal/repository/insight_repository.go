package repository

import (
	"database/sql"
	"time"

	"tickersight/internal/model"
)

type InsightRepository struct {
	db *sql.DB
}

func NewInsightRepository(db *sql.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

// SaveInsight appends one insight. Insights are never deduplicated or
// updated; each pipeline run produces a new historical record.
func (r *InsightRepository) SaveInsight(insight *model.AIInsight) error {
	return r.db.QueryRow(`
		INSERT INTO ai_insights(ticker_id, news_article_id, insight_type, content, sentiment, confidence_score, sources_analyzed)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, insight.TickerID, insight.NewsArticleID, insight.InsightType, insight.Content,
		insight.Sentiment, insight.ConfidenceScore, insight.SourcesAnalyzed,
	).Scan(&insight.ID, &insight.CreatedAt)
}

func (r *InsightRepository) GetByTicker(tickerID int64, limit int) ([]model.AIInsight, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker_id, news_article_id, insight_type, content, sentiment, confidence_score, sources_analyzed, created_at
		FROM ai_insights
		WHERE ticker_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, tickerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInsights(rows)
}

func (r *InsightRepository) GetRecentByTicker(tickerID int64, since time.Time, limit int) ([]model.AIInsight, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker_id, news_article_id, insight_type, content, sentiment, confidence_score, sources_analyzed, created_at
		FROM ai_insights
		WHERE ticker_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3
	`, tickerID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInsights(rows)
}

func scanInsights(rows *sql.Rows) ([]model.AIInsight, error) {
	var insights []model.AIInsight
	for rows.Next() {
		var i model.AIInsight
		err := rows.Scan(&i.ID, &i.TickerID, &i.NewsArticleID, &i.InsightType, &i.Content,
			&i.Sentiment, &i.ConfidenceScore, &i.SourcesAnalyzed, &i.CreatedAt)
		if err != nil {
			return nil, err
		}
		insights = append(insights, i)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return insights, nil
}
