package repository

import (
	"database/sql"
	"time"

	"tickersight/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SaveArticles inserts every article not already stored, keyed by URL.
// Re-running a fetch cycle with identical provider output inserts nothing
// and returns 0. Storage errors surface with the count inserted so far.
func (r *ArticleRepository) SaveArticles(tickerID int64, articles []model.NewsArticle) (int, error) {
	inserted := 0
	for _, a := range articles {
		var id int64
		err := r.db.QueryRow(`
			INSERT INTO news_articles(ticker_id, title, summary, url, source, news_provider, published_at, sentiment_score)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (url) DO NOTHING
			RETURNING id
		`, tickerID, a.Title, a.Summary, a.URL, a.Source, a.Provider, a.PublishedAt, a.SentimentScore).Scan(&id)

		if err == sql.ErrNoRows {
			continue
		}

		if err != nil {
			return inserted, err
		}

		inserted++
	}

	return inserted, nil
}

// GetByTicker returns the most recent articles for a ticker, optionally
// filtered to one provider.
func (r *ArticleRepository) GetByTicker(tickerID int64, provider string, limit int) ([]model.NewsArticle, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker_id, title, summary, url, source, news_provider, published_at, sentiment_score, created_at
		FROM news_articles
		WHERE ticker_id = $1 AND ($2 = '' OR news_provider = $2)
		ORDER BY published_at DESC
		LIMIT $3
	`, tickerID, provider, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

// GetRecentByTicker returns articles published after the given time.
func (r *ArticleRepository) GetRecentByTicker(tickerID int64, since time.Time, limit int) ([]model.NewsArticle, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker_id, title, summary, url, source, news_provider, published_at, sentiment_score, created_at
		FROM news_articles
		WHERE ticker_id = $1 AND published_at >= $2
		ORDER BY published_at DESC
		LIMIT $3
	`, tickerID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

func (r *ArticleRepository) CountDistinctProviders(tickerID int64, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(DISTINCT news_provider)
		FROM news_articles
		WHERE ticker_id = $1 AND published_at >= $2
	`, tickerID, since).Scan(&count)
	return count, err
}

func scanArticles(rows *sql.Rows) ([]model.NewsArticle, error) {
	var articles []model.NewsArticle
	for rows.Next() {
		var a model.NewsArticle
		err := rows.Scan(&a.ID, &a.TickerID, &a.Title, &a.Summary, &a.URL, &a.Source,
			&a.Provider, &a.PublishedAt, &a.SentimentScore, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}
