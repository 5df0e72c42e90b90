package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const marketauxURL = "https://api.marketaux.com/v1/news/all"

// MarketauxClient fetches aggregator news with per-entity sentiment scores.
type MarketauxClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewMarketauxClient(apiKey string) *MarketauxClient {
	return &MarketauxClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: httpTimeout},
	}
}

func (c *MarketauxClient) Name() string {
	return "marketaux"
}

func (c *MarketauxClient) Fetch(ctx context.Context, symbol string) ([]Article, error) {
	endpoint := fmt.Sprintf("%s?symbols=%s&filter_entities=true&language=en&limit=%d&api_token=%s",
		marketauxURL, url.QueryEscape(symbol), maxArticlesPerProvider, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("marketaux request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketaux fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw marketauxResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("marketaux decode: %w", err)
	}

	items := raw.Data
	if len(items) > maxArticlesPerProvider {
		items = items[:maxArticlesPerProvider]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		var sentiment *float64
		for _, entity := range item.Entities {
			if entity.Symbol != symbol {
				continue
			}
			sentiment = entity.SentimentScore
			break
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Summary:     item.Description,
			URL:         item.URL,
			Source:      item.Source,
			Provider:    c.Name(),
			PublishedAt: publishedAt,
			Sentiment:   sentiment,
		})
	}

	return articles, nil
}

type marketauxResponse struct {
	Data []marketauxArticle `json:"data"`
}

type marketauxArticle struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	URL         string            `json:"url"`
	Source      string            `json:"source"`
	PublishedAt string            `json:"published_at"`
	Entities    []marketauxEntity `json:"entities"`
}

type marketauxEntity struct {
	Symbol         string   `json:"symbol"`
	SentimentScore *float64 `json:"sentiment_score"`
}
