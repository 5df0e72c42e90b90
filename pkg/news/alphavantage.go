package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const alphaVantageURL = "https://www.alphavantage.co/query"

// AlphaVantageClient fetches sentiment-annotated news via the NEWS_SENTIMENT
// function. Sentiment is taken from the ticker_sentiment entry matching the
// requested symbol, when present.
type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: httpTimeout},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "alphavantage"
}

func (c *AlphaVantageClient) Fetch(ctx context.Context, symbol string) ([]Article, error) {
	endpoint := fmt.Sprintf("%s?function=NEWS_SENTIMENT&tickers=%s&limit=50&apikey=%s",
		alphaVantageURL, url.QueryEscape(symbol), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}

	items := raw.Feed
	if len(items) > maxArticlesPerProvider {
		items = items[:maxArticlesPerProvider]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		publishedAt, err := time.Parse("20060102T150405", item.TimePublished)
		if err != nil {
			publishedAt = time.Time{}
		}

		var sentiment *float64
		for _, ts := range item.TickerSentiment {
			if ts.Ticker != symbol {
				continue
			}
			if score, err := strconv.ParseFloat(ts.SentimentScore, 64); err == nil {
				sentiment = &score
			}
			break
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Summary:     item.Summary,
			URL:         item.URL,
			Source:      item.Source,
			Provider:    c.Name(),
			PublishedAt: publishedAt,
			Sentiment:   sentiment,
		})
	}

	return articles, nil
}

type avResponse struct {
	Feed []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title           string              `json:"title"`
	Summary         string              `json:"summary"`
	URL             string              `json:"url"`
	Source          string              `json:"source"`
	TimePublished   string              `json:"time_published"`
	TickerSentiment []avTickerSentiment `json:"ticker_sentiment"`
}

type avTickerSentiment struct {
	Ticker         string `json:"ticker"`
	SentimentScore string `json:"ticker_sentiment_score"`
}
