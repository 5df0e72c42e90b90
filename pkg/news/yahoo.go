package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const yahooSearchURL = "https://query1.finance.yahoo.com/v1/finance/search"

// YahooClient uses the public Yahoo Finance search endpoint. It needs no API
// key and carries no sentiment data.
type YahooClient struct {
	httpClient *http.Client
}

func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: httpTimeout},
	}
}

func (c *YahooClient) Name() string {
	return "yahoo"
}

func (c *YahooClient) Fetch(ctx context.Context, symbol string) ([]Article, error) {
	endpoint := fmt.Sprintf("%s?q=%s&newsCount=%d&quotesCount=1",
		yahooSearchURL, url.QueryEscape(symbol), maxArticlesPerProvider)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw yahooResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}

	items := raw.News
	if len(items) > maxArticlesPerProvider {
		items = items[:maxArticlesPerProvider]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, Article{
			Title:       item.Title,
			Summary:     item.Summary,
			URL:         item.Link,
			Source:      item.Publisher,
			Provider:    c.Name(),
			PublishedAt: time.Unix(item.ProviderPublishTime, 0),
		})
	}

	return articles, nil
}

// Quote describes a symbol match from the Yahoo lookup endpoint.
type Quote struct {
	Symbol   string
	Name     string
	Type     string // "stock" or "crypto"
	Exchange string
}

// Lookup validates a symbol and classifies it as stock or crypto. A nil
// Quote with nil error means the symbol is unknown.
func (c *YahooClient) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	endpoint := fmt.Sprintf("%s?q=%s&newsCount=0&quotesCount=1",
		yahooSearchURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo lookup: %w", err)
	}
	defer resp.Body.Close()

	var raw yahooResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}

	for _, q := range raw.Quotes {
		if !strings.EqualFold(q.Symbol, symbol) {
			continue
		}

		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		if name == "" {
			name = q.Symbol
		}

		return &Quote{
			Symbol:   strings.ToUpper(q.Symbol),
			Name:     name,
			Type:     classifyQuote(q.QuoteType, q.Symbol),
			Exchange: q.Exchange,
		}, nil
	}

	return nil, nil
}

func classifyQuote(quoteType, symbol string) string {
	switch strings.ToLower(quoteType) {
	case "cryptocurrency":
		return "crypto"
	case "equity", "etf":
		return "stock"
	}

	// Fallback for responses without a usable quote type.
	if strings.HasSuffix(strings.ToUpper(symbol), "-USD") {
		return "crypto"
	}
	return "stock"
}

type yahooResponse struct {
	News   []yahooNewsItem `json:"news"`
	Quotes []yahooQuote    `json:"quotes"`
}

type yahooNewsItem struct {
	Title               string `json:"title"`
	Summary             string `json:"summary"`
	Link                string `json:"link"`
	Publisher           string `json:"publisher"`
	ProviderPublishTime int64  `json:"providerPublishTime"`
}

type yahooQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
	QuoteType string `json:"quoteType"`
	Exchange  string `json:"exchange"`
}
