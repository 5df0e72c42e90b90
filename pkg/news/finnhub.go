package news

import (
	"context"
	"net/http"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnhubClient fetches company news over a trailing seven day window.
// Finnhub carries no per-symbol sentiment.
type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = &http.Client{Timeout: httpTimeout}
	return &FinnhubClient{client: finnhub.NewAPIClient(cfg).DefaultApi}
}

func (c *FinnhubClient) Name() string {
	return "finnhub"
}

func (c *FinnhubClient) Fetch(ctx context.Context, symbol string) ([]Article, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -7)

	res, _, err := c.client.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, err
	}

	if len(res) > maxArticlesPerProvider {
		res = res[:maxArticlesPerProvider]
	}

	articles := make([]Article, 0, len(res))
	for _, item := range res {
		a := Article{Provider: c.Name()}

		if item.Headline != nil {
			a.Title = *item.Headline
		}
		if item.Summary != nil {
			a.Summary = *item.Summary
		}
		if item.Url != nil {
			a.URL = *item.Url
		}
		if item.Source != nil {
			a.Source = *item.Source
		}
		if item.Datetime != nil {
			a.PublishedAt = time.Unix(*item.Datetime, 0)
		}

		articles = append(articles, a)
	}

	return articles, nil
}
