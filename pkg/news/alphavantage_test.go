package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestAlphaVantageFetch(t *testing.T) {
	payload := map[string]interface{}{
		"feed": []map[string]interface{}{
			{
				"title":          "Apple Earnings Beat",
				"summary":        "Apple reported better than expected results.",
				"url":            "https://example.com/apple-earnings",
				"source":         "Reuters",
				"time_published": "20260226T120000",
				"ticker_sentiment": []map[string]interface{}{
					{"ticker": "MSFT", "ticker_sentiment_score": "-0.1"},
					{"ticker": "AAPL", "ticker_sentiment_score": "0.42"},
				},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &AlphaVantageClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	articles, err := client.Fetch(context.Background(), "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))

	a := articles[0]
	assert.Equal(t, "Apple Earnings Beat", a.Title)
	assert.Equal(t, "Apple reported better than expected results.", a.Summary)
	assert.Equal(t, "https://example.com/apple-earnings", a.URL)
	assert.Equal(t, "Reuters", a.Source)
	assert.Equal(t, "alphavantage", a.Provider)
	assert.Equal(t, 2026, a.PublishedAt.Year())
	assert.Equal(t, time.February, a.PublishedAt.Month())
	assert.NotEqual(t, nil, a.Sentiment)
	assert.Equal(t, 0.42, *a.Sentiment)
}

func TestAlphaVantageFetchNoMatchingTicker(t *testing.T) {
	payload := map[string]interface{}{
		"feed": []map[string]interface{}{
			{
				"title":          "Chip Sector Update",
				"summary":        "Semiconductor stocks were mixed.",
				"url":            "https://example.com/chips",
				"source":         "Bloomberg",
				"time_published": "20260226T090000",
				"ticker_sentiment": []map[string]interface{}{
					{"ticker": "NVDA", "ticker_sentiment_score": "0.3"},
				},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &AlphaVantageClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	articles, err := client.Fetch(context.Background(), "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	if articles[0].Sentiment != nil {
		t.Errorf("expected nil sentiment, got %v", *articles[0].Sentiment)
	}
}

func TestAlphaVantageFetchBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := &AlphaVantageClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	_, err := client.Fetch(context.Background(), "AAPL")
	assert.NotEqual(t, nil, err)
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
