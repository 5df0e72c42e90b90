package news

import (
	"context"
	"time"
)

// Article is a provider-normalized news record before persistence.
type Article struct {
	Title       string
	Summary     string
	URL         string
	Source      string
	Provider    string
	PublishedAt time.Time
	Sentiment   *float64 // in [-1, 1] when the provider annotates the symbol
}

// Provider fetches recent news for one symbol. Implementations return an
// error on any transport or decode failure; the aggregator decides what to
// do with it.
type Provider interface {
	Fetch(ctx context.Context, symbol string) ([]Article, error)
	Name() string
}

// Each provider caps its own output to bound downstream prompt size.
const maxArticlesPerProvider = 10

const httpTimeout = 10 * time.Second
