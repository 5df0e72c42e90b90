package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"tickersight/pkg/news"
)

type stubProvider struct {
	name     string
	articles []news.Article
	err      error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Fetch(ctx context.Context, symbol string) ([]news.Article, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.articles, nil
}

func article(provider, title string, publishedAt time.Time, sentiment *float64) news.Article {
	return news.Article{
		Title:       title,
		Summary:     "about " + title,
		URL:         "https://example.com/" + provider + "/" + title,
		Source:      "Example Wire",
		Provider:    provider,
		PublishedAt: publishedAt,
		Sentiment:   sentiment,
	}
}

func TestAggregateOrdering(t *testing.T) {
	now := time.Now()
	agg := NewAggregator([]news.Provider{
		&stubProvider{name: "a", articles: []news.Article{
			article("a", "One", now.Add(-time.Hour), nil),
			article("a", "Three", now.Add(-3*time.Hour), nil),
		}},
		&stubProvider{name: "b", articles: []news.Article{
			article("b", "Two", now.Add(-2*time.Hour), nil),
		}},
	})

	got := agg.Aggregate(context.Background(), "AAPL")

	assert.Equal(t, 3, len(got))
	assert.Equal(t, "One", got[0].Title)
	assert.Equal(t, "Two", got[1].Title)
	assert.Equal(t, "Three", got[2].Title)
}

func TestAggregateDedupIsCaseInsensitive(t *testing.T) {
	now := time.Now()
	agg := NewAggregator([]news.Provider{
		&stubProvider{name: "a", articles: []news.Article{
			article("a", "Apple Earnings Beat", now, nil),
		}},
		&stubProvider{name: "b", articles: []news.Article{
			article("b", "apple earnings beat", now.Add(-time.Minute), nil),
		}},
	})

	got := agg.Aggregate(context.Background(), "AAPL")

	assert.Equal(t, 1, len(got))
	assert.Equal(t, "Apple Earnings Beat", got[0].Title)
	assert.Equal(t, "a", got[0].Provider)
}

func TestAggregateNewerDuplicateWins(t *testing.T) {
	// Provider B's copy is newer, so after the descending sort it comes
	// first and provider A's sentiment is discarded with its copy.
	t1 := time.Now().Add(-2 * time.Hour)
	t2 := time.Now().Add(-1 * time.Hour)
	score := 0.5

	agg := NewAggregator([]news.Provider{
		&stubProvider{name: "a", articles: []news.Article{article("a", "X", t1, &score)}},
		&stubProvider{name: "b", articles: []news.Article{article("b", "x", t2, nil)}},
	})

	got := agg.Aggregate(context.Background(), "AAPL")

	assert.Equal(t, 1, len(got))
	assert.Equal(t, "x", got[0].Title)
	assert.Equal(t, "b", got[0].Provider)
	assert.Equal(t, t2.Unix(), got[0].PublishedAt.Unix())
	if got[0].Sentiment != nil {
		t.Errorf("expected sentiment from the winning copy (nil), got %v", *got[0].Sentiment)
	}
}

func TestAggregateTruncates(t *testing.T) {
	now := time.Now()
	var articles []news.Article
	for i := 0; i < 30; i++ {
		articles = append(articles, article("a", fmt.Sprintf("Story %02d", i), now.Add(-time.Duration(i)*time.Minute), nil))
	}

	agg := NewAggregator([]news.Provider{&stubProvider{name: "a", articles: articles}})

	got := agg.Aggregate(context.Background(), "AAPL")
	assert.Equal(t, maxAggregatedArticles, len(got))
	assert.Equal(t, "Story 00", got[0].Title)
}

func TestAggregateProviderFailureIsIsolated(t *testing.T) {
	now := time.Now()
	agg := NewAggregator([]news.Provider{
		&stubProvider{name: "broken", err: errors.New("auth failed")},
		&stubProvider{name: "ok", articles: []news.Article{article("ok", "Survivor", now, nil)}},
	})

	got := agg.Aggregate(context.Background(), "AAPL")

	assert.Equal(t, 1, len(got))
	assert.Equal(t, "Survivor", got[0].Title)
}

func TestAggregateEmpty(t *testing.T) {
	agg := NewAggregator([]news.Provider{
		&stubProvider{name: "a"},
		&stubProvider{name: "b", err: errors.New("down")},
	})

	got := agg.Aggregate(context.Background(), "AAPL")
	assert.Equal(t, 0, len(got))
}

func TestAggregateEmptyTitlesCollide(t *testing.T) {
	now := time.Now()
	agg := NewAggregator([]news.Provider{
		&stubProvider{name: "a", articles: []news.Article{
			article("a", "", now, nil),
			article("a", "", now.Add(-time.Minute), nil),
		}},
	})

	got := agg.Aggregate(context.Background(), "AAPL")
	assert.Equal(t, 1, len(got))
}
