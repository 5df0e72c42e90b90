package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"tickersight/pkg/news"
)

const maxAggregatedArticles = 20

// Aggregator fans one symbol out across every configured provider and merges
// the results into a single deduplicated, recency-ordered window.
type Aggregator struct {
	providers []news.Provider
}

func NewAggregator(providers []news.Provider) *Aggregator {
	return &Aggregator{providers: providers}
}

// Aggregate never fails: a provider error is logged and contributes an empty
// batch. Output is deterministic for fixed provider results; when duplicate
// titles exist across providers only the first occurrence after the
// descending sort survives, so the losers' sentiment and attribution are
// discarded. That loss is deliberate; no cross-provider identity
// reconciliation is attempted.
func (a *Aggregator) Aggregate(ctx context.Context, symbol string) []news.Article {
	results := make([][]news.Article, len(a.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range a.providers {
		g.Go(func() error {
			fetched, err := provider.Fetch(gctx, symbol)
			if err != nil {
				slog.Error("provider fetch failed", "provider", provider.Name(), "symbol", symbol, "error", err)
				return nil
			}
			results[i] = fetched
			return nil
		})
	}
	g.Wait()

	var merged []news.Article
	for _, batch := range results {
		merged = append(merged, batch...)
	}

	// Stable sort keeps provider-registration order for equal timestamps.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	seen := make(map[string]bool)
	unique := make([]news.Article, 0, len(merged))
	for _, article := range merged {
		key := strings.ToLower(article.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, article)
	}

	if len(unique) > maxAggregatedArticles {
		unique = unique[:maxAggregatedArticles]
	}

	return unique
}
