package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tickersight/internal/model"
	"tickersight/pkg/llm"
	"tickersight/pkg/news"
)

type ArticleStore interface {
	SaveArticles(tickerID int64, articles []model.NewsArticle) (int, error)
}

type InsightStore interface {
	SaveInsight(insight *model.AIInsight) error
}

// Service runs one full aggregation cycle per symbol: fetch, dedup, persist
// articles, synthesize an insight, persist the insight.
type Service struct {
	aggregator *Aggregator
	analyzer   llm.Analyzer
	articles   ArticleStore
	insights   InsightStore
}

func NewService(aggregator *Aggregator, analyzer llm.Analyzer, articles ArticleStore, insights InsightStore) *Service {
	return &Service{
		aggregator: aggregator,
		analyzer:   analyzer,
		articles:   articles,
		insights:   insights,
	}
}

// RunSymbol executes one aggregation cycle for a single ticker. Provider and
// model failures degrade in place (empty batch, fallback insight); only a
// storage error is returned.
func (s *Service) RunSymbol(ctx context.Context, ticker model.Ticker) error {
	articles := s.aggregator.Aggregate(ctx, ticker.Symbol)
	if len(articles) == 0 {
		slog.Info("no news found", "symbol", ticker.Symbol)
		return nil
	}

	records := make([]model.NewsArticle, len(articles))
	for i, a := range articles {
		records[i] = model.NewsArticle{
			TickerID:       ticker.ID,
			Title:          a.Title,
			Summary:        a.Summary,
			URL:            a.URL,
			Source:         a.Source,
			Provider:       a.Provider,
			PublishedAt:    a.PublishedAt,
			SentimentScore: a.Sentiment,
		}
	}

	inserted, err := s.articles.SaveArticles(ticker.ID, records)
	if err != nil {
		return fmt.Errorf("saving articles for %s: %w", ticker.Symbol, err)
	}
	slog.Info("articles saved", "symbol", ticker.Symbol, "fetched", len(articles), "inserted", inserted)

	insight := s.Synthesize(ctx, ticker, articles)
	if err := s.insights.SaveInsight(insight); err != nil {
		return fmt.Errorf("saving insight for %s: %w", ticker.Symbol, err)
	}
	slog.Info("insight saved", "symbol", ticker.Symbol,
		"sentiment", insight.Sentiment,
		"confidence", insight.ConfidenceScore,
		"sources", insight.SourcesAnalyzed)

	return nil
}

// Synthesize asks the model for an analysis of the aggregated batch. It never
// fails: any model or parse error yields the documented neutral fallback.
func (s *Service) Synthesize(ctx context.Context, ticker model.Ticker, articles []news.Article) *model.AIInsight {
	analysis, err := s.analyzer.Analyze(ctx, ticker.Symbol, articles)
	if err != nil {
		slog.Error("analysis failed, using fallback", "symbol", ticker.Symbol, "error", err)
		analysis = llm.FallbackAnalysis()
	}

	return &model.AIInsight{
		TickerID:        ticker.ID,
		InsightType:     model.InsightTypeMarketAnalysis,
		Content:         renderInsightContent(analysis),
		Sentiment:       normalizeSentiment(analysis.Sentiment),
		ConfidenceScore: clampConfidence(analysis.ConfidenceScore / 100),
		SourcesAnalyzed: countProviders(articles),
	}
}

func renderInsightContent(a *llm.Analysis) string {
	sections := []struct {
		heading string
		body    string
	}{
		{"Summary", a.Summary},
		{"Sentiment Reasoning", a.SentimentReasoning},
		{"Short-term Impact", a.ShortTermImpact},
		{"Long-term Impact", a.LongTermImpact},
		{"Risks", a.Risks},
		{"Opportunities", a.Opportunities},
		{"Source Agreement", a.SourceAgreement},
	}

	var sb strings.Builder
	for i, section := range sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "**%s:**\n%s", section.heading, section.body)
	}

	return sb.String()
}

// normalizeSentiment maps free-form model output ("Very Bullish", "bearish")
// onto the three stored values.
func normalizeSentiment(sentiment string) string {
	s := strings.ToLower(strings.TrimSpace(sentiment))
	switch {
	case strings.Contains(s, "bull"):
		return model.SentimentBullish
	case strings.Contains(s, "bear"):
		return model.SentimentBearish
	default:
		return model.SentimentNeutral
	}
}

func clampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// countProviders counts distinct providers across the full batch, which can
// exceed the number of providers represented in the prompt window.
func countProviders(articles []news.Article) int {
	seen := make(map[string]bool)
	for _, a := range articles {
		seen[a.Provider] = true
	}
	return len(seen)
}
