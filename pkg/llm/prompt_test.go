package llm

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"tickersight/pkg/news"
)

func promptArticle(provider, title string, sentiment *float64) news.Article {
	return news.Article{
		Title:       title,
		Summary:     "summary of " + title,
		Source:      "Example Wire",
		Provider:    provider,
		PublishedAt: time.Date(2026, time.February, 26, 9, 0, 0, 0, time.UTC),
		Sentiment:   sentiment,
	}
}

func TestBuildAnalysisPromptGroupsByProvider(t *testing.T) {
	score := 0.35
	articles := []news.Article{
		promptArticle("yahoo", "A", nil),
		promptArticle("alphavantage", "B", &score),
		promptArticle("yahoo", "C", nil),
	}

	prompt := buildAnalysisPrompt("AAPL", articles)

	assert.Equal(t, true, strings.Contains(prompt, "unbiased insights on AAPL"))
	assert.Equal(t, true, strings.Contains(prompt, "--- YAHOO NEWS ---"))
	assert.Equal(t, true, strings.Contains(prompt, "--- ALPHAVANTAGE NEWS ---"))

	// Both yahoo articles end up in the same block, before alphavantage.
	yahooIdx := strings.Index(prompt, "--- YAHOO NEWS ---")
	avIdx := strings.Index(prompt, "--- ALPHAVANTAGE NEWS ---")
	cIdx := strings.Index(prompt, "Title: C")
	assert.Equal(t, true, yahooIdx < cIdx && cIdx < avIdx)

	assert.Equal(t, true, strings.Contains(prompt, "Title: B (Sentiment: 0.35)"))
}

func TestBuildAnalysisPromptOmitsZeroSentiment(t *testing.T) {
	zero := 0.0
	prompt := buildAnalysisPrompt("AAPL", []news.Article{
		promptArticle("alphavantage", "Flat Story", &zero),
	})

	assert.Equal(t, false, strings.Contains(prompt, "Sentiment:"))
	assert.Equal(t, true, strings.Contains(prompt, "Title: Flat Story"))
}

func TestBuildAnalysisPromptCapsArticles(t *testing.T) {
	var articles []news.Article
	for i := 0; i < 25; i++ {
		articles = append(articles, promptArticle("yahoo", fmt.Sprintf("Story %02d", i), nil))
	}

	prompt := buildAnalysisPrompt("AAPL", articles)

	assert.Equal(t, true, strings.Contains(prompt, "Story 14"))
	assert.Equal(t, false, strings.Contains(prompt, "Story 15"))
}

func TestBuildAnalysisPromptRequestsJSONShape(t *testing.T) {
	prompt := buildAnalysisPrompt("TSLA", []news.Article{promptArticle("yahoo", "A", nil)})

	for _, field := range []string{
		"summary", "sentiment_reasoning", "short_term_impact", "long_term_impact",
		"risks", "opportunities", "source_agreement", "confidence_score",
	} {
		assert.Equal(t, true, strings.Contains(prompt, field))
	}
}
