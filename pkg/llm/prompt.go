package llm

import (
	"fmt"
	"strings"

	"tickersight/pkg/news"
)

// Only the most recent articles go into the prompt; the caller may pass a
// larger set for provider counting.
const maxPromptArticles = 15

// buildAnalysisPrompt groups articles by provider, in first-seen order, and
// renders them into the analyst prompt.
func buildAnalysisPrompt(symbol string, articles []news.Article) string {
	if len(articles) > maxPromptArticles {
		articles = articles[:maxPromptArticles]
	}

	grouped := make(map[string][]news.Article)
	var order []string
	for _, a := range articles {
		if _, ok := grouped[a.Provider]; !ok {
			order = append(order, a.Provider)
		}
		grouped[a.Provider] = append(grouped[a.Provider], a)
	}

	var sb strings.Builder
	for _, provider := range order {
		fmt.Fprintf(&sb, "\n\n--- %s NEWS ---\n", strings.ToUpper(provider))
		for _, a := range grouped[provider] {
			sentiment := ""
			if a.Sentiment != nil && *a.Sentiment != 0 {
				sentiment = fmt.Sprintf(" (Sentiment: %.2f)", *a.Sentiment)
			}
			fmt.Fprintf(&sb, "\nTitle: %s%s\nSummary: %s\nSource: %s\nDate: %s\n",
				a.Title, sentiment, a.Summary, a.Source, a.PublishedAt.Format("2006-01-02"))
		}
	}

	return fmt.Sprintf(analysisPromptTemplate, symbol, sb.String())
}

const analysisPromptTemplate = `You are a financial analyst providing unbiased insights on %s.

Recent news from multiple sources:
%s

Provide comprehensive analysis:
1. **Summary**: Key developments (3-4 sentences), consensus vs conflicts
2. **Sentiment**: Overall (bullish/bearish/neutral) with reasoning
3. **Impact**: Short-term and long-term
4. **Risks & Opportunities**: Key points from multiple sources
5. **Confidence Score** (0-100): Based on source agreement

Be objective. Highlight disagreements. Avoid hype.

Format as JSON: summary, sentiment, sentiment_reasoning, short_term_impact, long_term_impact, risks, opportunities, source_agreement, confidence_score`
