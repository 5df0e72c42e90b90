package llm

import (
	"context"

	"tickersight/pkg/news"
)

// Analysis is the structured result of one model call over a batch of
// articles for a symbol. Field names mirror the JSON shape the prompt asks
// the model to produce.
type Analysis struct {
	Summary            string  `json:"summary"`
	Sentiment          string  `json:"sentiment"`
	SentimentReasoning string  `json:"sentiment_reasoning"`
	ShortTermImpact    string  `json:"short_term_impact"`
	LongTermImpact     string  `json:"long_term_impact"`
	Risks              string  `json:"risks"`
	Opportunities      string  `json:"opportunities"`
	SourceAgreement    string  `json:"source_agreement"`
	ConfidenceScore    float64 `json:"confidence_score"` // 0-100 as returned by the model
}

type Analyzer interface {
	Analyze(ctx context.Context, symbol string, articles []news.Article) (*Analysis, error)
	ModelName() string
}

// FallbackAnalysis is the documented degraded result used whenever the model
// call or response parsing fails. Callers treat it as a normal low-confidence
// outcome, not an error.
func FallbackAnalysis() *Analysis {
	return &Analysis{
		Summary:            "Analysis unavailable",
		Sentiment:          "neutral",
		SentimentReasoning: "Error occurred",
		ShortTermImpact:    "Unknown",
		LongTermImpact:     "Unknown",
		Risks:              "Analysis unavailable",
		Opportunities:      "Analysis unavailable",
		SourceAgreement:    "Unknown",
		ConfidenceScore:    0,
	}
}
