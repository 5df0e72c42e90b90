// Command refresher runs one full news batch across all tracked tickers and
// exits. Intended for cron-style invocation next to the long-running API.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"tickersight/db"
	"tickersight/internal/config"
	"tickersight/internal/pipeline"
	"tickersight/internal/repository"
	"tickersight/pkg/llm"
	"tickersight/pkg/news"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	tickerRepo := repository.NewTickerRepository(conn)
	articleRepo := repository.NewArticleRepository(conn)
	insightRepo := repository.NewInsightRepository(conn)

	providers := []news.Provider{news.NewYahooClient()}
	if cfg.AlphaVantageAPIKey != "" {
		providers = append(providers, news.NewAlphaVantageClient(cfg.AlphaVantageAPIKey))
	}
	if cfg.FinnhubAPIKey != "" {
		providers = append(providers, news.NewFinnhubClient(cfg.FinnhubAPIKey))
	}
	if cfg.MarketauxAPIKey != "" {
		providers = append(providers, news.NewMarketauxClient(cfg.MarketauxAPIKey))
	}

	var analyzer llm.Analyzer
	if cfg.AnthropicAPIKey != "" {
		analyzer = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	} else {
		analyzer = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	}

	service := pipeline.NewService(pipeline.NewAggregator(providers), analyzer, articleRepo, insightRepo)
	scheduler := pipeline.NewScheduler(service, tickerRepo, nil, cfg.RefreshInterval)

	scheduler.RunBatch(context.Background())
}
