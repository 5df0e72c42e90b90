package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tickersight/db"
	"tickersight/internal/config"
	"tickersight/internal/handler"
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

	var queue *db.RefreshQueue
	if cfg.RedisURL != "" {
		queue, err = db.ConnectRefreshQueue(cfg.RedisURL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer queue.Close()
	}

	tickerRepo := repository.NewTickerRepository(conn)
	articleRepo := repository.NewArticleRepository(conn)
	insightRepo := repository.NewInsightRepository(conn)

	yahoo := news.NewYahooClient()
	providers := []news.Provider{yahoo}
	if cfg.AlphaVantageAPIKey != "" {
		providers = append(providers, news.NewAlphaVantageClient(cfg.AlphaVantageAPIKey))
	}
	if cfg.FinnhubAPIKey != "" {
		providers = append(providers, news.NewFinnhubClient(cfg.FinnhubAPIKey))
	}
	if cfg.MarketauxAPIKey != "" {
		providers = append(providers, news.NewMarketauxClient(cfg.MarketauxAPIKey))
	}
	slog.Info("news providers configured", "count", len(providers))

	service := pipeline.NewService(
		pipeline.NewAggregator(providers),
		newAnalyzer(cfg),
		articleRepo,
		insightRepo,
	)

	var refreshSource pipeline.RefreshSource
	if queue != nil {
		refreshSource = queue
	}
	scheduler := pipeline.NewScheduler(service, tickerRepo, refreshSource, cfg.RefreshInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)

	newsHandler := handler.NewNewsHandler(tickerRepo, articleRepo, insightRepo, scheduler)
	tickerHandler := handler.NewTickerHandler(tickerRepo, yahoo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", tickerHandler.GetHealth)

	api := r.Group("/api")
	api.GET("/tickers", tickerHandler.GetTickers)
	api.POST("/tickers", tickerHandler.CreateTicker)
	api.DELETE("/tickers/:symbol", tickerHandler.DeleteTicker)
	api.GET("/news/dashboard", newsHandler.GetDashboard)
	api.GET("/news/ticker/:symbol", newsHandler.GetTickerNews)
	api.GET("/news/ticker/:symbol/insights", newsHandler.GetTickerInsights)
	api.POST("/news/ticker/:symbol/refresh", newsHandler.RefreshTicker)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("error starting server: %v", err)
		}
	}()
	slog.Info("server started", "port", cfg.Port)

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	scheduler.Stop()
}

func newAnalyzer(cfg *config.Config) llm.Analyzer {
	if cfg.AnthropicAPIKey != "" {
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	}

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("no model API key configured, insights will use the fallback analysis")
	}
	return llm.NewOpenAIClient(cfg.OpenAIAPIKey)
}
