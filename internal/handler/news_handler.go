package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tickersight/internal/model"
)

type TickerReader interface {
	GetAll() ([]model.Ticker, error)
	GetBySymbol(symbol string) (*model.Ticker, error)
}

type NewsStore interface {
	GetByTicker(tickerID int64, provider string, limit int) ([]model.NewsArticle, error)
	GetRecentByTicker(tickerID int64, since time.Time, limit int) ([]model.NewsArticle, error)
	CountDistinctProviders(tickerID int64, since time.Time) (int, error)
}

type InsightReader interface {
	GetByTicker(tickerID int64, limit int) ([]model.AIInsight, error)
	GetRecentByTicker(tickerID int64, since time.Time, limit int) ([]model.AIInsight, error)
}

// Refresher triggers pipeline runs for one symbol, either synchronously or
// by scheduling it on the refresh queue.
type Refresher interface {
	RunSymbolNow(ctx context.Context, symbol string) error
	ScheduleRefresh(ctx context.Context, symbol string) error
}

type NewsHandler struct {
	tickers   TickerReader
	articles  NewsStore
	insights  InsightReader
	refresher Refresher
}

func NewNewsHandler(tickers TickerReader, articles NewsStore, insights InsightReader, refresher Refresher) *NewsHandler {
	return &NewsHandler{
		tickers:   tickers,
		articles:  articles,
		insights:  insights,
		refresher: refresher,
	}
}

// GetDashboard assembles latest news, insights, and a sentiment vote for
// every tracked ticker within the requested window.
func (h *NewsHandler) GetDashboard(c *gin.Context) {
	hours := queryInt(c, "hours", 24, 1, 24*7)
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	tickers, err := h.tickers.GetAll()
	if err != nil {
		slog.Error("error fetching tickers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	dashboards := make([]TickerDashboardResponse, 0, len(tickers))
	for _, t := range tickers {
		latestNews, err := h.articles.GetRecentByTicker(t.ID, since, 10)
		if err != nil {
			slog.Error("error fetching dashboard news", "symbol", t.Symbol, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		insights, err := h.insights.GetRecentByTicker(t.ID, since, 3)
		if err != nil {
			slog.Error("error fetching dashboard insights", "symbol", t.Symbol, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		sources, err := h.articles.CountDistinctProviders(t.ID, since)
		if err != nil {
			slog.Error("error counting providers", "symbol", t.Symbol, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		dashboards = append(dashboards, TickerDashboardResponse{
			Ticker:           toTickerResponse(t),
			LatestNews:       toArticleResponses(latestNews),
			Insights:         toInsightResponses(insights),
			OverallSentiment: overallSentiment(insights),
			SourcesCount:     sources,
		})
	}

	c.JSON(http.StatusOK, dashboards)
}

func (h *NewsHandler) GetTickerNews(c *gin.Context) {
	ticker, ok := h.lookupTicker(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", 20, 1, 100)
	provider := c.Query("provider")

	articles, err := h.articles.GetByTicker(ticker.ID, provider, limit)
	if err != nil {
		slog.Error("error fetching ticker news", "symbol", ticker.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toArticleResponses(articles))
}

func (h *NewsHandler) GetTickerInsights(c *gin.Context) {
	ticker, ok := h.lookupTicker(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", 10, 1, 50)

	insights, err := h.insights.GetByTicker(ticker.ID, limit)
	if err != nil {
		slog.Error("error fetching insights", "symbol", ticker.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toInsightResponses(insights))
}

// RefreshTicker runs the pipeline for one symbol. With ?wait=true the run
// completes before the response; otherwise the symbol is queued and the
// response only acknowledges scheduling.
func (h *NewsHandler) RefreshTicker(c *gin.Context) {
	ticker, ok := h.lookupTicker(c)
	if !ok {
		return
	}

	if c.Query("wait") == "true" {
		if err := h.refresher.RunSymbolNow(c.Request.Context(), ticker.Symbol); err != nil {
			slog.Error("synchronous refresh failed", "symbol", ticker.Symbol, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
			return
		}
		c.JSON(http.StatusOK, RefreshResponse{Symbol: ticker.Symbol, Status: RefreshStatusCompleted})
		return
	}

	if err := h.refresher.ScheduleRefresh(c.Request.Context(), ticker.Symbol); err != nil {
		slog.Error("error scheduling refresh", "symbol", ticker.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not schedule refresh"})
		return
	}

	c.JSON(http.StatusAccepted, RefreshResponse{Symbol: ticker.Symbol, Status: RefreshStatusScheduled})
}

func (h *NewsHandler) lookupTicker(c *gin.Context) (*model.Ticker, bool) {
	symbol := strings.ToUpper(c.Param("symbol"))

	ticker, err := h.tickers.GetBySymbol(symbol)
	if err != nil {
		slog.Error("error fetching ticker", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	if ticker == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticker not found"})
		return nil, false
	}

	return ticker, true
}

func overallSentiment(insights []model.AIInsight) string {
	var bullish, bearish int
	for _, i := range insights {
		switch {
		case strings.Contains(i.Sentiment, "bull"):
			bullish++
		case strings.Contains(i.Sentiment, "bear"):
			bearish++
		}
	}

	switch {
	case bullish > bearish:
		return model.SentimentBullish
	case bearish > bullish:
		return model.SentimentBearish
	default:
		return model.SentimentNeutral
	}
}

func queryInt(c *gin.Context, name string, def, min, max int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
