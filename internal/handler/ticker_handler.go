package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tickersight/internal/model"
	"tickersight/pkg/news"
)

type TickerStore interface {
	GetAll() ([]model.Ticker, error)
	GetBySymbol(symbol string) (*model.Ticker, error)
	Create(ticker *model.Ticker) error
	Delete(id int64) error
}

// SymbolValidator checks a symbol against a market-data source and
// classifies it. A nil Quote means the symbol is unknown.
type SymbolValidator interface {
	Lookup(ctx context.Context, symbol string) (*news.Quote, error)
}

type TickerHandler struct {
	repository TickerStore
	validator  SymbolValidator
}

func NewTickerHandler(repository TickerStore, validator SymbolValidator) *TickerHandler {
	return &TickerHandler{repository: repository, validator: validator}
}

func (h *TickerHandler) GetTickers(c *gin.Context) {
	tickers, err := h.repository.GetAll()
	if err != nil {
		slog.Error("error fetching tickers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]TickerResponse, 0, len(tickers))
	for _, t := range tickers {
		res = append(res, toTickerResponse(t))
	}

	c.JSON(http.StatusOK, res)
}

func (h *TickerHandler) CreateTicker(c *gin.Context) {
	var req CreateTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	existing, err := h.repository.GetBySymbol(symbol)
	if err != nil {
		slog.Error("error checking ticker", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticker " + symbol + " already exists"})
		return
	}

	quote, err := h.validator.Lookup(c.Request.Context(), symbol)
	if err != nil {
		slog.Error("error validating ticker", "symbol", symbol, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to validate ticker " + symbol})
		return
	}
	if quote == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticker " + symbol + " not found or is invalid"})
		return
	}

	ticker := model.Ticker{
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Type:   quote.Type,
	}

	if err := h.repository.Create(&ticker); err != nil {
		slog.Error("error creating ticker", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toTickerResponse(ticker))
}

func (h *TickerHandler) DeleteTicker(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	ticker, err := h.repository.GetBySymbol(symbol)
	if err != nil {
		slog.Error("error fetching ticker", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if ticker == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticker not found"})
		return
	}

	if err := h.repository.Delete(ticker.ID); err != nil {
		slog.Error("error deleting ticker", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticker " + symbol + " removed"})
}

func (h *TickerHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
