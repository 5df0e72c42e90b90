package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tickersight/internal/model"
)

type TickerSource interface {
	GetAll() ([]model.Ticker, error)
	GetBySymbol(symbol string) (*model.Ticker, error)
}

// RefreshSource is the queue feeding on-demand refresh requests to the
// scheduler's background consumer.
type RefreshSource interface {
	Push(ctx context.Context, symbol string) error
	Pop(ctx context.Context, timeout time.Duration) (string, error)
}

const queuePollTimeout = 5 * time.Second

// Scheduler drives the pipeline across all tracked tickers on a fixed
// interval and serves on-demand refreshes from a queue. Construct it in
// main, Start it once, Stop it on shutdown.
type Scheduler struct {
	service  *Service
	tickers  TickerSource
	queue    RefreshSource
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(service *Service, tickers TickerSource, queue RefreshSource, interval time.Duration) *Scheduler {
	return &Scheduler{
		service:  service,
		tickers:  tickers,
		queue:    queue,
		interval: interval,
	}
}

// Start launches the recurring batch loop and, when a queue is configured,
// the refresh consumer. One full batch runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.runBatchLoop(ctx)

	if s.queue != nil {
		s.wg.Add(1)
		go s.runQueueConsumer(ctx)
	}
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) runBatchLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunBatch(ctx)
		}
	}
}

// RunBatch processes every tracked ticker sequentially to avoid bursting
// shared provider quotas. A failure on one symbol is logged and the batch
// moves on to the next.
func (s *Scheduler) RunBatch(ctx context.Context) {
	tickers, err := s.tickers.GetAll()
	if err != nil {
		slog.Error("loading tickers for batch", "error", err)
		return
	}

	slog.Info("news batch started", "tickers", len(tickers))
	start := time.Now()

	for _, t := range tickers {
		if ctx.Err() != nil {
			slog.Warn("news batch cancelled", "remaining_from", t.Symbol)
			return
		}
		if err := s.service.RunSymbol(ctx, t); err != nil {
			slog.Error("symbol run failed", "symbol", t.Symbol, "error", err)
		}
	}

	slog.Info("news batch finished", "tickers", len(tickers), "duration", time.Since(start))
}

// RunSymbolNow runs the pipeline for one tracked symbol synchronously.
func (s *Scheduler) RunSymbolNow(ctx context.Context, symbol string) error {
	ticker, err := s.tickers.GetBySymbol(symbol)
	if err != nil {
		return err
	}
	if ticker == nil {
		return fmt.Errorf("ticker %s is not tracked", symbol)
	}

	return s.service.RunSymbol(ctx, *ticker)
}

// ScheduleRefresh queues a symbol for the background consumer.
func (s *Scheduler) ScheduleRefresh(ctx context.Context, symbol string) error {
	if s.queue == nil {
		return fmt.Errorf("refresh queue is not configured")
	}
	return s.queue.Push(ctx, symbol)
}

func (s *Scheduler) runQueueConsumer(ctx context.Context) {
	defer s.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		symbol, err := s.queue.Pop(ctx, queuePollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Error("refresh queue pop failed", "error", err)
			time.Sleep(time.Second)
			continue
		}

		if symbol == "" {
			continue
		}

		if err := s.RunSymbolNow(ctx, symbol); err != nil {
			slog.Error("on-demand refresh failed", "symbol", symbol, "error", err)
		}
	}
}
