package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"swing-reversion-bot/internal/backtest"
	"swing-reversion-bot/internal/exchange"
	"swing-reversion-bot/internal/logger"
	"swing-reversion-bot/internal/marketdata"
	"swing-reversion-bot/internal/store"
	"swing-reversion-bot/internal/strategy"
	"swing-reversion-bot/internal/strategy/builtins"
	"swing-reversion-bot/internal/trace"
	"swing-reversion-bot/internal/types"
)

// initializeSystem loads .env and initializes the logger and tracer.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// runBacktest wires the providers, registry, driver and state store together
// and executes one run.
func runBacktest(ctx context.Context, cfg *store.Config, journal bool) (*backtest.Result, error) {
	ctx, span := trace.StartSpan(ctx, "backtest")
	defer span.End()

	start, end, err := parseDateRange(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := marketdata.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating data provider: %w", err)
	}
	logger.Info(ctx, "Fetching candles",
		"provider", provider.Name(), "symbol", cfg.Symbol, "interval", cfg.Interval)

	candles, err := provider.Candles(ctx, cfg.Symbol, start, end, cfg.Interval)
	if err != nil {
		return nil, fmt.Errorf("fetching candles: %w", err)
	}
	logger.Info(ctx, "Candles loaded", "symbol", cfg.Symbol, "count", len(candles))

	ex := exchange.NewBacktest(cfg.Symbol, candles)

	registry := strategy.NewRegistry()
	builtins.Register(registry)

	strat, err := registry.New(cfg.Strategy.Name, cfg.Strategy, ex)
	if err != nil {
		return nil, err
	}

	var states *store.StateStore
	if cfg.StateDB != "" {
		states, err = store.NewStateStore(cfg.StateDB)
		if err != nil {
			return nil, fmt.Errorf("opening state store: %w", err)
		}
		defer states.Close()
	}

	if cfg.Resume && states != nil {
		saved, err := states.Load(ctx, botID(cfg))
		if err != nil {
			return nil, fmt.Errorf("loading saved state: %w", err)
		}
		if saved != nil {
			if err := strat.ImportState(saved); err != nil {
				return nil, fmt.Errorf("restoring strategy state: %w", err)
			}
			logger.Info(ctx, "Strategy state restored", "bot_id", botID(cfg))
		}
	}

	pf := types.NewPortfolio(cfg.Symbol, cfg.InitialCash)
	driver := backtest.NewDriver(ex, strat, pf, cfg.WindowSize, cfg.Strategy.MAPeriod)
	if journal {
		driver.EnableJournal()
	}

	res, err := driver.Run(ctx)
	if err != nil {
		return nil, err
	}

	if states != nil {
		if err := states.Save(ctx, botID(cfg), strat.ExportState()); err != nil {
			logger.Warn(ctx, "Failed to persist strategy state", "error", err)
		}
	}
	return res, nil
}

func writeReports(ctx context.Context, res *backtest.Result, dir string) {
	mdPath := filepath.Join(dir, "backtest_report.md")
	if err := backtest.WriteMarkdown(res, mdPath); err != nil {
		logger.Warn(ctx, "Failed to write markdown report", "error", err, "path", mdPath)
	} else {
		logger.Info(ctx, "Report written", "path", mdPath)
	}

	csvPath := filepath.Join(dir, "trades.csv")
	if err := backtest.WriteTradesCSV(res, csvPath); err != nil {
		logger.Warn(ctx, "Failed to write trades CSV", "error", err, "path", csvPath)
	} else {
		logger.Info(ctx, "Trades CSV written", "path", csvPath)
	}
}

func parseDateRange(cfg *store.Config) (start, end time.Time, err error) {
	if cfg.StartDate != "" {
		start, err = time.Parse("2006-01-02", cfg.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing start_date %q: %w", cfg.StartDate, err)
		}
	}
	if cfg.EndDate != "" {
		end, err = time.Parse("2006-01-02", cfg.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing end_date %q: %w", cfg.EndDate, err)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date %s precedes start_date %s", cfg.EndDate, cfg.StartDate)
	}
	return start, end, nil
}

func botID(cfg *store.Config) string {
	return cfg.Strategy.Name + ":" + cfg.Symbol
}
