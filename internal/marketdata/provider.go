// Package marketdata acquires historical OHLCV candles for a symbol and date
// range. The core never talks to these providers directly; the harness
// fetches a series once and hands it to the backtest exchange.
package marketdata

import (
	"context"
	"fmt"
	"os"
	"time"

	"swing-reversion-bot/internal/store"
	"swing-reversion-bot/internal/types"
)

// Provider supplies a time-ordered candle series.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Candles returns candles for symbol within [start, end], oldest first.
	Candles(ctx context.Context, symbol string, start, end time.Time, interval string) ([]types.Candle, error)
}

// New selects a provider from the configuration. Credentials for the broker
// APIs come from the environment, matching the .env bootstrap in cmd.
func New(cfg *store.Config) (Provider, error) {
	switch cfg.DataSource {
	case "CSV":
		return NewCSVProvider(cfg.CSVPath), nil
	case "KITE":
		return NewKiteProvider(
			os.Getenv("KITE_API_KEY"),
			os.Getenv("KITE_ACCESS_TOKEN"),
			cfg.Kite.InstrumentToken,
		)
	case "ALPACA":
		return NewAlpacaProvider(
			os.Getenv("ALPACA_API_KEY"),
			os.Getenv("ALPACA_API_SECRET"),
			os.Getenv("ALPACA_DATA_URL"),
		), nil
	case "STATIC":
		return NewStaticProvider(0), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// intervalDuration maps a config interval string to a bar duration.
func intervalDuration(interval string) (time.Duration, error) {
	switch interval {
	case "1m":
		return time.Minute, nil
	case "5m":
		return 5 * time.Minute, nil
	case "15m":
		return 15 * time.Minute, nil
	case "1h":
		return time.Hour, nil
	case "1d":
		return 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unsupported interval %q", interval)
	}
}
