package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"swing-reversion-bot/internal/types"
)

// AlpacaProvider fetches historical bars from the Alpaca market-data API.
type AlpacaProvider struct {
	client *marketdata.Client
}

var _ Provider = (*AlpacaProvider)(nil)

func NewAlpacaProvider(apiKey, apiSecret, dataURL string) *AlpacaProvider {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaProvider{client: marketdata.NewClient(opts)}
}

func (p *AlpacaProvider) Name() string { return "alpaca" }

func (p *AlpacaProvider) Candles(_ context.Context, symbol string, start, end time.Time, interval string) ([]types.Candle, error) {
	tf, err := alpacaTimeFrameFor(interval)
	if err != nil {
		return nil, err
	}

	bars, err := p.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: tf,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("GetBars(%s): %w", symbol, err)
	}

	candles := make([]types.Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, types.Candle{
			Ts:    b.Timestamp.Unix(),
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
			Vol:   float64(b.Volume),
		})
	}
	return candles, nil
}

func alpacaTimeFrameFor(interval string) (marketdata.TimeFrame, error) {
	switch interval {
	case "1m":
		return marketdata.OneMin, nil
	case "5m":
		return marketdata.NewTimeFrame(5, marketdata.Min), nil
	case "15m":
		return marketdata.NewTimeFrame(15, marketdata.Min), nil
	case "1h":
		return marketdata.OneHour, nil
	case "1d":
		return marketdata.OneDay, nil
	default:
		return marketdata.TimeFrame{}, fmt.Errorf("interval %q not supported by the Alpaca provider", interval)
	}
}
