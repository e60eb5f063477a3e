package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"swing-reversion-bot/internal/types"
)

// KiteProvider fetches historical candles from the Zerodha Kite Connect API.
type KiteProvider struct {
	kc              *kiteconnect.Client
	instrumentToken int
}

var _ Provider = (*KiteProvider)(nil)

func NewKiteProvider(apiKey, accessToken string, instrumentToken int) (*KiteProvider, error) {
	if apiKey == "" || accessToken == "" {
		return nil, errors.New("missing KITE_API_KEY/KITE_ACCESS_TOKEN")
	}
	if instrumentToken == 0 {
		return nil, errors.New("kite.instrument_token is required for the KITE data source")
	}
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	return &KiteProvider{kc: kc, instrumentToken: instrumentToken}, nil
}

func (p *KiteProvider) Name() string { return "kite" }

func (p *KiteProvider) Candles(_ context.Context, _ string, start, end time.Time, interval string) ([]types.Candle, error) {
	kiteInterval, err := kiteIntervalFor(interval)
	if err != nil {
		return nil, err
	}

	data, err := p.kc.GetHistoricalData(p.instrumentToken, kiteInterval, start, end, false, false)
	if err != nil {
		return nil, fmt.Errorf("fetching Kite historical data: %w", err)
	}

	candles := make([]types.Candle, 0, len(data))
	for _, d := range data {
		candles = append(candles, types.Candle{
			Ts:    d.Date.Unix(),
			Open:  d.Open,
			High:  d.High,
			Low:   d.Low,
			Close: d.Close,
			Vol:   float64(d.Volume),
		})
	}
	return candles, nil
}

func kiteIntervalFor(interval string) (string, error) {
	switch interval {
	case "1m":
		return "minute", nil
	case "5m":
		return "5minute", nil
	case "15m":
		return "15minute", nil
	case "1h":
		return "60minute", nil
	case "1d":
		return "day", nil
	default:
		return "", fmt.Errorf("interval %q not supported by the Kite provider", interval)
	}
}
