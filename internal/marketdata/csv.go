package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"swing-reversion-bot/internal/types"
)

// csvHeader is the required column contract. Unexpected shapes fail loudly
// instead of being silently adjusted.
var csvHeader = []string{"timestamp", "open", "high", "low", "close", "volume"}

// CSVProvider loads candles from a local CSV file with a fixed header.
type CSVProvider struct {
	path string
}

var _ Provider = (*CSVProvider)(nil)

func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{path: path}
}

func (p *CSVProvider) Name() string { return "csv" }

func (p *CSVProvider) Candles(_ context.Context, _ string, start, end time.Time, _ string) ([]types.Candle, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header from %s: %w", p.path, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, fmt.Errorf("%s: %w", p.path, err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV rows from %s: %w", p.path, err)
	}

	candles := make([]types.Candle, 0, len(rows))
	var prevTs int64
	for i, row := range rows {
		c, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", p.path, i+2, err)
		}
		if c.Ts <= prevTs && prevTs != 0 {
			return nil, fmt.Errorf("%s row %d: timestamps not strictly increasing", p.path, i+2)
		}
		prevTs = c.Ts

		t := time.Unix(c.Ts, 0).UTC()
		if !start.IsZero() && t.Before(start) {
			continue
		}
		if !end.IsZero() && t.After(end) {
			continue
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected %d columns %v, got %d", len(csvHeader), csvHeader, len(header))
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return fmt.Errorf("column %d: expected %q, got %q", i, want, header[i])
		}
	}
	return nil
}

func parseRow(row []string) (types.Candle, error) {
	if len(row) != len(csvHeader) {
		return types.Candle{}, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(row))
	}

	ts, err := parseTimestamp(row[0])
	if err != nil {
		return types.Candle{}, err
	}

	vals := make([]float64, 5)
	for i := 1; i < 6; i++ {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return types.Candle{}, fmt.Errorf("column %q: %w", csvHeader[i], err)
		}
		vals[i-1] = v
	}

	return types.Candle{
		Ts:    ts,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
		Vol:   vals[4],
	}, nil
}

// parseTimestamp accepts unix seconds or RFC 3339.
func parseTimestamp(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q is neither unix seconds nor RFC3339", s)
	}
	return t.Unix(), nil
}
