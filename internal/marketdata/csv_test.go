package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candles.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVProviderLoads(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
1700000000,100,101,99,100.5,12.5
1700003600,100.5,102,100,101.5,8.0
2023-11-15T00:13:20Z,101.5,103,101,102.5,4.25
`)

	candles, err := NewCSVProvider(path).Candles(context.Background(), "BTC-USD", time.Time{}, time.Time{}, "1h")
	if err != nil {
		t.Fatal(err)
	}
	if len(candles) != 3 {
		t.Fatalf("got %d candles, want 3", len(candles))
	}
	if candles[0].Ts != 1700000000 || candles[0].Close != 100.5 || candles[0].Vol != 12.5 {
		t.Errorf("first candle = %+v", candles[0])
	}
	// RFC 3339 rows land on the same clock as unix rows.
	if candles[2].Ts != 1700007200 {
		t.Errorf("third candle Ts = %d, want 1700007200", candles[2].Ts)
	}
}

func TestCSVProviderRangeFilter(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
1700000000,100,101,99,100.5,1
1700003600,100,101,99,100.6,1
1700007200,100,101,99,100.7,1
`)

	start := time.Unix(1700003600, 0).UTC()
	end := time.Unix(1700003600, 0).UTC()
	candles, err := NewCSVProvider(path).Candles(context.Background(), "BTC-USD", start, end, "1h")
	if err != nil {
		t.Fatal(err)
	}
	if len(candles) != 1 || candles[0].Ts != 1700003600 {
		t.Fatalf("got %+v, want just the middle bar", candles)
	}
}

func TestCSVProviderBadHeader(t *testing.T) {
	path := writeCSV(t, `time,open,high,low,close,volume
1700000000,100,101,99,100.5,1
`)

	_, err := NewCSVProvider(path).Candles(context.Background(), "BTC-USD", time.Time{}, time.Time{}, "1h")
	if err == nil || !strings.Contains(err.Error(), "column 0") {
		t.Fatalf("err = %v, want header rejection", err)
	}
}

func TestCSVProviderBadRow(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
1700000000,100,101,99,not-a-price,1
`)

	_, err := NewCSVProvider(path).Candles(context.Background(), "BTC-USD", time.Time{}, time.Time{}, "1h")
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("err = %v, want row error with line number", err)
	}
}

func TestCSVProviderNonMonotonic(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
1700003600,100,101,99,100.5,1
1700000000,100,101,99,100.6,1
`)

	_, err := NewCSVProvider(path).Candles(context.Background(), "BTC-USD", time.Time{}, time.Time{}, "1h")
	if err == nil || !strings.Contains(err.Error(), "strictly increasing") {
		t.Fatalf("err = %v, want ordering rejection", err)
	}
}

func TestCSVProviderMissingFile(t *testing.T) {
	_, err := NewCSVProvider(filepath.Join(t.TempDir(), "nope.csv")).
		Candles(context.Background(), "BTC-USD", time.Time{}, time.Time{}, "1h")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
