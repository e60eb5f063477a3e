package exchange

import (
	"context"
	"testing"

	"swing-reversion-bot/internal/types"
)

func candleSeries(closes ...float64) []types.Candle {
	cs := make([]types.Candle, 0, len(closes))
	for i, c := range closes {
		cs = append(cs, types.Candle{Ts: int64(1700000000 + i*3600), Close: c})
	}
	return cs
}

func TestFetchSnapshotWindow(t *testing.T) {
	ex := NewBacktest("BTC-USD", candleSeries(10, 11, 12, 13, 14))
	ex.Seek(3)

	snap, err := ex.FetchSnapshot(context.Background(), "BTC-USD", 3)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{11, 12, 13}
	if len(snap.Prices) != len(want) {
		t.Fatalf("got %d prices, want %d", len(snap.Prices), len(want))
	}
	for i, p := range want {
		if snap.Prices[i] != p {
			t.Errorf("Prices[%d] = %v, want %v", i, snap.Prices[i], p)
		}
	}
	if snap.CurrentPrice != 13 {
		t.Errorf("CurrentPrice = %v, want 13", snap.CurrentPrice)
	}
}

func TestFetchSnapshotNoLookahead(t *testing.T) {
	ex := NewBacktest("BTC-USD", candleSeries(10, 11, 12, 13, 14))

	// Regardless of the requested limit, the window must end at the cursor.
	for cursor := 0; cursor < 5; cursor++ {
		ex.Seek(cursor)
		snap, err := ex.FetchSnapshot(context.Background(), "BTC-USD", 100)
		if err != nil {
			t.Fatal(err)
		}
		if len(snap.Prices) != cursor+1 {
			t.Errorf("cursor %d: got %d prices, want %d", cursor, len(snap.Prices), cursor+1)
		}
		if last := snap.Prices[len(snap.Prices)-1]; last != snap.CurrentPrice {
			t.Errorf("cursor %d: last price %v != current %v", cursor, last, snap.CurrentPrice)
		}
	}
}

func TestFetchSnapshotTruncatedWindow(t *testing.T) {
	// Fewer bars than the limit: all available bars, not zero-padded.
	ex := NewBacktest("BTC-USD", candleSeries(10, 11))
	ex.Seek(1)

	snap, err := ex.FetchSnapshot(context.Background(), "BTC-USD", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Prices) != 2 {
		t.Errorf("got %d prices, want 2", len(snap.Prices))
	}
}

func TestFetchSnapshotEmptySeries(t *testing.T) {
	ex := NewBacktest("BTC-USD", nil)
	if _, err := ex.FetchSnapshot(context.Background(), "BTC-USD", 10); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestExecuteFillsAtRequestedPrice(t *testing.T) {
	ex := NewBacktest("BTC-USD", candleSeries(10, 11, 12))
	ex.Seek(2)

	exec, err := ex.Execute(context.Background(), "BTC-USD", types.SideBuy, 1.5, 12)
	if err != nil {
		t.Fatal(err)
	}
	if exec.Price != 12 || exec.Size != 1.5 || exec.Side != types.SideBuy {
		t.Errorf("unexpected execution: %+v", exec)
	}
	if exec.Timestamp.Unix() != 1700000000+2*3600 {
		t.Errorf("timestamp = %v, want current bar time", exec.Timestamp)
	}
}
