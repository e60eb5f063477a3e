package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStateStoreRoundTrip(t *testing.T) {
	s, err := NewStateStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	state := map[string]any{
		"trailing_high": 104.5,
		"active_positions": []map[string]float64{
			{"price": 97.0, "size": 28.35},
		},
	}

	if err := s.Save(ctx, "swing_reversion:BTC-USD", state); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "swing_reversion:BTC-USD")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected saved state")
	}
	if got["trailing_high"] != 104.5 {
		t.Errorf("trailing_high = %v, want 104.5", got["trailing_high"])
	}
}

func TestStateStoreOverwrite(t *testing.T) {
	s, err := NewStateStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Save(ctx, "bot", map[string]any{"trailing_high": 1.0}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "bot", map[string]any{"trailing_high": 2.0}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "bot")
	if err != nil {
		t.Fatal(err)
	}
	if got["trailing_high"] != 2.0 {
		t.Errorf("trailing_high = %v, want 2.0 after overwrite", got["trailing_high"])
	}
}

func TestStateStoreMissing(t *testing.T) {
	s, err := NewStateStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil state for unknown bot, got %v", got)
	}
}
