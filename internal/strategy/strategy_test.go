package strategy

import (
	"strings"
	"testing"
	"time"

	"swing-reversion-bot/internal/exchange"
	"swing-reversion-bot/internal/store"
	"swing-reversion-bot/internal/types"
)

type fakeStrategy struct{ name string }

func (f *fakeStrategy) Name() string { return f.name }
func (f *fakeStrategy) GenerateSignal(types.MarketSnapshot, types.Portfolio) types.Signal {
	return types.Signal{Action: types.ActionHold}
}
func (f *fakeStrategy) OnFill(types.Signal, float64, float64, time.Time) {}
func (f *fakeStrategy) ExportState() map[string]any                      { return nil }
func (f *fakeStrategy) ImportState(map[string]any) error                 { return nil }

func fakeFactory(name string) Factory {
	return func(store.StrategyConfig, exchange.Exchange) (Strategy, error) {
		return &fakeStrategy{name: name}, nil
	}
}

func TestRegistryNew(t *testing.T) {
	r := NewRegistry()
	r.Register("alpha", fakeFactory("alpha"))

	s, err := r.New("alpha", store.StrategyConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "alpha" {
		t.Errorf("Name = %q, want alpha", s.Name())
	}
}

func TestRegistryUnknownName(t *testing.T) {
	r := NewRegistry()
	r.Register("alpha", fakeFactory("alpha"))
	r.Register("beta", fakeFactory("beta"))

	_, err := r.New("gamma", store.StrategyConfig{}, nil)
	if err == nil {
		t.Fatal("expected error for unknown name")
	}
	// The error tells the operator what is available.
	for _, want := range []string{"gamma", "alpha", "beta"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.Register(name, fakeFactory(name))
	}

	got := r.List()
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List = %v, want %v", got, want)
		}
	}
}
