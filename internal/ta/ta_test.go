package ta

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	if got := SMA(closes, 5); got != 3 {
		t.Errorf("SMA(5) = %v, want 3", got)
	}
	if got := SMA(closes, 2); got != 4.5 {
		t.Errorf("SMA(2) = %v, want 4.5", got)
	}
}

func TestSMAInsufficientData(t *testing.T) {
	if got := SMA([]float64{1, 2}, 3); !math.IsNaN(got) {
		t.Errorf("SMA with short input = %v, want NaN", got)
	}
	if got := SMA([]float64{1, 2}, 0); !math.IsNaN(got) {
		t.Errorf("SMA with n=0 = %v, want NaN", got)
	}
}
