package analysis

import (
	"errors"
	"math"
	"testing"
)

func sine(freq, rate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		freq float64
		n    int
	}{
		{2, 256},
		{5, 300},
		{0.5, 600},
	}

	for _, tt := range tests {
		spec, err := PowerSpectrum(sine(tt.freq, 60, tt.n), 60)
		if err != nil {
			t.Fatalf("spectrum failed: %v", err)
		}
		got, amp := spec.Dominant()
		if math.Abs(got-tt.freq) > spec.Resolution {
			t.Errorf("freq %v: dominant = %v (resolution %v)", tt.freq, got, spec.Resolution)
		}
		if amp <= 0 {
			t.Errorf("freq %v: zero amplitude", tt.freq)
		}
	}
}

func TestDominantFlatSignal(t *testing.T) {
	spec, err := PowerSpectrum([]float64{4, 4, 4, 4, 4, 4}, 60)
	if err != nil {
		t.Fatal(err)
	}
	if f, a := spec.Dominant(); f != 0 || a != 0 {
		t.Errorf("flat signal gave %v Hz at %v", f, a)
	}
}

func TestPowerSpectrumShort(t *testing.T) {
	if _, err := PowerSpectrum([]float64{1}, 60); !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
	if _, err := PowerSpectrum([]float64{1, 2}, 0); !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries for zero rate, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Mean != 5 || s.StdDev != 2 || s.Min != 2 || s.Max != 9 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if (Summarize(nil) != Summary{}) {
		t.Error("empty series should give a zero summary")
	}
}
