package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("bouncebox: series too short to analyze")

// Spectrum is the one-sided amplitude spectrum of a real signal.
type Spectrum struct {
	Amplitudes []float64 // bin k is k*Resolution Hz
	Resolution float64
}

// PowerSpectrum removes the mean and transforms the series sampled at
// sampleRate Hz. Any length of at least two samples is accepted.
func PowerSpectrum(series []float64, sampleRate float64) (*Spectrum, error) {
	n := len(series)
	if n < 2 || sampleRate <= 0 {
		return nil, ErrShortSeries
	}

	mean := Mean(series)
	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	amps := make([]float64, n/2+1)
	for i := range amps {
		amps[i] = cmplx.Abs(coeffs[i]) / float64(n)
	}

	return &Spectrum{Amplitudes: amps, Resolution: sampleRate / float64(n)}, nil
}

// Dominant returns the frequency and amplitude of the strongest non-DC bin.
// A flat signal reports zero for both.
func (s *Spectrum) Dominant() (freq, amp float64) {
	if len(s.Amplitudes) < 2 {
		return 0, 0
	}
	best := 1
	for i := 2; i < len(s.Amplitudes); i++ {
		if s.Amplitudes[i] > s.Amplitudes[best] {
			best = i
		}
	}
	if s.Amplitudes[best] < 1e-12 {
		return 0, 0
	}
	return float64(best) * s.Resolution, s.Amplitudes[best]
}

type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	s := Summary{Mean: Mean(series), Min: series[0], Max: series[0]}
	for _, v := range series {
		d := v - s.Mean
		s.StdDev += d * d
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.StdDev = math.Sqrt(s.StdDev / float64(len(series)))
	return s
}
