package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Pad returns data with zeros appended up to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n <<= 1
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

// PowerSpectrum returns the magnitude of the lower half of the spectrum of
// data, zero padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(Pad(data))
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantPeriod returns the period, in the units of sampleDt, of the
// strongest non-constant component of series. It reports false when the
// series is too short or flat. Resolution is limited by the padded
// length, so only periods well inside the series are meaningful.
func DominantPeriod(series []float64, sampleDt float64) (float64, bool) {
	if len(series) < 4 || sampleDt <= 0 {
		return 0, false
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))
	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	padded := Pad(centered)
	ps := PowerSpectrum(padded)
	peak, k := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > peak {
			peak, k = ps[i], i
		}
	}
	if k == 0 || peak < 1e-12 {
		return 0, false
	}
	return float64(len(padded)) * sampleDt / float64(k), true
}

// Apsides returns the smallest and largest distance in series and the
// eccentricity (max-min)/(max+min) of an orbit with those apsides.
func Apsides(series []float64) (peri, apo, ecc float64) {
	if len(series) == 0 {
		return 0, 0, 0
	}
	peri, apo = math.Inf(1), math.Inf(-1)
	for _, v := range series {
		peri = math.Min(peri, v)
		apo = math.Max(apo, v)
	}
	if apo+peri > 0 {
		ecc = (apo - peri) / (apo + peri)
	}
	return peri, apo, ecc
}
