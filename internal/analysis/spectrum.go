package analysis

import (
	"math"
	"math/cmplx"
)

// fft is a radix-2 Cooley-Tukey transform; len(data) must be a power of
// two.
func fft(data []complex128) []complex128 {
	n := len(data)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, data)
		return out
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	fe := fft(even)
	fo := fft(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		out[k] = fe[k] + w*fo[k]
		out[k+n/2] = fe[k] - w*fo[k]
	}
	return out
}

// PowerSpectrum returns the magnitude spectrum of the series over the
// positive frequencies. The input is truncated to its largest
// power-of-two prefix and has its mean removed, so the zero-frequency
// bin does not swamp the dynamics.
func PowerSpectrum(series []float64) []float64 {
	n := 1
	for n*2 <= len(series) {
		n *= 2
	}
	if n < 2 {
		return nil
	}

	var mean float64
	for _, v := range series[:n] {
		mean += v
	}
	mean /= float64(n)

	data := make([]complex128, n)
	for i := 0; i < n; i++ {
		data[i] = complex(series[i]-mean, 0)
	}

	spec := fft(data)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}
