package analysis

import "math"

// Autocorrelation returns the normalized autocorrelation of the series
// for lags 0..maxLag inclusive. A constant series has no fluctuation to
// correlate; it yields 1 at lag 0 and 0 elsewhere.
func Autocorrelation(series []float64, maxLag int) []float64 {
	n := len(series)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	var mean float64
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range series {
		d := v - mean
		variance += d * d
	}

	acf := make([]float64, maxLag+1)
	acf[0] = 1
	if variance == 0 {
		return acf
	}

	for lag := 1; lag <= maxLag; lag++ {
		var sum float64
		for i := 0; i+lag < n; i++ {
			sum += (series[i] - mean) * (series[i+lag] - mean)
		}
		acf[lag] = sum / variance
	}
	return acf
}

// RelaxationTime estimates the decorrelation time of the series in
// samples: the first lag at which the autocorrelation drops below 1/e.
// Returns the scanned maximum (len/4) when the series never decorrelates
// within it, which is itself a signal that the window is too short.
func RelaxationTime(series []float64) int {
	maxLag := len(series) / 4
	if maxLag < 1 {
		return 0
	}

	acf := Autocorrelation(series, maxLag)
	threshold := 1.0 / math.E
	for lag := 1; lag < len(acf); lag++ {
		if acf[lag] < threshold {
			return lag
		}
	}
	return maxLag
}
