// Package analysis provides diagnostics over order-parameter time
// series:
//
//   - [PowerSpectrum]: frequency content of psi(t)
//   - [Autocorrelation]: normalized autocorrelation by lag
//   - [RelaxationTime]: 1/e decorrelation time in samples
//
// The relaxation time is the practical guide for choosing stationary
// estimator horizons: a burn-in of several relaxation times and a window
// long relative to one are enough for a stable mean.
package analysis
