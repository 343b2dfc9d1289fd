// Package vicsek implements a two-dimensional Vicsek flocking model:
// self-propelled point particles on a periodic square domain that align
// their heading with the local neighborhood average, perturbed by noise.
//
// The package provides the core simulation primitives:
//
//   - [Params]: simulation parameters, validated at construction
//   - [Simulation]: particle ensemble advanced with [Simulation.Step]
//   - [NeighborsWithin]: exact periodic-metric neighbor queries
//   - [Simulation.OrderParameter]: global alignment diagnostic ψ ∈ [0,1]
//
// # Example
//
//	sim, _ := vicsek.New(vicsek.DefaultParams(), 42)
//	for i := 0; i < 1000; i++ {
//	    sim.Step()
//	}
//	psi := sim.OrderParameter()
//
// # Thread Safety
//
// A Simulation is NOT safe for concurrent use. Independent instances own
// their ensembles and random streams and may run in parallel goroutines.
package vicsek
