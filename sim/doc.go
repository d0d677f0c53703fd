// Package sim provides the stochastic discrete-time SIR epidemic simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - model.go: compartments, hazard-to-probability conversion, the binomial step rule
//   - simulator.go: replicate loop, worker pool, raw series layout
//   - reshape.go: the tidy table form consumed by export and plotting
//
// # Architecture
//
// The model is a discrete-time Markov chain over the S, I, R compartments.
// Per step, new infections are Binomial(S, 1-exp(-beta*I/N*dt)) and new
// recoveries are Binomial(I, 1-exp(-gamma*dt)); trial counts bound the
// draws, so compartment counts never go negative and S+I+R is conserved.
//
// Replicates are independent realizations under identical parameters. Each
// replicate draws from its own RNG stream derived from the master seed
// (rng.go), so results are reproducible bit-for-bit and do not depend on
// whether replicates run sequentially or on a worker pool.
//
// Supporting pieces:
//   - bundle.go: YAML scenario files (full run configuration in one document)
//   - metrics.go: outcome statistics aggregated across replicates
//   - export.go: CSV form of the reshaped table
//
// Rendering of replicate trajectories lives in the sim/plot sub-package.
package sim
