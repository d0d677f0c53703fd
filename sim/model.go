package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Compartment indices into raw series data, in output column order.
const (
	CompartmentS = iota
	CompartmentI
	CompartmentR
	NumCompartments
)

// CompartmentNames returns the compartment labels in index order.
func CompartmentNames() []string {
	return []string{"S", "I", "R"}
}

// State is the compartment occupancy of one replicate at one time point.
// Invariant: all counts non-negative and S+I+R equals the population,
// since the model has no births or deaths.
type State struct {
	S int64
	I int64
	R int64
}

// initialState places InitialInfected in I and the remainder in S.
func initialState(p Parameters) State {
	return State{
		S: p.Population - p.InitialInfected,
		I: p.InitialInfected,
		R: 0,
	}
}

// infectionProbability converts the per-capita infection hazard
// beta*I/N into a per-step probability: 1 - exp(-beta*I/N*dt).
func infectionProbability(p Parameters, infected int64) float64 {
	hazard := p.Beta * float64(infected) / float64(p.Population)
	return 1 - math.Exp(-hazard*p.Dt)
}

// recoveryProbability converts the recovery hazard gamma into a
// per-step probability: 1 - exp(-gamma*dt).
func recoveryProbability(p Parameters) float64 {
	return 1 - math.Exp(-p.Gamma*p.Dt)
}

// step advances one replicate by one Markov step. The binomial trial
// counts are bounded by the current compartment sizes, so transitions can
// never drive a compartment negative.
func step(p Parameters, st State, rng *rand.Rand) State {
	newInfections := binomial(rng, st.S, infectionProbability(p, st.I))
	newRecoveries := binomial(rng, st.I, recoveryProbability(p))
	return State{
		S: st.S - newInfections,
		I: st.I + newInfections - newRecoveries,
		R: st.R + newRecoveries,
	}
}

// binomial draws the number of successes out of trials at probability prob.
func binomial(rng *rand.Rand, trials int64, prob float64) int64 {
	if trials <= 0 || prob <= 0 {
		return 0
	}
	if prob >= 1 {
		return trials
	}
	dist := distuv.Binomial{N: float64(trials), P: prob, Src: rng}
	return int64(dist.Rand())
}
