// sim/simulator.go
package sim

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/sirupsen/logrus"
)

// RawSeries holds simulated counts indexed [time][compartment][replicate].
// It is the direct simulator output; Reshape turns it into the tabular
// form consumed by export and plotting.
type RawSeries [][][]int64

// Dims returns the (time, compartment, replicate) extent of the series.
// A zero-length series reports all-zero dims.
func (r RawSeries) Dims() (times, compartments, replicates int) {
	times = len(r)
	if times == 0 {
		return 0, 0, 0
	}
	compartments = len(r[0])
	if compartments == 0 {
		return times, 0, 0
	}
	return times, compartments, len(r[0][0])
}

func newRawSeries(times, replicates int) RawSeries {
	raw := make(RawSeries, times)
	for t := range raw {
		raw[t] = make([][]int64, NumCompartments)
		for c := range raw[t] {
			raw[t][c] = make([]int64, replicates)
		}
	}
	return raw
}

// Simulator advances the discrete-time Markov chain over a fixed time grid,
// producing one trajectory per replicate.
type Simulator struct {
	Params     Parameters
	Grid       TimeGrid
	Replicates int
	// Workers bounds the number of goroutines simulating replicates.
	// 0 or 1 runs sequentially. Output is identical either way: each
	// replicate owns a derived RNG stream and writes only its own column.
	Workers int

	rng *PartitionedRNG
}

// NewSimulator validates the configuration and builds a Simulator.
// Validation happens here, before any random draw.
func NewSimulator(params Parameters, grid TimeGrid, replicates int, seed int64) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if replicates < 1 {
		return nil, fmt.Errorf("%w: replicates must be at least 1, got %d", ErrInvalidConfig, replicates)
	}
	return &Simulator{
		Params:     params,
		Grid:       grid,
		Replicates: replicates,
		rng:        NewPartitionedRNG(NewSimulationKey(seed)),
	}, nil
}

// Run simulates all replicates and returns the raw series.
// Output is a pure function of (parameters, grid, replicates, seed).
func (s *Simulator) Run() RawSeries {
	raw := newRawSeries(len(s.Grid), s.Replicates)

	// Streams are derived up front: PartitionedRNG's cache is not
	// goroutine-safe, and eager derivation keeps seed->stream assignment
	// independent of worker scheduling.
	streams := make([]*rand.Rand, s.Replicates)
	for rep := range streams {
		streams[rep] = s.rng.ForReplicate(rep)
	}

	if s.Workers > 1 && s.Replicates > 1 {
		s.runParallel(raw, streams)
	} else {
		for rep := 0; rep < s.Replicates; rep++ {
			s.simulateReplicate(rep, streams[rep], raw)
		}
	}

	logrus.Debugf("simulated %d replicate(s) over %d time points (seed=%d)",
		s.Replicates, len(s.Grid), s.rng.Key())
	return raw
}

// runParallel fans replicate indices out to a fixed worker pool.
// Replicates are embarrassingly parallel: no shared mutable state beyond
// the disjoint output columns each worker writes.
func (s *Simulator) runParallel(raw RawSeries, streams []*rand.Rand) {
	workers := s.Workers
	if workers > s.Replicates {
		workers = s.Replicates
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := range indices {
				s.simulateReplicate(rep, streams[rep], raw)
			}
		}()
	}
	for rep := 0; rep < s.Replicates; rep++ {
		indices <- rep
	}
	close(indices)
	wg.Wait()
}

// simulateReplicate walks one replicate across the grid, recording the
// state at every time point (the first point holds the initial state).
func (s *Simulator) simulateReplicate(rep int, rng *rand.Rand, raw RawSeries) {
	st := initialState(s.Params)
	s.record(raw, 0, rep, st)
	for t := 1; t < len(s.Grid); t++ {
		st = step(s.Params, st, rng)
		s.record(raw, t, rep, st)
	}
}

func (s *Simulator) record(raw RawSeries, t, rep int, st State) {
	raw[t][CompartmentS][rep] = st.S
	raw[t][CompartmentI][rep] = st.I
	raw[t][CompartmentR][rep] = st.R
}
