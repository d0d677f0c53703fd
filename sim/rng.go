package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// StreamReplicate returns the stream name for replicate N.
// Each replicate draws from its own stream, so running k replicates is
// statistically equivalent to k independent single-replicate runs, and
// parallel execution stays deterministic regardless of scheduling.
func StreamReplicate(id int) string {
	return fmt.Sprintf("replicate_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per stream.
//
// Derivation formula: PCG seeded with (masterSeed, masterSeed XOR
// fnv1a64(streamName)). Distinct stream names give distinct, independent
// sequences under the same master seed.
//
// Thread-safety: ForStream is NOT thread-safe; derive all streams up front
// (or from a single goroutine) before handing them to workers. Each
// returned *rand.Rand must then be used by one goroutine only.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForStream returns a deterministically-seeded RNG for the named stream.
// The same stream name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForStream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}

	derived := uint64(p.key) ^ uint64(fnv1a64(name))
	rng := rand.New(rand.NewPCG(uint64(p.key), derived))
	p.streams[name] = rng
	return rng
}

// ForReplicate returns the RNG stream for replicate id.
func (p *PartitionedRNG) ForReplicate(id int) *rand.Rand {
	return p.ForStream(StreamReplicate(id))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
