// Tracks per-run epidemic outcome metrics aggregated across replicates.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates per-replicate epidemic outcomes for final reporting.
// Useful for comparing scenarios and sanity-checking stochastic spread.
type Summary struct {
	Replicates int

	FinalSizeMean float64 // mean recovered count at the last time point
	FinalSizeP90  float64
	AttackRate    float64 // mean final size as a fraction of the population

	PeakInfectedMean float64 // mean of each replicate's maximum I
	PeakInfectedP90  float64
	PeakTimeMean     float64 // mean grid time at which I peaks
}

// Summarize computes outcome statistics across the replicates of a run.
func Summarize(raw RawSeries, grid TimeGrid, params Parameters) *Summary {
	times, _, replicates := raw.Dims()
	if times == 0 || replicates == 0 {
		return &Summary{}
	}

	finalSizes := make([]float64, replicates)
	peaks := make([]float64, replicates)
	peakTimes := make([]float64, replicates)
	for rep := 0; rep < replicates; rep++ {
		finalSizes[rep] = float64(raw[times-1][CompartmentR][rep])
		var peak int64
		peakIdx := 0
		for t := 0; t < times; t++ {
			if infected := raw[t][CompartmentI][rep]; infected > peak {
				peak = infected
				peakIdx = t
			}
		}
		peaks[rep] = float64(peak)
		peakTimes[rep] = grid[peakIdx]
	}

	sort.Float64s(finalSizes)
	sort.Float64s(peaks)

	return &Summary{
		Replicates:       replicates,
		FinalSizeMean:    stat.Mean(finalSizes, nil),
		FinalSizeP90:     stat.Quantile(0.9, stat.Empirical, finalSizes, nil),
		AttackRate:       stat.Mean(finalSizes, nil) / float64(params.Population),
		PeakInfectedMean: stat.Mean(peaks, nil),
		PeakInfectedP90:  stat.Quantile(0.9, stat.Empirical, peaks, nil),
		PeakTimeMean:     stat.Mean(peakTimes, nil),
	}
}

// Print displays aggregated outcome metrics at the end of a run.
func (s *Summary) Print() {
	fmt.Println("=== Epidemic Summary ===")
	fmt.Printf("Replicates           : %d\n", s.Replicates)
	fmt.Printf("Final Size (mean)    : %.2f\n", s.FinalSizeMean)
	fmt.Printf("Final Size (p90)     : %.2f\n", s.FinalSizeP90)
	fmt.Printf("Attack Rate          : %.4f\n", s.AttackRate)
	fmt.Printf("Peak Infected (mean) : %.2f\n", s.PeakInfectedMean)
	fmt.Printf("Peak Infected (p90)  : %.2f\n", s.PeakInfectedP90)
	fmt.Printf("Peak Time (mean)     : %.2f\n", s.PeakTimeMean)
}
