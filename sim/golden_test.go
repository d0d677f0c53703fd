package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outbreak-sim/outbreak-sim/sim/internal/testutil"
)

// TestGoldenScenarios runs every dataset scenario and checks the pinned
// structural expectations plus the model invariants that hold for any
// seed: population conservation, non-negative counts, monotone S and R,
// and run-to-run determinism.
func TestGoldenScenarios(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Tests)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			params := Parameters{
				Population:      tc.Population,
				InitialInfected: tc.InitialInfected,
				Beta:            tc.Beta,
				Gamma:           tc.Gamma,
				Dt:              tc.Dt,
			}
			grid, err := NewTimeGrid(tc.Start, tc.End)
			require.NoError(t, err)

			s, err := NewSimulator(params, grid, tc.Replicates, tc.Seed)
			require.NoError(t, err)
			raw := s.Run()

			table, err := Reshape(raw, CompartmentNames(), grid)
			require.NoError(t, err)

			// Structural expectations
			assert.Equal(t, tc.Expect.Rows, table.Rows())
			assert.Equal(t, tc.Expect.DataColumns, len(table.Columns))
			for rep := 0; rep < tc.Replicates; rep++ {
				require.Equal(t, tc.Expect.InitialS, raw[0][CompartmentS][rep])
				require.Equal(t, tc.Expect.InitialI, raw[0][CompartmentI][rep])
				require.Equal(t, tc.Expect.InitialR, raw[0][CompartmentR][rep])
			}

			// Invariants for every replicate and time point
			for ti := range raw {
				for rep := 0; rep < tc.Replicates; rep++ {
					S := raw[ti][CompartmentS][rep]
					I := raw[ti][CompartmentI][rep]
					R := raw[ti][CompartmentR][rep]
					require.GreaterOrEqual(t, S, int64(0))
					require.GreaterOrEqual(t, I, int64(0))
					require.GreaterOrEqual(t, R, int64(0))
					require.Equal(t, tc.Population, S+I+R)
					if ti > 0 {
						require.LessOrEqual(t, S, raw[ti-1][CompartmentS][rep])
						require.GreaterOrEqual(t, R, raw[ti-1][CompartmentR][rep])
					}
				}
			}

			// Determinism: a second simulator with the same seed reproduces the run
			s2, err := NewSimulator(params, grid, tc.Replicates, tc.Seed)
			require.NoError(t, err)
			require.Equal(t, raw, s2.Run())
		})
	}
}
