package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAndReshape is a helper producing a table from the standard test scenario.
func runAndReshape(t *testing.T, end int64, replicates int) (*ReplicateTable, RawSeries, TimeGrid) {
	t.Helper()
	grid := mustGrid(t, 0, end)
	s, err := NewSimulator(testParams(), grid, replicates, 1)
	require.NoError(t, err)
	raw := s.Run()
	table, err := Reshape(raw, CompartmentNames(), grid)
	require.NoError(t, err)
	return table, raw, grid
}

func TestReshape_FlattenedShape(t *testing.T) {
	// GIVEN a run with 3 compartments and 4 replicates over 0..100
	table, _, _ := runAndReshape(t, 100, 4)

	// THEN the flattened form has 3*4 data columns and 101 rows
	assert.Len(t, table.Columns, 12)
	assert.Len(t, table.ColumnNames, 12)
	assert.Equal(t, 101, table.Rows())
	assert.Equal(t, 3, table.NumCompartments())
	assert.Equal(t, 4, table.Replicates)
	assert.Equal(t, []string{"S", "I", "R"}, table.Compartments)
}

func TestReshape_ColumnOrderIsCompartmentMajor(t *testing.T) {
	table, _, _ := runAndReshape(t, 10, 2)

	// All replicates of S precede all replicates of I, which precede R's.
	assert.Equal(t, []string{"S_1", "S_2", "I_1", "I_2", "R_1", "R_2"}, table.ColumnNames)
}

func TestReshape_ColumnsMatchRaw(t *testing.T) {
	table, raw, _ := runAndReshape(t, 50, 3)

	for c := 0; c < NumCompartments; c++ {
		for rep := 0; rep < 3; rep++ {
			col := table.Column(c, rep)
			for ti := range raw {
				require.Equal(t, raw[ti][c][rep], col[ti],
					"column mismatch at t=%d compartment=%d replicate=%d", ti, c, rep)
			}
		}
	}
}

func TestReshape_TimeColumnCopiesGrid(t *testing.T) {
	table, _, grid := runAndReshape(t, 10, 1)

	assert.Equal(t, []float64(grid), table.Time)

	// Mutating the table's copy must not touch the grid.
	table.Time[0] = -99
	assert.Equal(t, 0.0, grid[0])
}

func TestReshape_MappingForm(t *testing.T) {
	// GIVEN a run with 3 compartments and k=5 replicates
	table, raw, _ := runAndReshape(t, 20, 5)

	byComp := table.ByCompartment()

	// THEN the mapping has exactly 3 entries, each shaped [time][k]
	require.Len(t, byComp, 3)
	for _, name := range CompartmentNames() {
		matrix, ok := byComp[name]
		require.True(t, ok, "missing compartment %q", name)
		require.Len(t, matrix, 21)
		for _, row := range matrix {
			require.Len(t, row, 5)
		}
	}

	// AND values match the raw series
	for ti := range raw {
		for rep := 0; rep < 5; rep++ {
			assert.Equal(t, raw[ti][CompartmentI][rep], byComp["I"][ti][rep])
		}
	}
}

func TestReshape_SingleReplicate(t *testing.T) {
	table, _, _ := runAndReshape(t, 100, 1)

	assert.Len(t, table.Columns, 3)
	assert.Equal(t, []string{"S_1", "I_1", "R_1"}, table.ColumnNames)
}

func TestReshape_DimensionMismatch(t *testing.T) {
	grid := mustGrid(t, 0, 10)
	s, err := NewSimulator(testParams(), grid, 2, 1)
	require.NoError(t, err)
	raw := s.Run()

	tests := []struct {
		name  string
		raw   RawSeries
		names []string
		grid  TimeGrid
	}{
		{"grid longer than series", raw, CompartmentNames(), mustGrid(t, 0, 20)},
		{"grid shorter than series", raw, CompartmentNames(), mustGrid(t, 0, 5)},
		{"wrong name count", raw, []string{"S", "I"}, grid},
		{"empty series", RawSeries{}, CompartmentNames(), grid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reshape(tt.raw, tt.names, tt.grid)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDimensionMismatch), "expected ErrDimensionMismatch, got: %v", err)
		})
	}
}

func TestReshape_RaggedSeries(t *testing.T) {
	grid := mustGrid(t, 0, 2)
	raw := newRawSeries(3, 2)
	raw[1][CompartmentI] = raw[1][CompartmentI][:1] // drop one replicate cell

	_, err := Reshape(raw, CompartmentNames(), grid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}
