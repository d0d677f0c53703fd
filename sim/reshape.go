package sim

import "fmt"

// ReplicateTable is the tidy tabular form of a RawSeries: one row per time
// point, one data column per (compartment, replicate) pair. Columns are
// compartment-major — all replicates of the first compartment, then all
// replicates of the second, and so on. Downstream consumers (CSV export,
// plotting) rely on this order for column-to-color mapping, so it is part
// of the contract.
//
// A ReplicateTable is created once per run and treated as read-only
// afterwards.
type ReplicateTable struct {
	Time         []float64 // one entry per row, copied from the time grid
	Columns      [][]int64 // indexed [compartment*replicates + replicate][time]
	ColumnNames  []string  // e.g. "S_1", "S_2", ..., "I_1", ...
	Compartments []string  // compartment name list, index order
	Replicates   int
}

// Reshape organizes a raw [time][compartment][replicate] series into a
// ReplicateTable. A raw series whose shape disagrees with the declared
// compartment names or grid length fails with ErrDimensionMismatch.
func Reshape(raw RawSeries, names []string, grid TimeGrid) (*ReplicateTable, error) {
	times, compartments, replicates := raw.Dims()
	if times != len(grid) {
		return nil, fmt.Errorf("%w: raw series has %d time points, grid has %d", ErrDimensionMismatch, times, len(grid))
	}
	if compartments != len(names) {
		return nil, fmt.Errorf("%w: raw series has %d compartments, %d names declared", ErrDimensionMismatch, compartments, len(names))
	}
	if replicates == 0 {
		return nil, fmt.Errorf("%w: raw series has no replicates", ErrDimensionMismatch)
	}
	for t := range raw {
		if len(raw[t]) != compartments {
			return nil, fmt.Errorf("%w: ragged compartment axis at time index %d", ErrDimensionMismatch, t)
		}
		for c := range raw[t] {
			if len(raw[t][c]) != replicates {
				return nil, fmt.Errorf("%w: ragged replicate axis at time index %d, compartment %s", ErrDimensionMismatch, t, names[c])
			}
		}
	}

	table := &ReplicateTable{
		Time:         append([]float64(nil), grid...),
		Columns:      make([][]int64, compartments*replicates),
		ColumnNames:  make([]string, compartments*replicates),
		Compartments: append([]string(nil), names...),
		Replicates:   replicates,
	}
	for c := 0; c < compartments; c++ {
		for rep := 0; rep < replicates; rep++ {
			idx := c*replicates + rep
			col := make([]int64, times)
			for t := 0; t < times; t++ {
				col[t] = raw[t][c][rep]
			}
			table.Columns[idx] = col
			table.ColumnNames[idx] = fmt.Sprintf("%s_%d", names[c], rep+1)
		}
	}
	return table, nil
}

// NumCompartments returns the compartment count.
func (t *ReplicateTable) NumCompartments() int {
	return len(t.Compartments)
}

// Rows returns the number of time points.
func (t *ReplicateTable) Rows() int {
	return len(t.Time)
}

// Column returns the trajectory of one (compartment, replicate) pair.
func (t *ReplicateTable) Column(compartment, replicate int) []int64 {
	return t.Columns[compartment*t.Replicates+replicate]
}

// ByCompartment returns the mapping form: compartment name to a
// [time][replicate] matrix. The matrices share no storage with the table.
func (t *ReplicateTable) ByCompartment() map[string][][]int64 {
	out := make(map[string][][]int64, len(t.Compartments))
	for c, name := range t.Compartments {
		matrix := make([][]int64, len(t.Time))
		for i := range matrix {
			row := make([]int64, t.Replicates)
			for rep := 0; rep < t.Replicates; rep++ {
				row[rep] = t.Column(c, rep)[i]
			}
			matrix[i] = row
		}
		out[name] = matrix
	}
	return out
}
