package partition

import (
	"github.com/go-winnow/winnow"
	itypes "github.com/go-winnow/winnow/internal/types"
	"github.com/hashicorp/go-multierror"
)

// MapRows runs a MapOperation on each row in this Partition, manipulating them in-place. Will fall back to creating a fresh partition if row errors occur.
func (p *partitionImpl) MapRows(fn winnow.MapOperation) (winnow.OperablePartition, error) {
	inPlace := true // start by attempting to manipulate rows in-place
	result := p
	var multierr *multierror.Error
	tempRow := &rowImpl{}
	for i := 0; i < p.GetNumRows(); i++ {
		row := p.getRow(tempRow, i)
		err := fn(row)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			// create a new partition and switch to non-in-place mode
			if inPlace {
				inPlace = false
				result = createPartitionImpl(p.maxRows, p.widestSchema, p.currentSchema)
				// append all rows we've successfully processed so far (up to this one)
				for j := 0; j < i; j++ {
					err := result.AppendRowData(p.GetRowData(j), p.GetRowMeta(j), p.GetVarRowData(j), p.GetSerializedVarRowData(j))
					if err != nil {
						return nil, err
					}
				}
			}
		} else if !inPlace { // if we're not in in-place mode, append successful rows to new Partition
			err := result.AppendRowData(p.GetRowData(i), p.GetRowMeta(i), p.GetVarRowData(i), p.GetSerializedVarRowData(i))
			if err != nil {
				return nil, err
			}
		}
	}
	return result, multierr.ErrorOrNil()
}

// FlatMapRows runs a FlatMapOperation on each row in this Partition, creating new Partitions
func (p *partitionImpl) FlatMapRows(fn winnow.FlatMapOperation) ([]winnow.OperablePartition, error) {
	var multierr *multierror.Error
	parts := []*partitionImpl{createPartitionImpl(p.maxRows, p.widestSchema, p.currentSchema)}
	// factory appends a fresh Row to the newest output Partition, so a
	// returned Row must be fully populated before requesting another
	factoryRow := &rowImpl{}
	factory := func() winnow.Row {
		appendTarget := parts[len(parts)-1]
		if appendTarget.GetNumRows() >= appendTarget.GetMaxRows() {
			parts = append(parts, createPartitionImpl(p.maxRows, p.widestSchema, p.currentSchema))
			appendTarget = parts[len(parts)-1]
		}
		row, err := appendTarget.AppendEmptyRowData(factoryRow)
		if err != nil {
			// unreachable - we just checked for a full Partition
			panic(err)
		}
		return row
	}
	tempRow := &rowImpl{}
	for i := 0; i < p.GetNumRows(); i++ {
		err := fn(p.getRow(tempRow, i), factory)
		if err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	result := make([]winnow.OperablePartition, len(parts))
	for i, part := range parts {
		result[i] = part
	}
	return result, multierr.ErrorOrNil()
}

// FilterRows filters the Rows in the current Partition, creating a new one
func (p *partitionImpl) FilterRows(fn winnow.FilterOperation) (winnow.OperablePartition, error) {
	var multierr *multierror.Error
	result := createPartitionImpl(p.maxRows, p.widestSchema, p.currentSchema)
	tempRow := &rowImpl{}
	for i := 0; i < p.GetNumRows(); i++ {
		shouldKeep, err := fn(p.getRow(tempRow, i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if shouldKeep {
			err := result.AppendRowData(p.GetRowData(i), p.GetRowMeta(i), p.GetVarRowData(i), p.GetSerializedVarRowData(i))
			// the result cannot fill up, since it holds at most as many rows as we have
			if err != nil {
				return nil, err
			}
		}
	}
	return result, multierr.ErrorOrNil()
}

// Repack repacks a Partition according to a new Schema
func (p *partitionImpl) Repack(newSchema winnow.Schema) (winnow.OperablePartition, error) {
	part := createPartitionImpl(p.maxRows, newSchema, newSchema)
	for i := 0; i < p.GetNumRows(); i++ {
		row := p.GetRow(i)
		newRow, err := row.Repack(newSchema)
		if err != nil {
			return nil, err
		}
		iNewRow := newRow.(itypes.AccessibleRow)
		err = part.AppendRowData(iNewRow.GetData(), iNewRow.GetMeta(), iNewRow.GetVarData(), iNewRow.GetSerializedVarData())
		if err != nil {
			return nil, err
		}
	}
	return part, nil
}
