// Package hashmap implements a map-based PartitionIndex, suitable for
// grouping and reducing keyed Rows within a single process.
package hashmap

import (
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/internal/partition"
	itypes "github.com/go-winnow/winnow/internal/types"
)

// rowLoc locates a Row within the chain of indexed Partitions
type rowLoc struct {
	partIdx int
	rowIdx  int
}

// pMap indexes Rows by their key bytes, reducing Rows with identical
// keys into one another as they are merged. Safe for concurrent merges.
type pMap struct {
	lock         sync.Mutex
	maxRows      int
	widestSchema winnow.Schema // allocation size for Partitions read by the next Stage
	schema       winnow.Schema // Schema of the Rows being merged
	parts        []itypes.ReduceablePartition
	locs         map[string]rowLoc
}

// CreateMapPartitionIndex creates a new map-based PartitionIndex suitable for
// reduction. widestSchema determines the allocated Row size of the indexed
// Partitions, leaving room for any columns the next Stage will add.
func CreateMapPartitionIndex(maxRows int, widestSchema winnow.Schema, schema winnow.Schema) itypes.PartitionIndex {
	return &pMap{
		maxRows:      maxRows,
		widestSchema: widestSchema,
		schema:       schema,
		parts:        make([]itypes.ReduceablePartition, 0, 1),
		locs:         make(map[string]rowLoc),
	}
}

func (m *pMap) GetNextStageSchema() winnow.Schema {
	return m.schema
}

// MergePartition merges all the Rows within a Partition into this index.
// reducefn may be nil, indicating that reduction is not intended
func (m *pMap) MergePartition(part itypes.ReduceablePartition, keyfn winnow.KeyingOperation, reducefn winnow.ReductionOperation) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	for i := 0; i < part.GetNumRows(); i++ {
		if err := m.doMergeRow(part.GetRow(i), keyfn, reducefn); err != nil {
			return err
		}
	}
	return nil
}

// MergeRow merges a single Row into this index, combining it with an
// existing Row via reducefn if one shares its key bytes
func (m *pMap) MergeRow(row winnow.Row, keyfn winnow.KeyingOperation, reducefn winnow.ReductionOperation) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.doMergeRow(row, keyfn, reducefn)
}

func (m *pMap) doMergeRow(row winnow.Row, keyfn winnow.KeyingOperation, reducefn winnow.ReductionOperation) error {
	keyBuf, err := keyfn(row)
	if err != nil {
		return err
	}
	if reducefn != nil {
		if loc, ok := m.locs[string(keyBuf)]; ok {
			target := m.parts[loc.partIdx].GetRow(loc.rowIdx)
			return reducefn(target, row)
		}
	}
	// no existing row to merge into, so insert at the end of the chain
	if len(m.parts) == 0 || m.parts[len(m.parts)-1].GetNumRows() >= m.parts[len(m.parts)-1].GetMaxRows() {
		m.parts = append(m.parts, partition.CreateKeyedReduceablePartition(m.maxRows, m.widestSchema, m.schema))
	}
	appendTarget := m.parts[len(m.parts)-1]
	irow := row.(itypes.AccessibleRow)
	err = appendTarget.AppendKeyedRowData(irow.GetData(), irow.GetMeta(), irow.GetVarData(), irow.GetSerializedVarData(), xxhash.Sum64(keyBuf))
	if err != nil {
		return err
	}
	if reducefn != nil {
		m.locs[string(keyBuf)] = rowLoc{partIdx: len(m.parts) - 1, rowIdx: appendTarget.GetNumRows() - 1}
	}
	return nil
}

// GetPartitionIterator returns a PartitionIterator over the indexed Partitions
func (m *pMap) GetPartitionIterator() winnow.PartitionIterator {
	m.lock.Lock()
	defer m.lock.Unlock()
	return createPartitionSliceIterator(m.parts)
}

// NumPartitions returns the number of Partitions in this index
func (m *pMap) NumPartitions() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.parts)
}
