// Package types defines internal interfaces shared between Winnow's
// implementation packages, which are not intended for use by clients.
package types

import (
	"github.com/go-winnow/winnow"
)

// An AccessibleRow exposes the raw components of a Row to
// implementation packages
type AccessibleRow interface {
	winnow.Row
	GetData() []byte
	GetMeta() []byte
	GetVarData() map[string]interface{}
	GetSerializedVarData() map[string][]byte
}

// A ReduceablePartition is a Partition which exposes the raw components of
// its Rows, along with keyed appends, for use during shuffles and caching
type ReduceablePartition interface {
	winnow.BuildablePartition
	winnow.OperablePartition
	GetSchema() winnow.Schema
	GetIsKeyed() bool
	GetKey(rowNum int) (uint64, error)
	AppendKeyedRowData(row []byte, meta []byte, varData map[string]interface{}, serializedVarRowData map[string][]byte, key uint64) error
	GetRowData(rowNum int) []byte
	GetRowMeta(rowNum int) []byte
	GetVarRowData(rowNum int) map[string]interface{}
	GetSerializedVarRowData(rowNum int) map[string][]byte
	ToBytes() ([]byte, error)
}

// A PartitionIndex is an index for Partitions, useful for shuffling and/or
// reducing. An implementation permits the indexing of Partitions as well as
// individual Rows, and provides a PartitionIterator to iterate over the
// indexed Partitions.
type PartitionIndex interface {
	GetNextStageSchema() winnow.Schema                                                                           // Returns the Schema for the Stage which will *read* from this index
	MergePartition(part ReduceablePartition, keyfn winnow.KeyingOperation, reducefn winnow.ReductionOperation) error // Merges all the Rows within a Partition into this PartitionIndex. reducefn may be nil, indicating that reduction is not intended.
	MergeRow(row winnow.Row, keyfn winnow.KeyingOperation, reducefn winnow.ReductionOperation) error              // Merges a Row of data into the PartitionIndex, possibly appending it to an existing/new Partition, or combining it with an existing Row
	GetPartitionIterator() winnow.PartitionIterator                                                              // Returns a PartitionIterator for this PartitionIndex
	NumPartitions() int                                                                                          // Returns the number of Partitions in this PartitionIndex
}

// A Stage is a group of Tasks which share a common Schema. Stages block the
// execution of further Stages until they are complete.
type Stage interface {
	ID() int
	WidestInitialSchema() winnow.Schema
	OutgoingSchema() winnow.Schema
	InitializeTasks(sctx winnow.StageContext) error
	WorkerExecute(sctx winnow.StageContext, part winnow.OperablePartition) ([]winnow.OperablePartition, error)
	EndsInShuffle() bool
	EndsInAccumulate() bool
	EndsInCollect() bool
	EndsInCache() bool
	GetCollectionLimit() int64
	KeyingOperation() winnow.KeyingOperation
	ReductionOperation() winnow.ReductionOperation
	AccumulatorFactory() winnow.AccumulatorFactory
	TargetPartitionSize() int
	CacheBoundaryID() string // ID of the frame whose results should be cached at the end of this Stage, or ""
}

// Plan is an optimized execution plan for a DataFrame, split into Stages
type Plan interface {
	Size() int
	GetStage(idx int) Stage
	Parser() winnow.DataSourceParser
	Source() winnow.DataSource
}

// An ExecutableDataFrame adds methods specific to the execution of DataFrames
type ExecutableDataFrame interface {
	winnow.DataFrame
	GetID() string
	GetParent() winnow.DataFrame
	Optimize() Plan
	AnalyzeSource() (winnow.PartitionMap, error)
}
