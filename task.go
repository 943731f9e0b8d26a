package winnow

// A Task applies one step of a DataFrame chain to Partitions of columnar
// data, and is produced when a DataFrameOperation is bound to a frame
type Task interface {
	// RunInitialize prepares any per-stage state before Partitions arrive
	RunInitialize(sctx StageContext) error
	// RunWorker applies this Task to a single Partition
	RunWorker(sctx StageContext, previous OperablePartition) ([]OperablePartition, error)
}
