package winnow

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about a running Winnow pipeline
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the pipeline
	GetStartTime() time.Time
	// GetRuntime returns the running time of the pipeline
	GetRuntime() time.Duration
	// GetNumRowsProcessed returns the number of Rows which have been processed so far, counted by stage
	GetNumRowsProcessed() []int64
	// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far, counted by stage
	GetNumPartitionsProcessed() []int64
	// GetStageRuntimes returns all recorded stage runtimes, from the most recent run of each Stage
	GetStageRuntimes() []time.Duration
}
