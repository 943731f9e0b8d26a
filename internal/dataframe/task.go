package dataframe

import (
	"github.com/go-winnow/winnow"
)

// A shuffleTask is a task that represents a partition shuffle, optionally with reduction
type shuffleTask interface {
	winnow.Task
	GetKeyingOperation() winnow.KeyingOperation
	GetReductionOperation() winnow.ReductionOperation
	GetTargetPartitionSize() int
}

// An accumulationTask is a task that represents an accumulation
type accumulationTask interface {
	winnow.Task
	GetAccumulatorFactory() winnow.AccumulatorFactory
}

// A collectionTask is a task that represents collecting results to the client
type collectionTask interface {
	winnow.Task
	GetCollectionLimit() int64
}

// noOpTask is a task that does nothing
type noOpTask struct{}

// RunInitialize for noOpTask does nothing
func (s *noOpTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

// RunWorker for noOpTask does nothing
func (s *noOpTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	return []winnow.OperablePartition{previous}, nil
}
