package util

import (
	"github.com/go-winnow/winnow"
)

// cacheTask is a task that does nothing - the boundary it marks is what matters
type cacheTask struct{}

func (s *cacheTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *cacheTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	return []winnow.OperablePartition{previous}, nil
}

// Cache declares that Partitions computed up to this point in the DataFrame
// should be retained by the Session after the next action runs. Later actions
// on DataFrames derived from this one resume from the retained Partitions
// instead of recomputing them, until Session.Uncache releases them.
func Cache() *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.CacheTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			return &winnow.DataFrameOperationResult{
				Task:       &cacheTask{},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
