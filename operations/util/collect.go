// Package util provides DataFrame operations which materialize or retain
// results, rather than transforming data
package util

import (
	"fmt"

	"github.com/go-winnow/winnow"
)

type collectTask struct {
	collectionLimit int64
}

func (s *collectTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *collectTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	// do nothing
	return []winnow.OperablePartition{previous}, nil
}

func (s *collectTask) GetCollectionLimit() int64 {
	return s.collectionLimit
}

// Collect declares that up to collectionLimit Partitions of data should be
// materialized into the Result of running this DataFrame. This also signals
// the end of a DataFrame's tasks.
func Collect(collectionLimit int64) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.CollectTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			if d.GetDataSource().IsStreaming() {
				return nil, fmt.Errorf("Cannot collect() from a streaming DataSource")
			}
			return &winnow.DataFrameOperationResult{
				Task:       &collectTask{collectionLimit},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
