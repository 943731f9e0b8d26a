package transform

import (
	"github.com/go-winnow/winnow"
	iutil "github.com/go-winnow/winnow/internal/util"
)

// With inspiration from:
// https://blog.cloudera.com/blog/2015/01/improving-sort-performance-in-apache-spark-its-a-double/
// https://github.com/cespare/xxhash

type reduceTask struct {
	kfn                 winnow.KeyingOperation
	fn                  winnow.ReductionOperation
	targetPartitionSize int
}

func (s *reduceTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *reduceTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	// Start by keying the rows in the partition
	// row errors surface alongside the rows which survived them
	part, err := previous.KeyRows(s.kfn)
	if part == nil {
		return nil, err
	}
	return []winnow.OperablePartition{part}, err
}

func (s *reduceTask) GetKeyingOperation() winnow.KeyingOperation {
	return s.kfn
}

func (s *reduceTask) GetReductionOperation() winnow.ReductionOperation {
	return s.fn
}

func (s *reduceTask) GetTargetPartitionSize() int {
	return s.targetPartitionSize
}

// Reduce combines Rows with identical keys, using a ReductionOperation
func Reduce(kfn winnow.KeyingOperation, fn winnow.ReductionOperation) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.ShuffleTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			return &winnow.DataFrameOperationResult{
				Task: &reduceTask{
					kfn:                 iutil.SafeKeyingOperation(kfn),
					fn:                  iutil.SafeReductionOperation(fn),
					targetPartitionSize: -1,
				},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
