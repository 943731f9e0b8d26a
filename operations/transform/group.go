package transform

import (
	"github.com/go-winnow/winnow"
	iutil "github.com/go-winnow/winnow/internal/util"
)

type groupTask struct {
	kfn                 winnow.KeyingOperation
	targetPartitionSize int
}

func (s *groupTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *groupTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	// row errors surface alongside the rows which survived them
	part, err := previous.KeyRows(s.kfn)
	if part == nil {
		return nil, err
	}
	return []winnow.OperablePartition{part}, err
}

func (s *groupTask) GetKeyingOperation() winnow.KeyingOperation {
	return s.kfn
}

func (s *groupTask) GetReductionOperation() winnow.ReductionOperation {
	return nil
}

func (s *groupTask) GetTargetPartitionSize() int {
	return s.targetPartitionSize
}

// Group shuffles Rows into Partitions by key, without combining them - useful
// for grouping buckets of data together for downstream transformations
func Group(kfn winnow.KeyingOperation) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.ShuffleTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			return &winnow.DataFrameOperationResult{
				Task: &groupTask{
					kfn:                 iutil.SafeKeyingOperation(kfn),
					targetPartitionSize: -1,
				},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
