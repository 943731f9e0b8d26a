package transform

import (
	"github.com/go-winnow/winnow"
	iutil "github.com/go-winnow/winnow/internal/util"
)

type filterTask struct {
	fn winnow.FilterOperation
}

func (s *filterTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *filterTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	// row errors surface alongside the rows which survived them
	result, err := previous.FilterRows(s.fn)
	if result == nil {
		return nil, err
	}
	return []winnow.OperablePartition{result}, err
}

// Filter filters Rows out of a Partition, creating a new one
func Filter(fn winnow.FilterOperation) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.FilterTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			return &winnow.DataFrameOperationResult{
				Task:       &filterTask{fn: iutil.SafeFilterOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
