package transform

import (
	"github.com/go-winnow/winnow"
	iutil "github.com/go-winnow/winnow/internal/util"
)

type flatMapTask struct {
	fn winnow.FlatMapOperation
}

func (s *flatMapTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *flatMapTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	// row errors surface alongside the rows which survived them
	results, err := previous.FlatMapRows(s.fn)
	if results == nil {
		return nil, err
	}
	return results, err
}

// FlatMap transforms a Row, potentially producing new rows
func FlatMap(fn winnow.FlatMapOperation) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.FlatMapTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			return &winnow.DataFrameOperationResult{
				Task:       &flatMapTask{fn: iutil.SafeFlatMapOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
