package transform

import (
	"github.com/go-winnow/winnow"
	iutil "github.com/go-winnow/winnow/internal/util"
)

type mapTask struct {
	fn winnow.MapOperation
}

func (s *mapTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *mapTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	// row errors surface alongside the rows which survived them
	next, err := previous.MapRows(s.fn)
	if next == nil {
		return nil, err
	}
	return []winnow.OperablePartition{next}, err
}

// Map transforms a Row in-place
func Map(fn winnow.MapOperation) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.MapTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			return &winnow.DataFrameOperationResult{
				Task:       &mapTask{fn: iutil.SafeMapOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
