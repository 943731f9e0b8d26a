package util

import (
	"github.com/go-winnow/winnow"
)

type accumulateTask struct {
	facc winnow.AccumulatorFactory
}

func (s *accumulateTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *accumulateTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	return []winnow.OperablePartition{previous}, nil
}

func (s *accumulateTask) GetAccumulatorFactory() winnow.AccumulatorFactory {
	return s.facc
}

// Accumulate combines Rows across workers, using a user-provided data structure.
// This also signals the end of a DataFrame's tasks.
func Accumulate(facc winnow.AccumulatorFactory) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.AccumulateTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			return &winnow.DataFrameOperationResult{
				Task: &accumulateTask{
					facc: facc,
				},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
