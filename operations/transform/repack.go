package transform

import "github.com/go-winnow/winnow"

type repackTask struct {
	newSchema winnow.Schema
}

func (s *repackTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

func (s *repackTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	part, err := previous.Repack(s.newSchema)
	if err != nil {
		return nil, err
	}
	return []winnow.OperablePartition{part}, nil
}

// Repack rearranges memory layout of rows to respect a new schema
func Repack() *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.RepackTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			newSchema := d.GetSchema().Repack()
			return &winnow.DataFrameOperationResult{
				Task:       &repackTask{newSchema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
