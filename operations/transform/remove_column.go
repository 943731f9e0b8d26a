package transform

import "github.com/go-winnow/winnow"

// removeColumnTask is a task that does nothing
type removeColumnTask struct{}

// RunInitialize for removeColumnTask does nothing
func (s *removeColumnTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

// RunWorker for removeColumnTask does nothing
func (s *removeColumnTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	return []winnow.OperablePartition{previous}, nil
}

// RemoveColumn removes existing columns
func RemoveColumn(oldNames ...string) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.RemoveColumnTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			newSchema := d.GetSchema().Clone()
			for _, oldName := range oldNames {
				newSchema, _ = newSchema.RemoveColumn(oldName)
			}
			return &winnow.DataFrameOperationResult{
				Task:       &removeColumnTask{},
				DataSchema: newSchema,
			}, nil
		},
	}
}
