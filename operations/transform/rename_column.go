package transform

import "github.com/go-winnow/winnow"

// renameColumnTask is a task that does nothing
type renameColumnTask struct{}

// RunInitialize for renameColumnTask does nothing
func (s *renameColumnTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

// RunWorker for renameColumnTask does nothing
func (s *renameColumnTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	return []winnow.OperablePartition{previous}, nil
}

// RenameColumn renames an existing column
func RenameColumn(oldName string, newName string) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.NoOpTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().RenameColumn(oldName, newName)
			if err != nil {
				return nil, err
			}
			return &winnow.DataFrameOperationResult{
				Task:       &renameColumnTask{},
				DataSchema: newSchema,
			}, nil
		},
	}
}
