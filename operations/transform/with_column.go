package transform

import "github.com/go-winnow/winnow"

// withColumnTask is a task that does nothing
type withColumnTask struct{}

// RunInitialize for withColumnTask does nothing
func (s *withColumnTask) RunInitialize(sctx winnow.StageContext) error {
	return nil
}

// RunWorker for withColumnTask does nothing
func (s *withColumnTask) RunWorker(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	return []winnow.OperablePartition{previous}, nil
}

// WithColumn declares that a new (empty) column with a
// specific type and name should be available to the
// next Task of the DataFrame pipeline
func WithColumn(colName string, colType winnow.ColumnType) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.WithColumnTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().CreateColumn(colName, colType)
			if err != nil {
				return nil, err
			}
			return &winnow.DataFrameOperationResult{
				Task:       &withColumnTask{},
				DataSchema: newSchema,
			}, nil
		},
	}
}
