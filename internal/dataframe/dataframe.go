// Package dataframe implements DataFrame chains and their optimization
// into staged execution Plans.
package dataframe

import (
	"log"

	"github.com/go-winnow/winnow"
	uuid "github.com/gofrs/uuid"
)

// A dataFrameImpl implements DataFrame internally for Winnow
type dataFrameImpl struct {
	id       string
	parent   *dataFrameImpl           // the parent DataFrame. Nil if this is the root.
	task     winnow.Task              // the task represented by this DataFrame, executed to produce the next one
	taskType winnow.TaskType          // a unique name for the type of task this DataFrame represents
	source   winnow.DataSource        // the source of the data
	parser   winnow.DataSourceParser  // the parser for the source data
	schema   winnow.Schema            // the schema of the data at this task
}

// CreateDataFrame is a factory for DataFrames. This function is not intended to be used directly,
// as DataFrames are returned by DataSource packages.
func CreateDataFrame(source winnow.DataSource, parser winnow.DataSourceParser, schema winnow.Schema) winnow.DataFrame {
	return &dataFrameImpl{
		id:       newFrameID(),
		parent:   nil,
		task:     &noOpTask{},
		taskType: winnow.ExtractTaskType,
		source:   source,
		parser:   parser,
		schema:   schema,
	}
}

func newFrameID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for DataFrame: %v", err)
	}
	return id.String()
}

// GetSchema returns the Schema of a DataFrame
func (df *dataFrameImpl) GetSchema() winnow.Schema {
	return df.schema
}

// GetDataSource returns the DataSource of a DataFrame
func (df *dataFrameImpl) GetDataSource() winnow.DataSource {
	return df.source
}

// GetParser returns the DataSourceParser of a DataFrame
func (df *dataFrameImpl) GetParser() winnow.DataSourceParser {
	return df.parser
}

// To is a "functional operations" factory method for DataFrames,
// chaining operations onto the current one(s).
func (df *dataFrameImpl) To(ops ...*winnow.DataFrameOperation) (winnow.DataFrame, error) {
	next := df
	// See https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis for details of approach
	for _, op := range ops {
		result, err := op.Do(next)
		if err != nil {
			return nil, err
		}
		next = &dataFrameImpl{
			id:       newFrameID(),
			parent:   next,
			source:   df.source,
			task:     result.Task,
			taskType: op.TaskType,
			parser:   df.parser,
			schema:   result.DataSchema,
		}
	}
	return next, nil
}
