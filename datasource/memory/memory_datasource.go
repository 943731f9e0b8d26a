// Package memory provides a DataSource which reads data from in-memory
// buffers, one buffer per PartitionLoader. Useful for tests and examples.
package memory

import (
	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/datasource"
)

// DataSource is a set of buffers containing data which will be manipulated according to a DataFrame
type DataSource struct {
	data   [][]byte
	schema winnow.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(data [][]byte, parser winnow.DataSourceParser, schema winnow.Schema) winnow.DataFrame {
	source := &DataSource{data, schema}
	return datasource.CreateDataFrame(source, parser, schema)
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (ms *DataSource) Analyze() (winnow.PartitionMap, error) {
	return &PartitionMap{
		source: ms,
	}, nil
}

// DeserializeLoader creates a PartitionLoader for this DataSource from a serialized representation
func (ms *DataSource) DeserializeLoader(bytes []byte) (winnow.PartitionLoader, error) {
	pl := PartitionLoader{idx: 0, source: ms}
	err := pl.GobDecode(bytes)
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

// IsStreaming returns true iff this DataSource provides a continuous stream of data
func (ms *DataSource) IsStreaming() bool {
	return false
}
