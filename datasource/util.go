package datasource

import (
	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/internal/dataframe"
	"github.com/go-winnow/winnow/internal/partition"
)

// CreateDataFrame produces a fresh DataFrame (useful for the implementation of DataSources)
func CreateDataFrame(source winnow.DataSource, parser winnow.DataSourceParser, schema winnow.Schema) winnow.DataFrame {
	return dataframe.CreateDataFrame(source, parser, schema)
}

// CreateBuildablePartition produces a fresh BuildablePartition (useful for the implementation of DataSourceParsers)
func CreateBuildablePartition(maxRows int, widestInitialSchema winnow.Schema, currentSchema winnow.Schema) winnow.BuildablePartition {
	return partition.CreateBuildablePartition(maxRows, widestInitialSchema, currentSchema)
}

// CreateTempRow produces an empty Row, for reuse while iterating over Partitions
func CreateTempRow() winnow.Row {
	return partition.CreateTempRow()
}
