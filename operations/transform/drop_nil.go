package transform

import (
	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/errors"
	iutil "github.com/go-winnow/winnow/internal/util"
)

// DropNilHow selects which Rows DropNil discards, based on how many of the
// considered column values are nil
type DropNilHow int

const (
	// DropNilAny discards a Row if any considered column value is nil
	DropNilAny DropNilHow = iota
	// DropNilAll discards a Row only if every considered column value is nil
	DropNilAll
)

// DropNilConf configures a DropNil operation
type DropNilConf struct {
	Subset    []string   // the columns considered when counting nil values. Defaults to all columns.
	How       DropNilHow // whether a Row is discarded when any considered value is nil, or only when all are. Defaults to DropNilAny.
	MinNonNil int        // if positive, Rows are retained iff at least this many considered values are not nil, and How is ignored
}

// DropNil discards Rows containing nil column values, according to conf.
// A nil conf discards Rows with a nil value in any column.
func DropNil(conf *DropNilConf) *winnow.DataFrameOperation {
	if conf == nil {
		conf = &DropNilConf{}
	}
	return &winnow.DataFrameOperation{
		TaskType: winnow.FilterTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			subset := conf.Subset
			if len(subset) == 0 {
				subset = d.GetSchema().ColumnNames()
			} else {
				for _, name := range subset {
					if !d.GetSchema().HasColumn(name) {
						return nil, errors.MissingColumnError{Name: name}
					}
				}
			}
			fn := dropNilFilter(conf, subset)
			return &winnow.DataFrameOperationResult{
				Task:       &filterTask{fn: iutil.SafeFilterOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}

func dropNilFilter(conf *DropNilConf, subset []string) winnow.FilterOperation {
	return func(row winnow.Row) (bool, error) {
		nonNil := 0
		for _, name := range subset {
			if !row.IsNil(name) {
				nonNil++
			}
		}
		if conf.MinNonNil > 0 {
			return nonNil >= conf.MinNonNil, nil
		}
		if conf.How == DropNilAll {
			return nonNil > 0, nil
		}
		return nonNil == len(subset), nil
	}
}
