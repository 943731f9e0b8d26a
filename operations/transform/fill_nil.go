package transform

import (
	"fmt"
	"time"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/errors"
	iutil "github.com/go-winnow/winnow/internal/util"
)

// FillNilConf configures a FillNil operation
type FillNilConf struct {
	Columns []string    // the columns whose nil values are replaced. Defaults to every column whose type can represent Value.
	Value   interface{} // the replacement value. Column types must be able to represent it - string values fill string columns, numeric values fill numeric columns, and so on.
}

// FillNil replaces nil column values with a constant, leaving other values
// untouched. When no columns are named, every column whose type can
// represent the constant is filled. When columns are named explicitly, each
// must be able to represent the constant.
func FillNil(conf *FillNilConf) *winnow.DataFrameOperation {
	return &winnow.DataFrameOperation{
		TaskType: winnow.MapTaskType,
		Do: func(d winnow.DataFrame) (*winnow.DataFrameOperationResult, error) {
			if conf == nil || conf.Value == nil {
				return nil, fmt.Errorf("FillNil requires a non-nil Value")
			}
			schema := d.GetSchema()
			names := conf.Columns
			explicit := len(names) > 0
			if !explicit {
				names = schema.ColumnNames()
			}
			fillers := make(map[string]fillFn)
			for _, name := range names {
				col, err := schema.GetOffset(name)
				if err != nil {
					return nil, err
				}
				filler := fillerFor(col.Type(), conf.Value)
				if filler == nil {
					if explicit {
						return nil, errors.IncompatibleTypeError{Name: name, ColType: col.Type(), Value: conf.Value}
					}
					continue
				}
				fillers[name] = filler
			}
			fn := fillNilMap(fillers)
			return &winnow.DataFrameOperationResult{
				Task:       &mapTask{fn: iutil.SafeMapOperation(fn)},
				DataSchema: schema.Clone(),
			}, nil
		},
	}
}

type fillFn func(row winnow.Row, name string) error

func fillNilMap(fillers map[string]fillFn) winnow.MapOperation {
	return func(row winnow.Row) error {
		for name, fill := range fillers {
			if !row.IsNil(name) {
				continue
			}
			if err := fill(row, name); err != nil {
				return err
			}
		}
		return nil
	}
}

// fillerFor returns a function which stores value in a column of the given
// type, or nil if the type cannot represent the value
func fillerFor(colType winnow.ColumnType, value interface{}) fillFn {
	switch tval := value.(type) {
	case bool:
		if _, ok := colType.(*winnow.BoolColumnType); ok {
			return func(row winnow.Row, name string) error { return row.SetBool(name, tval) }
		}
	case string:
		switch ct := colType.(type) {
		case *winnow.StringColumnType:
			if len(tval) <= ct.Size() {
				return func(row winnow.Row, name string) error { return row.SetString(name, tval) }
			}
		case *winnow.VarStringColumnType:
			return func(row winnow.Row, name string) error { return row.SetVarString(name, tval) }
		}
	case time.Time:
		if _, ok := colType.(*winnow.TimeColumnType); ok {
			return func(row winnow.Row, name string) error { return row.SetTime(name, tval) }
		}
	case int:
		return numericFiller(colType, float64(tval))
	case int32:
		return numericFiller(colType, float64(tval))
	case int64:
		return numericFiller(colType, float64(tval))
	case float32:
		return numericFiller(colType, float64(tval))
	case float64:
		return numericFiller(colType, tval)
	}
	return nil
}

func numericFiller(colType winnow.ColumnType, val float64) fillFn {
	switch colType.(type) {
	case *winnow.Uint8ColumnType:
		return func(row winnow.Row, name string) error { return row.SetUint8(name, uint8(val)) }
	case *winnow.Uint16ColumnType:
		return func(row winnow.Row, name string) error { return row.SetUint16(name, uint16(val)) }
	case *winnow.Uint32ColumnType:
		return func(row winnow.Row, name string) error { return row.SetUint32(name, uint32(val)) }
	case *winnow.Uint64ColumnType:
		return func(row winnow.Row, name string) error { return row.SetUint64(name, uint64(val)) }
	case *winnow.Int8ColumnType:
		return func(row winnow.Row, name string) error { return row.SetInt8(name, int8(val)) }
	case *winnow.Int16ColumnType:
		return func(row winnow.Row, name string) error { return row.SetInt16(name, int16(val)) }
	case *winnow.Int32ColumnType:
		return func(row winnow.Row, name string) error { return row.SetInt32(name, int32(val)) }
	case *winnow.Int64ColumnType:
		return func(row winnow.Row, name string) error { return row.SetInt64(name, int64(val)) }
	case *winnow.Float32ColumnType:
		return func(row winnow.Row, name string) error { return row.SetFloat32(name, float32(val)) }
	case *winnow.Float64ColumnType:
		return func(row winnow.Row, name string) error { return row.SetFloat64(name, val) }
	}
	return nil
}
