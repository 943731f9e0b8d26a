package jsonl

import (
	"fmt"
	"time"

	"github.com/go-winnow/winnow"
	"github.com/tidwall/gjson"
)

// ParseJSONRow parses a single line of JSON into a Row, according to a
// schema. Column names are treated as gjson paths, and missing or null
// values produce nil column values.
func ParseJSONRow(names []string, colTypes []winnow.ColumnType, data gjson.Result, row winnow.Row) error {
	for i, name := range names {
		val := data.Get(name)
		if !val.Exists() || val.Type == gjson.Null {
			row.SetNil(name)
			continue
		}
		if err := parseJSONValue(val, name, colTypes[i], row); err != nil {
			return err
		}
	}
	return nil
}

func parseJSONValue(val gjson.Result, colName string, colType winnow.ColumnType, row winnow.Row) error {
	switch colType.(type) {
	case *winnow.BoolColumnType:
		if val.Type != gjson.True && val.Type != gjson.False {
			return fmt.Errorf("Column %s was not a boolean. Was: %#v", colName, val.Value())
		}
		return row.SetBool(colName, val.Bool())
	case *winnow.Int8ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetInt8(colName, int8(val.Int()))
	case *winnow.Int16ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetInt16(colName, int16(val.Int()))
	case *winnow.Int32ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetInt32(colName, int32(val.Int()))
	case *winnow.Int64ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetInt64(colName, val.Int())
	case *winnow.Uint8ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetUint8(colName, uint8(val.Uint()))
	case *winnow.Uint16ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetUint16(colName, uint16(val.Uint()))
	case *winnow.Uint32ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetUint32(colName, uint32(val.Uint()))
	case *winnow.Uint64ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetUint64(colName, val.Uint())
	case *winnow.Float32ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetFloat32(colName, float32(val.Float()))
	case *winnow.Float64ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %#v", colName, val.Value())
		}
		return row.SetFloat64(colName, val.Float())
	case *winnow.StringColumnType:
		if val.Type != gjson.String {
			return fmt.Errorf("Column %s was not a string. Was: %#v", colName, val.Value())
		}
		return row.SetString(colName, val.String())
	case *winnow.TimeColumnType:
		format := colType.(*winnow.TimeColumnType).Format
		tval, err := time.Parse(format, val.String())
		if err != nil {
			return fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %#v", colName, format, val.Value())
		}
		return row.SetTime(colName, tval)
	case *winnow.VarStringColumnType:
		if val.Type != gjson.String {
			return fmt.Errorf("Column %s was not a string. Was: %#v", colName, val.Value())
		}
		return row.SetVarString(colName, val.String())
	case *winnow.VarBytesColumnType:
		if val.Type != gjson.String {
			return fmt.Errorf("Column %s was not a string. Was: %#v", colName, val.Value())
		}
		return row.SetVarBytes(colName, []byte(val.String()))
	default:
		return fmt.Errorf("JSONL parsing does not support column type %T", colType)
	}
}
