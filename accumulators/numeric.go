package accumulators

import (
	"github.com/go-winnow/winnow"
)

// numericValue reads a column value as a float64, if the column has a
// numeric type. ok is false when it does not.
func numericValue(row winnow.Row, colName string) (val float64, ok bool, err error) {
	offset, err := row.Schema().GetOffset(colName)
	if err != nil {
		return 0, false, err
	}
	switch offset.Type().(type) {
	case *winnow.Int8ColumnType:
		v, err := row.GetInt8(colName)
		return float64(v), true, err
	case *winnow.Int16ColumnType:
		v, err := row.GetInt16(colName)
		return float64(v), true, err
	case *winnow.Int32ColumnType:
		v, err := row.GetInt32(colName)
		return float64(v), true, err
	case *winnow.Int64ColumnType:
		v, err := row.GetInt64(colName)
		return float64(v), true, err
	case *winnow.Uint8ColumnType:
		v, err := row.GetUint8(colName)
		return float64(v), true, err
	case *winnow.Uint16ColumnType:
		v, err := row.GetUint16(colName)
		return float64(v), true, err
	case *winnow.Uint32ColumnType:
		v, err := row.GetUint32(colName)
		return float64(v), true, err
	case *winnow.Uint64ColumnType:
		v, err := row.GetUint64(colName)
		return float64(v), true, err
	case *winnow.Float32ColumnType:
		v, err := row.GetFloat32(colName)
		return float64(v), true, err
	case *winnow.Float64ColumnType:
		v, err := row.GetFloat64(colName)
		return v, true, err
	}
	return 0, false, nil
}
