package winnow

import (
	"fmt"
	"time"
)

// ByteColumnType is a column type which stores a single byte
type ByteColumnType struct{}

// Size in bytes of a ByteColumn
func (b *ByteColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a ByteColumnType value
func (b *ByteColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%x", v.(byte))
}

// BytesColumnType is a column type which stores a fixed-length byte array
type BytesColumnType struct {
	Length int
}

// Size in bytes of a BytesColumn
func (b *BytesColumnType) Size() int {
	return b.Length
}

// ToString produces a string representation of a BytesColumnType value
func (b *BytesColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%x", v.([]byte))
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Size in bytes of a BoolColumn
func (b *BoolColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Uint8ColumnType is a column type which stores a uint8 value
type Uint8ColumnType struct{}

// Size in bytes of a Uint8Column
func (b *Uint8ColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a Uint8ColumnType value
func (b *Uint8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint8))
}

// Uint16ColumnType is a column type which stores a uint16 value
type Uint16ColumnType struct{}

// Size in bytes of a Uint16Column
func (b *Uint16ColumnType) Size() int {
	return 2
}

// ToString produces a string representation of a Uint16ColumnType value
func (b *Uint16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint16))
}

// Uint32ColumnType is a column type which stores a uint32 value
type Uint32ColumnType struct{}

// Size in bytes of a Uint32Column
func (b *Uint32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a Uint32ColumnType value
func (b *Uint32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint32))
}

// Uint64ColumnType is a column type which stores a uint64 value
type Uint64ColumnType struct{}

// Size in bytes of a Uint64Column
func (b *Uint64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a Uint64ColumnType value
func (b *Uint64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint64))
}

// Int8ColumnType is a column type which stores an int8 value
type Int8ColumnType struct{}

// Size in bytes of an Int8Column
func (b *Int8ColumnType) Size() int {
	return 1
}

// ToString produces a string representation of an Int8ColumnType value
func (b *Int8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int8))
}

// Int16ColumnType is a column type which stores an int16 value
type Int16ColumnType struct{}

// Size in bytes of an Int16Column
func (b *Int16ColumnType) Size() int {
	return 2
}

// ToString produces a string representation of an Int16ColumnType value
func (b *Int16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int16))
}

// Int32ColumnType is a column type which stores an int32 value
type Int32ColumnType struct{}

// Size in bytes of an Int32Column
func (b *Int32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of an Int32ColumnType value
func (b *Int32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int32))
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Size in bytes of an Int64Column
func (b *Int64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Float32ColumnType is a column type which stores a float32 value
type Float32ColumnType struct{}

// Size in bytes of a Float32Column
func (b *Float32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a Float32ColumnType value
func (b *Float32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float32))
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Size in bytes of a Float64Column
func (b *Float64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float64))
}

// TimeColumnType is a column type which stores a time.Time value.
// Format is used when parsing string data into this column.
type TimeColumnType struct {
	Format string
}

// Size in bytes of a TimeColumn
func (b *TimeColumnType) Size() int {
	return 15 // size of a time.Time marshalled to binary
}

// ToString produces a string representation of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	if len(b.Format) > 0 {
		return v.(time.Time).Format(b.Format)
	}
	return v.(time.Time).String()
}

// StringColumnType is a column type which stores a fixed-length string value
type StringColumnType struct {
	Length int
}

// Size in bytes of the fixed-length StringColumn
func (b *StringColumnType) Size() int {
	return b.Length
}

// ToString produces a string representation of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}
