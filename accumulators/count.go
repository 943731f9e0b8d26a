package accumulators

import (
	"encoding/binary"
	"fmt"

	"github.com/go-winnow/winnow"
)

// Counter returns a new Count Accumulator
func Counter() winnow.Accumulator {
	return new(Count)
}

// Count counts records
type Count struct {
	count uint64
}

// GetCount returns the row count from this Accumulator
func (a *Count) GetCount() uint64 {
	return a.count
}

// Accumulate adds a row to this Accumulator
func (a *Count) Accumulate(row winnow.Row) error {
	a.count++
	return nil
}

// Merge merges another Accumulator into this one
func (a *Count) Merge(o winnow.Accumulator) error {
	ca, ok := o.(*Count)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Count Accumulator")
	}
	a.count += ca.count
	return nil
}

// ToBytes serializes this Accumulator
func (a *Count) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, a.count)
	return buff, nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *Count) FromBytes(buff []byte) (winnow.Accumulator, error) {
	return &Count{count: binary.LittleEndian.Uint64(buff)}, nil
}

// NilCounter returns a factory for NilCount Accumulators over the given column
func NilCounter(colName string) winnow.AccumulatorFactory {
	return func() winnow.Accumulator {
		return &NilCount{colName: colName}
	}
}

// NilCount counts records with a nil value in a column
type NilCount struct {
	colName string
	count   uint64
}

// GetCount returns the nil count from this Accumulator
func (a *NilCount) GetCount() uint64 {
	return a.count
}

// Accumulate adds a row to this Accumulator
func (a *NilCount) Accumulate(row winnow.Row) error {
	if row.IsNil(a.colName) {
		a.count++
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *NilCount) Merge(o winnow.Accumulator) error {
	ca, ok := o.(*NilCount)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a NilCount Accumulator")
	}
	a.count += ca.count
	return nil
}

// ToBytes serializes this Accumulator
func (a *NilCount) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, a.count)
	return buff, nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *NilCount) FromBytes(buff []byte) (winnow.Accumulator, error) {
	return &NilCount{colName: a.colName, count: binary.LittleEndian.Uint64(buff)}, nil
}
