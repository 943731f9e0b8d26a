package accumulators

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-winnow/winnow"
)

// Adder returns a factory for Sum Accumulators over the given column
func Adder(colName string) winnow.AccumulatorFactory {
	return func() winnow.Accumulator {
		return &Sum{colName: colName}
	}
}

// Sum sums the values of a numeric column, skipping nil values
type Sum struct {
	colName string
	sum     float64
}

// GetSum returns the Sum from this Accumulator
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Accumulate adds a row to this Accumulator
func (a *Sum) Accumulate(row winnow.Row) error {
	if row.IsNil(a.colName) {
		return nil
	}
	v, ok, err := numericValue(row, a.colName)
	if err != nil {
		return err
	}
	if ok {
		a.sum += v
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o winnow.Accumulator) error {
	ca, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	a.sum += ca.sum
	return nil
}

// ToBytes serializes this Accumulator
func (a *Sum) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, math.Float64bits(a.sum))
	return buff, nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *Sum) FromBytes(buff []byte) (winnow.Accumulator, error) {
	return &Sum{colName: a.colName, sum: math.Float64frombits(binary.LittleEndian.Uint64(buff))}, nil
}
