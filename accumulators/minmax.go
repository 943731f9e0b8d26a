package accumulators

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"

	"github.com/go-winnow/winnow"
)

// Minimum returns a factory for Min Accumulators over the given column
func Minimum(colName string) winnow.AccumulatorFactory {
	return func() winnow.Accumulator {
		return &Min{colName: colName}
	}
}

// Min tracks the smallest value of a numeric column, skipping nil values
type Min struct {
	colName string
	min     float64
	seen    bool
}

// GetMin returns the smallest accumulated value, or NaN if no values were accumulated
func (a *Min) GetMin() float64 {
	if !a.seen {
		return math.NaN()
	}
	return a.min
}

// Accumulate adds a row to this Accumulator
func (a *Min) Accumulate(row winnow.Row) error {
	if row.IsNil(a.colName) {
		return nil
	}
	v, ok, err := numericValue(row, a.colName)
	if err != nil {
		return err
	}
	if ok && (!a.seen || v < a.min) {
		a.min = v
		a.seen = true
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Min) Merge(o winnow.Accumulator) error {
	ca, ok := o.(*Min)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Min Accumulator")
	}
	if ca.seen && (!a.seen || ca.min < a.min) {
		a.min = ca.min
		a.seen = true
	}
	return nil
}

// ToBytes serializes this Accumulator
func (a *Min) ToBytes() ([]byte, error) {
	return extremumToBytes(a.min, a.seen)
}

// FromBytes produce a new Accumulator from serialized data
func (a *Min) FromBytes(buff []byte) (winnow.Accumulator, error) {
	val, seen, err := extremumFromBytes(buff)
	if err != nil {
		return nil, err
	}
	return &Min{colName: a.colName, min: val, seen: seen}, nil
}

// Maximum returns a factory for Max Accumulators over the given column
func Maximum(colName string) winnow.AccumulatorFactory {
	return func() winnow.Accumulator {
		return &Max{colName: colName}
	}
}

// Max tracks the largest value of a numeric column, skipping nil values
type Max struct {
	colName string
	max     float64
	seen    bool
}

// GetMax returns the largest accumulated value, or NaN if no values were accumulated
func (a *Max) GetMax() float64 {
	if !a.seen {
		return math.NaN()
	}
	return a.max
}

// Accumulate adds a row to this Accumulator
func (a *Max) Accumulate(row winnow.Row) error {
	if row.IsNil(a.colName) {
		return nil
	}
	v, ok, err := numericValue(row, a.colName)
	if err != nil {
		return err
	}
	if ok && (!a.seen || v > a.max) {
		a.max = v
		a.seen = true
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Max) Merge(o winnow.Accumulator) error {
	ca, ok := o.(*Max)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Max Accumulator")
	}
	if ca.seen && (!a.seen || ca.max > a.max) {
		a.max = ca.max
		a.seen = true
	}
	return nil
}

// ToBytes serializes this Accumulator
func (a *Max) ToBytes() ([]byte, error) {
	return extremumToBytes(a.max, a.seen)
}

// FromBytes produce a new Accumulator from serialized data
func (a *Max) FromBytes(buff []byte) (winnow.Accumulator, error) {
	val, seen, err := extremumFromBytes(buff)
	if err != nil {
		return nil, err
	}
	return &Max{colName: a.colName, max: val, seen: seen}, nil
}

type dExtremum struct {
	Val  float64
	Seen bool
}

func extremumToBytes(val float64, seen bool) ([]byte, error) {
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	if err := e.Encode(dExtremum{Val: val, Seen: seen}); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

func extremumFromBytes(buff []byte) (float64, bool, error) {
	var deser dExtremum
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	if err := d.Decode(&deser); err != nil {
		return 0, false, err
	}
	return deser.Val, deser.Seen, nil
}
