package accumulators

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"

	"github.com/go-winnow/winnow"
)

// Averager returns a factory for Moments Accumulators over the given column
func Averager(colName string) winnow.AccumulatorFactory {
	return func() winnow.Accumulator {
		return &Moments{colName: colName}
	}
}

// Moments accumulates the count, sum and sum of squares of a numeric column,
// skipping nil values, from which the mean and sample standard deviation are
// derived
type Moments struct {
	colName string
	n       uint64
	sum     float64
	sumSq   float64
}

// GetCount returns the number of accumulated values
func (a *Moments) GetCount() uint64 {
	return a.n
}

// GetMean returns the mean of the accumulated values, or NaN if no values were accumulated
func (a *Moments) GetMean() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.sum / float64(a.n)
}

// GetStdDev returns the sample standard deviation of the accumulated values,
// or NaN if fewer than two values were accumulated
func (a *Moments) GetStdDev() float64 {
	if a.n < 2 {
		return math.NaN()
	}
	n := float64(a.n)
	variance := (a.sumSq - a.sum*a.sum/n) / (n - 1)
	if variance < 0 {
		// guard against rounding pushing a tiny variance negative
		variance = 0
	}
	return math.Sqrt(variance)
}

// Accumulate adds a row to this Accumulator
func (a *Moments) Accumulate(row winnow.Row) error {
	if row.IsNil(a.colName) {
		return nil
	}
	v, ok, err := numericValue(row, a.colName)
	if err != nil {
		return err
	}
	if ok {
		a.n++
		a.sum += v
		a.sumSq += v * v
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Moments) Merge(o winnow.Accumulator) error {
	ca, ok := o.(*Moments)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Moments Accumulator")
	}
	a.n += ca.n
	a.sum += ca.sum
	a.sumSq += ca.sumSq
	return nil
}

type dMoments struct {
	N          uint64
	Sum, SumSq float64
}

// ToBytes serializes this Accumulator
func (a *Moments) ToBytes() ([]byte, error) {
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	if err := e.Encode(dMoments{N: a.n, Sum: a.sum, SumSq: a.sumSq}); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *Moments) FromBytes(buff []byte) (winnow.Accumulator, error) {
	var deser dMoments
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	if err := d.Decode(&deser); err != nil {
		return nil, err
	}
	return &Moments{colName: a.colName, n: deser.N, sum: deser.Sum, sumSq: deser.SumSq}, nil
}
