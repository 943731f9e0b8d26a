package accumulators

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"strings"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/errors"
)

// Describe returns a factory for Summary Accumulators over the given
// columns, producing a per-column count, nil count, mean, sample standard
// deviation, minimum and maximum
func Describe(colNames ...string) winnow.AccumulatorFactory {
	return func() winnow.Accumulator {
		stats := make(map[string]*colSummary, len(colNames))
		for _, name := range colNames {
			stats[name] = &colSummary{}
		}
		return &Summary{colNames: colNames, stats: stats}
	}
}

type colSummary struct {
	Count, Nils uint64
	Sum, SumSq  float64
	Min, Max    float64
	Seen        bool
}

func (cs *colSummary) mean() float64 {
	if cs.Count == 0 {
		return math.NaN()
	}
	return cs.Sum / float64(cs.Count)
}

func (cs *colSummary) stdDev() float64 {
	if cs.Count < 2 {
		return math.NaN()
	}
	n := float64(cs.Count)
	variance := (cs.SumSq - cs.Sum*cs.Sum/n) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

func (cs *colSummary) extremum(max bool) float64 {
	if !cs.Seen {
		return math.NaN()
	}
	if max {
		return cs.Max
	}
	return cs.Min
}

// Summary summarizes the values of a set of numeric columns
type Summary struct {
	colNames []string
	stats    map[string]*colSummary
}

// GetCount returns the number of non-nil values accumulated for a column
func (a *Summary) GetCount(colName string) (uint64, error) {
	cs, err := a.col(colName)
	if err != nil {
		return 0, err
	}
	return cs.Count, nil
}

// GetNilCount returns the number of nil values accumulated for a column
func (a *Summary) GetNilCount(colName string) (uint64, error) {
	cs, err := a.col(colName)
	if err != nil {
		return 0, err
	}
	return cs.Nils, nil
}

// GetMean returns the mean of a column's accumulated values, or NaN if none were accumulated
func (a *Summary) GetMean(colName string) (float64, error) {
	cs, err := a.col(colName)
	if err != nil {
		return 0, err
	}
	return cs.mean(), nil
}

// GetStdDev returns the sample standard deviation of a column's accumulated
// values, or NaN if fewer than two were accumulated
func (a *Summary) GetStdDev(colName string) (float64, error) {
	cs, err := a.col(colName)
	if err != nil {
		return 0, err
	}
	return cs.stdDev(), nil
}

// GetMin returns the smallest accumulated value for a column, or NaN if none were accumulated
func (a *Summary) GetMin(colName string) (float64, error) {
	cs, err := a.col(colName)
	if err != nil {
		return 0, err
	}
	return cs.extremum(false), nil
}

// GetMax returns the largest accumulated value for a column, or NaN if none were accumulated
func (a *Summary) GetMax(colName string) (float64, error) {
	cs, err := a.col(colName)
	if err != nil {
		return 0, err
	}
	return cs.extremum(true), nil
}

func (a *Summary) col(colName string) (*colSummary, error) {
	cs, ok := a.stats[colName]
	if !ok {
		return nil, errors.MissingColumnError{Name: colName}
	}
	return cs, nil
}

// Accumulate adds a row to this Accumulator
func (a *Summary) Accumulate(row winnow.Row) error {
	for _, name := range a.colNames {
		cs := a.stats[name]
		if row.IsNil(name) {
			cs.Nils++
			continue
		}
		v, ok, err := numericValue(row, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		cs.Count++
		cs.Sum += v
		cs.SumSq += v * v
		if !cs.Seen || v < cs.Min {
			cs.Min = v
		}
		if !cs.Seen || v > cs.Max {
			cs.Max = v
		}
		cs.Seen = true
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Summary) Merge(o winnow.Accumulator) error {
	ca, ok := o.(*Summary)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Summary Accumulator")
	}
	for _, name := range a.colNames {
		cs, ocs := a.stats[name], ca.stats[name]
		if ocs == nil {
			return errors.MissingColumnError{Name: name}
		}
		cs.Count += ocs.Count
		cs.Nils += ocs.Nils
		cs.Sum += ocs.Sum
		cs.SumSq += ocs.SumSq
		if ocs.Seen && (!cs.Seen || ocs.Min < cs.Min) {
			cs.Min = ocs.Min
		}
		if ocs.Seen && (!cs.Seen || ocs.Max > cs.Max) {
			cs.Max = ocs.Max
		}
		cs.Seen = cs.Seen || ocs.Seen
	}
	return nil
}

// ToString renders this summary as an aligned table, one row per column
func (a *Summary) ToString() string {
	var b strings.Builder
	header := []string{"column", "count", "nils", "mean", "stddev", "min", "max"}
	rows := make([][]string, 0, len(a.colNames))
	for _, name := range a.colNames {
		cs := a.stats[name]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", cs.Count),
			fmt.Sprintf("%d", cs.Nils),
			fmt.Sprintf("%g", cs.mean()),
			fmt.Sprintf("%g", cs.stdDev()),
			fmt.Sprintf("%g", cs.extremum(false)),
			fmt.Sprintf("%g", cs.extremum(true)),
		})
	}
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	writeRow := func(cells []string) {
		for i, cell := range cells {
			b.WriteString("|")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		b.WriteString("|\n")
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

type dSummary struct {
	ColNames []string
	Stats    map[string]*colSummary
}

// ToBytes serializes this Accumulator
func (a *Summary) ToBytes() ([]byte, error) {
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	if err := e.Encode(dSummary{ColNames: a.colNames, Stats: a.stats}); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *Summary) FromBytes(buff []byte) (winnow.Accumulator, error) {
	var deser dSummary
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	if err := d.Decode(&deser); err != nil {
		return nil, err
	}
	return &Summary{colNames: deser.ColNames, stats: deser.Stats}, nil
}
