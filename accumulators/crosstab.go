package accumulators

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
	"strings"

	"github.com/go-winnow/winnow"
)

// NilLabel is the label under which nil column values are tabulated
const NilLabel = "null"

// CrossTab returns a factory for CrossTab Accumulators over the given pair
// of columns, tabulating the number of Rows observed for each combination of
// their values. Nil values tabulate under NilLabel.
func CrossTab(rowCol string, frequencyCol string) winnow.AccumulatorFactory {
	return func() winnow.Accumulator {
		return &Frequencies{
			rowCol:       rowCol,
			frequencyCol: frequencyCol,
			counts:       map[string]map[string]uint64{},
		}
	}
}

// Frequencies tabulates the co-occurrence counts of the values of two columns
type Frequencies struct {
	rowCol       string
	frequencyCol string
	counts       map[string]map[string]uint64
}

// GetCount returns the number of Rows observed with the given pair of labels
func (a *Frequencies) GetCount(rowLabel string, frequencyLabel string) uint64 {
	freqs, ok := a.counts[rowLabel]
	if !ok {
		return 0
	}
	return freqs[frequencyLabel]
}

// RowLabels returns all observed labels for the first column, sorted
func (a *Frequencies) RowLabels() []string {
	labels := make([]string, 0, len(a.counts))
	for label := range a.counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// FrequencyLabels returns all observed labels for the second column, sorted
func (a *Frequencies) FrequencyLabels() []string {
	seen := map[string]bool{}
	for _, freqs := range a.counts {
		for label := range freqs {
			seen[label] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Accumulate adds a row to this Accumulator
func (a *Frequencies) Accumulate(row winnow.Row) error {
	rowLabel, err := label(row, a.rowCol)
	if err != nil {
		return err
	}
	frequencyLabel, err := label(row, a.frequencyCol)
	if err != nil {
		return err
	}
	freqs, ok := a.counts[rowLabel]
	if !ok {
		freqs = map[string]uint64{}
		a.counts[rowLabel] = freqs
	}
	freqs[frequencyLabel]++
	return nil
}

func label(row winnow.Row, colName string) (string, error) {
	if row.IsNil(colName) {
		return NilLabel, nil
	}
	val, err := row.Get(colName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", val), nil
}

// Merge merges another Accumulator into this one
func (a *Frequencies) Merge(o winnow.Accumulator) error {
	ca, ok := o.(*Frequencies)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Frequencies Accumulator")
	}
	for rowLabel, freqs := range ca.counts {
		target, ok := a.counts[rowLabel]
		if !ok {
			target = map[string]uint64{}
			a.counts[rowLabel] = target
		}
		for frequencyLabel, count := range freqs {
			target[frequencyLabel] += count
		}
	}
	return nil
}

// ToString renders this cross-tabulation as an aligned table, with the
// labels of both columns in sorted order
func (a *Frequencies) ToString() string {
	rowLabels := a.RowLabels()
	frequencyLabels := a.FrequencyLabels()
	header := make([]string, 0, len(frequencyLabels)+1)
	header = append(header, fmt.Sprintf("%s\\%s", a.rowCol, a.frequencyCol))
	header = append(header, frequencyLabels...)
	rows := make([][]string, 0, len(rowLabels))
	for _, rowLabel := range rowLabels {
		row := make([]string, 0, len(frequencyLabels)+1)
		row = append(row, rowLabel)
		for _, frequencyLabel := range frequencyLabels {
			row = append(row, fmt.Sprintf("%d", a.GetCount(rowLabel, frequencyLabel)))
		}
		rows = append(rows, row)
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
	var b strings.Builder
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

type dFrequencies struct {
	RowCol       string
	FrequencyCol string
	Counts       map[string]map[string]uint64
}

// ToBytes serializes this Accumulator
func (a *Frequencies) ToBytes() ([]byte, error) {
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	if err := e.Encode(dFrequencies{RowCol: a.rowCol, FrequencyCol: a.frequencyCol, Counts: a.counts}); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *Frequencies) FromBytes(buff []byte) (winnow.Accumulator, error) {
	var deser dFrequencies
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	if err := d.Decode(&deser); err != nil {
		return nil, err
	}
	return &Frequencies{rowCol: deser.RowCol, frequencyCol: deser.FrequencyCol, counts: deser.Counts}, nil
}
