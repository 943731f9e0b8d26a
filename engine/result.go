package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-winnow/winnow"
)

// Result is the materialized output of running a DataFrame. A Collect
// produces locally-held Partitions of Rows, while an Accumulate produces
// an Accumulator.
type Result struct {
	collected   []winnow.CollectedPartition
	schema      winnow.Schema
	accumulator winnow.Accumulator
}

// Accumulator returns the Accumulator produced by this Result's action, or
// nil if the action was not an Accumulate
func (r *Result) Accumulator() winnow.Accumulator {
	return r.accumulator
}

// NumPartitions returns the number of collected Partitions in this Result
func (r *Result) NumPartitions() int {
	return len(r.collected)
}

// NumRows returns the total number of collected Rows in this Result
func (r *Result) NumRows() int {
	total := 0
	for _, part := range r.collected {
		total += part.GetNumRows()
	}
	return total
}

// ForEachRow iterates over all collected Rows, erroring immediately if fn errors
func (r *Result) ForEachRow(fn winnow.MapOperation) error {
	for _, part := range r.collected {
		if err := part.ForEachRow(fn); err != nil {
			return err
		}
	}
	return nil
}

// Show renders up to numRows collected Rows to w as an aligned table
func (r *Result) Show(w io.Writer, numRows int) error {
	if r.schema == nil {
		return fmt.Errorf("Result contains no collected Rows")
	}
	names := r.schema.ColumnNames()
	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = len(name)
	}
	cells := make([][]string, 0, numRows)
	err := r.ForEachRow(func(row winnow.Row) error {
		if len(cells) >= numRows {
			return nil
		}
		rendered := make([]string, len(names))
		for i, name := range names {
			rendered[i] = renderCell(row, name)
			if len(rendered[i]) > widths[i] {
				widths[i] = len(rendered[i])
			}
		}
		cells = append(cells, rendered)
		return nil
	})
	if err != nil {
		return err
	}
	border := tableBorder(widths)
	if _, err = fmt.Fprintln(w, border); err != nil {
		return err
	}
	if err = writeTableRow(w, names, widths); err != nil {
		return err
	}
	if _, err = fmt.Fprintln(w, border); err != nil {
		return err
	}
	for _, rendered := range cells {
		if err = writeTableRow(w, rendered, widths); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, border)
	return err
}

func renderCell(row winnow.Row, name string) string {
	if row.IsNil(name) {
		return "<nil>"
	}
	v, err := row.Get(name)
	if err != nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}

func tableBorder(widths []int) string {
	var b strings.Builder
	for _, width := range widths {
		b.WriteString("+")
		b.WriteString(strings.Repeat("-", width))
	}
	b.WriteString("+")
	return b.String()
}

func writeTableRow(w io.Writer, cells []string, widths []int) error {
	var b strings.Builder
	for i, cell := range cells {
		b.WriteString("|")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
	}
	b.WriteString("|")
	_, err := fmt.Fprintln(w, b.String())
	return err
}
