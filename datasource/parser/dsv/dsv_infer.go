package dsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/schema"
)

// InferConf configures schema inference for DSV data
type InferConf struct {
	SampleSize  int    // The maximum number of records examined while inferring column types. Defaults to 100.
	HeaderLines int    // The number of non-data lines at the beginning of the file. If positive, the first line supplies column names. Defaults to 0.
	Delimiter   rune   // The delimiter separating columns in the file. Defaults to ,
	Comment     rune   // Lines beginning with the comment character are ignored. Defaults to no comment character.
	NilValue    string // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
	TimeFormat  string // The format candidate values must match to infer a time column. Defaults to "2006-01-02".
}

// candidate column types, from narrowest to widest
const (
	candidateBool = iota
	candidateInt
	candidateFloat
	candidateTime
	numCandidates
)

// colCandidates tracks which candidate types remain viable for a column,
// given the values sampled so far
type colCandidates struct {
	viable  [numCandidates]bool
	sampled bool
}

// InferSchema examines a sample of DSV records and produces a Schema for the
// data, inferring a column type for each column from its non-nil sampled
// values. A column is inferred as the narrowest candidate type which can
// represent every sampled value. Columns which defy a narrower
// interpretation are inferred as variable-length strings, as are columns
// whose sampled values are all nil. Column names are taken from the header
// line if the data has one, and are otherwise generated.
func InferSchema(r io.Reader, conf *InferConf) (winnow.Schema, error) {
	if conf == nil {
		conf = &InferConf{}
	}
	if conf.SampleSize == 0 {
		conf.SampleSize = 100
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	if len(conf.TimeFormat) == 0 {
		conf.TimeFormat = "2006-01-02"
	}
	reader := csv.NewReader(r)
	reader.Comma = conf.Delimiter
	reader.Comment = conf.Comment
	reader.ReuseRecord = true

	var names []string
	for i := 0; i < conf.HeaderLines; i++ {
		record, err := reader.Read()
		if err != nil {
			return nil, err
		}
		if i == 0 {
			names = make([]string, len(record))
			copy(names, record)
		}
	}

	var cols []colCandidates
	for i := 0; i < conf.SampleSize; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if cols == nil {
			cols = make([]colCandidates, len(record))
			for c := range cols {
				for t := range cols[c].viable {
					cols[c].viable[t] = true
				}
			}
		} else if len(record) != len(cols) {
			return nil, fmt.Errorf("Record %d contains %d columns instead of %d", i, len(record), len(cols))
		}
		for c, colVal := range record {
			if len(colVal) == 0 || colVal == conf.NilValue {
				continue
			}
			cols[c].sampled = true
			for t := range cols[c].viable {
				if cols[c].viable[t] && !fits(t, colVal, conf.TimeFormat) {
					cols[c].viable[t] = false
				}
			}
		}
	}
	if cols == nil {
		return nil, fmt.Errorf("No records to infer a Schema from")
	}
	if names == nil {
		names = make([]string, len(cols))
		for c := range names {
			names[c] = fmt.Sprintf("col%d", c)
		}
	} else if len(names) != len(cols) {
		return nil, fmt.Errorf("Header contains %d columns but records contain %d", len(names), len(cols))
	}

	result := schema.CreateSchema()
	for c, name := range names {
		var err error
		result, err = result.CreateColumn(name, inferredType(cols[c], conf.TimeFormat))
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// inferredType returns the narrowest candidate type still viable for a column
func inferredType(col colCandidates, timeFormat string) winnow.ColumnType {
	if !col.sampled {
		return &winnow.VarStringColumnType{}
	}
	switch {
	case col.viable[candidateBool]:
		return &winnow.BoolColumnType{}
	case col.viable[candidateInt]:
		return &winnow.Int64ColumnType{}
	case col.viable[candidateFloat]:
		return &winnow.Float64ColumnType{}
	case col.viable[candidateTime]:
		return &winnow.TimeColumnType{Format: timeFormat}
	}
	return &winnow.VarStringColumnType{}
}

func fits(candidate int, colVal string, timeFormat string) bool {
	switch candidate {
	case candidateBool:
		_, err := strconv.ParseBool(colVal)
		return err == nil
	case candidateInt:
		_, err := strconv.ParseInt(colVal, 10, 64)
		return err == nil
	case candidateFloat:
		_, err := strconv.ParseFloat(colVal, 64)
		return err == nil
	case candidateTime:
		_, err := time.Parse(timeFormat, colVal)
		return err == nil
	}
	return false
}
