package accumulators

import (
	"math"
	"testing"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/internal/partition"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	score *float64
	label *string
}

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

func createTestRows(t *testing.T, records []testRecord) []winnow.Row {
	schema := schema.CreateSchema()
	schema.CreateColumn("score", &winnow.Float64ColumnType{})
	schema.CreateColumn("label", &winnow.VarStringColumnType{})
	part := partition.CreateBuildablePartition(len(records), schema, schema)
	tempRow := partition.CreateTempRow()
	rows := make([]winnow.Row, len(records))
	for i, rec := range records {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		if rec.score != nil {
			require.Nil(t, row.SetFloat64("score", *rec.score))
		} else {
			require.Nil(t, row.SetNil("score"))
		}
		if rec.label != nil {
			require.Nil(t, row.SetVarString("label", *rec.label))
		} else {
			require.Nil(t, row.SetNil("label"))
		}
		rows[i] = part.GetRow(i)
	}
	return rows
}

func accumulateAll(t *testing.T, acc winnow.Accumulator, rows []winnow.Row) {
	for _, row := range rows {
		require.Nil(t, acc.Accumulate(row))
	}
}

func TestCount(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(1), str("a")},
		{nil, str("b")},
		{num(3), nil},
	})
	acc := Counter()
	accumulateAll(t, acc, rows)
	require.EqualValues(t, 3, acc.(*Count).GetCount())

	other := Counter()
	accumulateAll(t, other, rows)
	require.Nil(t, acc.Merge(other))
	require.EqualValues(t, 6, acc.(*Count).GetCount())
}

func TestNilCount(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(1), str("a")},
		{nil, str("b")},
		{nil, nil},
	})
	acc := NilCounter("score")()
	accumulateAll(t, acc, rows)
	require.EqualValues(t, 2, acc.(*NilCount).GetCount())

	labelAcc := NilCounter("label")()
	accumulateAll(t, labelAcc, rows)
	require.EqualValues(t, 1, labelAcc.(*NilCount).GetCount())
}

func TestAdderSkipsNils(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(1.5), nil},
		{nil, nil},
		{num(2.5), nil},
	})
	acc := Adder("score")()
	accumulateAll(t, acc, rows)
	require.EqualValues(t, 4.0, acc.(*Sum).GetSum())
}

func TestMinMax(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(5), nil},
		{num(-2), nil},
		{nil, nil},
		{num(11), nil},
	})
	min := Minimum("score")()
	max := Maximum("score")()
	accumulateAll(t, min, rows)
	accumulateAll(t, max, rows)
	require.EqualValues(t, -2, min.(*Min).GetMin())
	require.EqualValues(t, 11, max.(*Max).GetMax())

	// an accumulator which saw no values reports NaN
	empty := Minimum("score")()
	require.True(t, math.IsNaN(empty.(*Min).GetMin()))

	// merging an empty accumulator changes nothing
	require.Nil(t, min.Merge(Minimum("score")()))
	require.EqualValues(t, -2, min.(*Min).GetMin())

	// merging into an empty accumulator adopts the other's extremum
	adopted := Maximum("score")()
	require.Nil(t, adopted.Merge(max))
	require.EqualValues(t, 11, adopted.(*Max).GetMax())
}

func TestMoments(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(2), nil},
		{num(4), nil},
		{nil, nil},
		{num(6), nil},
	})
	acc := Averager("score")()
	accumulateAll(t, acc, rows)
	moments := acc.(*Moments)
	require.EqualValues(t, 3, moments.GetCount())
	require.InDelta(t, 4.0, moments.GetMean(), 0.000001)
	require.InDelta(t, 2.0, moments.GetStdDev(), 0.000001)

	empty := Averager("score")().(*Moments)
	require.True(t, math.IsNaN(empty.GetMean()))
	require.True(t, math.IsNaN(empty.GetStdDev()))

	// sample standard deviation requires at least two values
	single := Averager("score")()
	require.Nil(t, single.Accumulate(rows[0]))
	require.True(t, math.IsNaN(single.(*Moments).GetStdDev()))
}

func TestMomentsSerialization(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(2), nil},
		{num(8), nil},
	})
	acc := Averager("score")()
	accumulateAll(t, acc, rows)
	buff, err := acc.ToBytes()
	require.Nil(t, err)
	deser, err := Averager("score")().FromBytes(buff)
	require.Nil(t, err)
	require.InDelta(t, 5.0, deser.(*Moments).GetMean(), 0.000001)
	require.EqualValues(t, 2, deser.(*Moments).GetCount())
}

func TestDescribe(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(1), nil},
		{num(3), nil},
		{nil, nil},
		{num(5), nil},
	})
	acc := Describe("score")()
	accumulateAll(t, acc, rows)
	summary := acc.(*Summary)

	count, err := summary.GetCount("score")
	require.Nil(t, err)
	require.EqualValues(t, 3, count)
	nils, err := summary.GetNilCount("score")
	require.Nil(t, err)
	require.EqualValues(t, 1, nils)
	mean, err := summary.GetMean("score")
	require.Nil(t, err)
	require.InDelta(t, 3.0, mean, 0.000001)
	stdDev, err := summary.GetStdDev("score")
	require.Nil(t, err)
	require.InDelta(t, 2.0, stdDev, 0.000001)
	min, err := summary.GetMin("score")
	require.Nil(t, err)
	require.EqualValues(t, 1, min)
	max, err := summary.GetMax("score")
	require.Nil(t, err)
	require.EqualValues(t, 5, max)

	_, err = summary.GetMean("missing")
	require.NotNil(t, err)
}

func TestCrossTab(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(1), str("red")},
		{num(1), str("blue")},
		{num(2), str("red")},
		{num(1), nil},
		{nil, str("red")},
	})
	acc := CrossTab("label", "score")()
	accumulateAll(t, acc, rows)
	freq := acc.(*Frequencies)

	require.EqualValues(t, 1, freq.GetCount("red", "1"))
	require.EqualValues(t, 1, freq.GetCount("red", "2"))
	require.EqualValues(t, 1, freq.GetCount("blue", "1"))
	require.EqualValues(t, 1, freq.GetCount(NilLabel, "1"))
	require.EqualValues(t, 1, freq.GetCount("red", NilLabel))
	require.EqualValues(t, 0, freq.GetCount("blue", "2"))

	// labels come back sorted, with nils tabulated under NilLabel
	require.Equal(t, []string{"blue", NilLabel, "red"}, freq.RowLabels())
	require.Equal(t, []string{"1", "2", NilLabel}, freq.FrequencyLabels())
}

func TestCrossTabMerge(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(1), str("red")},
		{num(2), str("blue")},
	})
	acc := CrossTab("label", "score")()
	accumulateAll(t, acc, rows)
	other := CrossTab("label", "score")()
	accumulateAll(t, other, rows)
	require.Nil(t, acc.Merge(other))
	freq := acc.(*Frequencies)
	require.EqualValues(t, 2, freq.GetCount("red", "1"))
	require.EqualValues(t, 2, freq.GetCount("blue", "2"))

	buff, err := acc.ToBytes()
	require.Nil(t, err)
	deser, err := CrossTab("label", "score")().FromBytes(buff)
	require.Nil(t, err)
	require.EqualValues(t, 2, deser.(*Frequencies).GetCount("red", "1"))
}

func TestComposed(t *testing.T) {
	rows := createTestRows(t, []testRecord{
		{num(2), nil},
		{num(4), nil},
		{nil, nil},
	})
	acc := Compose(Counter, Adder("score"))()
	accumulateAll(t, acc, rows)
	composed := acc.(*Composed)
	require.EqualValues(t, 3, composed.GetResults()[0].(*Count).GetCount())
	require.EqualValues(t, 6, composed.GetResults()[1].(*Sum).GetSum())
}
