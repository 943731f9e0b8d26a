package integration

import (
	"context"
	"testing"

	"github.com/go-winnow/winnow"
	memory "github.com/go-winnow/winnow/datasource/memory"
	dsv "github.com/go-winnow/winnow/datasource/parser/dsv"
	"github.com/go-winnow/winnow/engine"
	ops "github.com/go-winnow/winnow/operations/transform"
	util "github.com/go-winnow/winnow/operations/util"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

func createTestFillNilDataFrame(t *testing.T) winnow.DataFrame {
	data := [][]byte{
		[]byte("name,age\nann,30\nNA,25\nbob,NA\nNA,NA"),
	}
	schema := schema.CreateSchema()
	schema.CreateColumn("name", &winnow.VarStringColumnType{})
	schema.CreateColumn("age", &winnow.Int64ColumnType{})
	parser := dsv.CreateParser(&dsv.ParserConf{
		PartitionSize: 8,
		HeaderLines:   1,
		NilValue:      "NA",
	})
	return memory.CreateDataFrame(data, parser, schema)
}

func TestFillNilNamedColumn(t *testing.T) {
	frame, err := createTestFillNilDataFrame(t).To(
		ops.FillNil(&ops.FillNilConf{Columns: []string{"age"}, Value: -1}),
		util.Collect(4),
	)
	require.Nil(t, err)

	res, err := runTestFrame(context.Background(), t, frame, &engine.SessionConf{})
	require.Nil(t, err)
	filled := 0
	nilNames := 0
	err = res.ForEachRow(func(row winnow.Row) error {
		require.False(t, row.IsNil("age"))
		age, err := row.GetInt64("age")
		if err != nil {
			return err
		}
		if age == -1 {
			filled++
		}
		if row.IsNil("name") {
			nilNames++
		}
		return nil
	})
	require.Nil(t, err)
	require.Equal(t, 2, filled)
	// columns outside the fill set are untouched
	require.Equal(t, 2, nilNames)
}

func TestFillNilMatchingTypes(t *testing.T) {
	// with no column list, the value fills every column it is compatible with
	frame, err := createTestFillNilDataFrame(t).To(
		ops.FillNil(&ops.FillNilConf{Value: "unknown"}),
		util.Collect(4),
	)
	require.Nil(t, err)

	res, err := runTestFrame(context.Background(), t, frame, &engine.SessionConf{})
	require.Nil(t, err)
	unknowns := 0
	nilAges := 0
	err = res.ForEachRow(func(row winnow.Row) error {
		require.False(t, row.IsNil("name"))
		name, err := row.GetVarString("name")
		if err != nil {
			return err
		}
		if name == "unknown" {
			unknowns++
		}
		if row.IsNil("age") {
			nilAges++
		}
		return nil
	})
	require.Nil(t, err)
	require.Equal(t, 2, unknowns)
	// a string cannot fill an integer column, so those nils remain
	require.Equal(t, 2, nilAges)
}

func TestFillNilIncompatibleColumn(t *testing.T) {
	// naming an incompatible column explicitly is an error
	_, err := createTestFillNilDataFrame(t).To(
		ops.FillNil(&ops.FillNilConf{Columns: []string{"age"}, Value: "unknown"}),
		util.Collect(4),
	)
	require.NotNil(t, err)
}

func TestFillNilRequiresValue(t *testing.T) {
	_, err := createTestFillNilDataFrame(t).To(
		ops.FillNil(&ops.FillNilConf{Columns: []string{"age"}}),
		util.Collect(4),
	)
	require.NotNil(t, err)
}
