package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/go-winnow/winnow"
	memory "github.com/go-winnow/winnow/datasource/memory"
	jsonl "github.com/go-winnow/winnow/datasource/parser/jsonl"
	"github.com/go-winnow/winnow/engine"
	ops "github.com/go-winnow/winnow/operations/transform"
	util "github.com/go-winnow/winnow/operations/util"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

func createTestFlatMapDataFrame(t *testing.T, numRows int) winnow.DataFrame {
	row := []byte("{\"col1\": \"abc\"}")
	data := make([][]byte, numRows)
	for i := 0; i < len(data); i++ {
		data[i] = row
	}

	// Create a dataframe for the data
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &winnow.StringColumnType{Length: 3})
	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})
	dataframe := memory.CreateDataFrame(data, parser, schema)
	return dataframe
}

func TestFlatMap(t *testing.T) {
	// create dataframe
	numRows := 10
	frame, err := createTestFlatMapDataFrame(t, numRows).To(
		ops.WithColumn("res", &winnow.StringColumnType{Length: 1}),
		ops.FlatMap(func(row winnow.Row, factory winnow.RowFactory) error {
			col1, err := row.GetString("col1")
			if err != nil {
				return err
			}
			for _, c := range col1 {
				r := factory()
				err = r.SetString("res", strings.ToUpper(string(c)))
				if err != nil {
					return err
				}
			}
			return nil
		}),
		ops.RemoveColumn("col1"),
		util.Collect(6),
	)
	require.Nil(t, err)

	// run dataframe and verify results
	res, err := runTestFrame(context.Background(), t, frame, &engine.SessionConf{})
	require.Nil(t, err)
	require.Equal(t, 3*numRows, res.NumRows())
	err = res.ForEachRow(func(row winnow.Row) error {
		val, err := row.GetString("res")
		require.Nil(t, err)
		require.True(t, val == "A" || val == "B" || val == "C")
		return nil
	})
	require.Nil(t, err)
}
