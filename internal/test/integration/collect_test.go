package integration

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/go-winnow/winnow"
	memory "github.com/go-winnow/winnow/datasource/memory"
	jsonl "github.com/go-winnow/winnow/datasource/parser/jsonl"
	"github.com/go-winnow/winnow/engine"
	util "github.com/go-winnow/winnow/operations/util"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

func createTestCollectDataFrame(t *testing.T, numRows int) winnow.DataFrame {
	data := make([][]byte, numRows)
	for i := 0; i < len(data); i++ {
		data[i] = []byte(fmt.Sprintf("{\"col1\": %d}", i))
	}

	// Create a dataframe for the data
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &winnow.Int32ColumnType{})
	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})
	dataframe := memory.CreateDataFrame(data, parser, schema)
	return dataframe
}

func TestCollect(t *testing.T) {
	// create dataframe
	numRows := 20
	frame, err := createTestCollectDataFrame(t, numRows).To(
		util.Collect(10),
	)
	require.Nil(t, err)

	// run dataframe and verify results
	res, err := runTestFrame(context.Background(), t, frame, &engine.SessionConf{})
	require.Nil(t, err)
	require.NotNil(t, res)
	require.Equal(t, numRows, res.NumRows())
	seen := make(map[int32]bool)
	err = res.ForEachRow(func(row winnow.Row) error {
		val, err := row.GetInt32("col1")
		if err != nil {
			return err
		}
		seen[val] = true
		return nil
	})
	require.Nil(t, err)
	require.Equal(t, numRows, len(seen))
}

func TestCollectLimit(t *testing.T) {
	// collecting fewer partitions than the source produces truncates the result
	frame, err := createTestCollectDataFrame(t, 20).To(
		util.Collect(2),
	)
	require.Nil(t, err)

	res, err := runTestFrame(context.Background(), t, frame, &engine.SessionConf{})
	require.Nil(t, err)
	require.Equal(t, 2, res.NumPartitions())
	require.Equal(t, 10, res.NumRows())
}

func TestShow(t *testing.T) {
	data := [][]byte{
		[]byte("{\"name\": \"Sean\", \"age\": 30}\n{\"name\": \"Chris\", \"age\": null}"),
	}
	schema := schema.CreateSchema()
	schema.CreateColumn("name", &winnow.VarStringColumnType{})
	schema.CreateColumn("age", &winnow.Int32ColumnType{})
	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})
	frame, err := memory.CreateDataFrame(data, parser, schema).To(
		util.Collect(1),
	)
	require.Nil(t, err)

	res, err := runTestFrame(context.Background(), t, frame, &engine.SessionConf{})
	require.Nil(t, err)

	var buff bytes.Buffer
	require.Nil(t, res.Show(&buff, 10))
	rendered := buff.String()
	require.True(t, strings.Contains(rendered, "name"))
	require.True(t, strings.Contains(rendered, "age"))
	require.True(t, strings.Contains(rendered, "Sean"))
	require.True(t, strings.Contains(rendered, "<nil>"))
}
