package integration

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/go-winnow/winnow"
	memory "github.com/go-winnow/winnow/datasource/memory"
	jsonl "github.com/go-winnow/winnow/datasource/parser/jsonl"
	"github.com/go-winnow/winnow/engine"
	ops "github.com/go-winnow/winnow/operations/transform"
	util "github.com/go-winnow/winnow/operations/util"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestCacheReuse(t *testing.T) {
	defer goleak.VerifyNone(t)
	numRows := 20
	data := make([][]byte, numRows)
	for i := 0; i < len(data); i++ {
		data[i] = []byte(fmt.Sprintf("{\"col1\": %d}", i))
	}
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &winnow.Int32ColumnType{})
	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})

	// count how many times rows pass through the pre-cache transform
	var visits int32
	cached, err := memory.CreateDataFrame(data, parser, schema).To(
		ops.Map(func(row winnow.Row) error {
			atomic.AddInt32(&visits, 1)
			return nil
		}),
		util.Cache(),
	)
	require.Nil(t, err)
	frame, err := cached.To(util.Collect(10))
	require.Nil(t, err)

	session := engine.CreateSession(&engine.SessionConf{NumWorkers: 2})
	defer session.Stop()

	// the first run populates the cache
	res, err := session.Run(context.Background(), frame)
	require.Nil(t, err)
	require.Equal(t, numRows, res.NumRows())
	require.EqualValues(t, numRows, atomic.LoadInt32(&visits))

	// the second run replays retained partitions instead of re-reading the source
	res, err = session.Run(context.Background(), frame)
	require.Nil(t, err)
	require.Equal(t, numRows, res.NumRows())
	require.EqualValues(t, numRows, atomic.LoadInt32(&visits))

	// after uncaching, the source is read again
	require.Nil(t, session.Uncache(cached))
	res, err = session.Run(context.Background(), frame)
	require.Nil(t, err)
	require.Equal(t, numRows, res.NumRows())
	require.EqualValues(t, 2*numRows, atomic.LoadInt32(&visits))
}

func TestCachedPartitionsSurviveDownstreamMutation(t *testing.T) {
	data := [][]byte{
		[]byte("{\"col1\": 1}\n{\"col1\": 2}\n{\"col1\": 3}"),
	}
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &winnow.Int32ColumnType{})
	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})
	cached, err := memory.CreateDataFrame(data, parser, schema).To(
		util.Cache(),
	)
	require.Nil(t, err)
	mutated, err := cached.To(
		ops.Map(func(row winnow.Row) error {
			return row.SetInt32("col1", 0)
		}),
		util.Collect(4),
	)
	require.Nil(t, err)
	pristine, err := cached.To(util.Collect(4))
	require.Nil(t, err)

	session := engine.CreateSession(&engine.SessionConf{NumWorkers: 2})
	defer session.Stop()

	res, err := session.Run(context.Background(), mutated)
	require.Nil(t, err)
	require.Equal(t, 3, res.NumRows())

	// the mutation above must not bleed into the retained partitions
	res, err = session.Run(context.Background(), pristine)
	require.Nil(t, err)
	sum := int32(0)
	err = res.ForEachRow(func(row winnow.Row) error {
		val, err := row.GetInt32("col1")
		if err != nil {
			return err
		}
		sum += val
		return nil
	})
	require.Nil(t, err)
	require.EqualValues(t, 6, sum)
}
