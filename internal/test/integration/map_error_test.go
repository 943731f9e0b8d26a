package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/engine"
	ops "github.com/go-winnow/winnow/operations/transform"
	util "github.com/go-winnow/winnow/operations/util"
	"github.com/stretchr/testify/require"
)

func TestMapErrors(t *testing.T) {
	// create dataframe, erroring on all odd numbers
	frame, err := createTestCollectDataFrame(t, 10).To(
		ops.Map(func(row winnow.Row) error {
			col1, err := row.GetInt32("col1")
			if err != nil {
				return err
			}
			// error out for odd numbers
			if col1%2 == 1 {
				return fmt.Errorf("Odd numbers cause errors")
			}
			// leave even numbers alone
			return nil
		}),
		util.Collect(2), // 2 partitions because there are 10 rows and 5 per partition
	)
	require.Nil(t, err)

	// with row errors ignored, the even rows survive
	res, err := runTestFrame(context.Background(), t, frame, &engine.SessionConf{IgnoreRowErrors: true})
	require.Nil(t, err)
	require.Equal(t, 5, res.NumRows())
	err = res.ForEachRow(func(row winnow.Row) error {
		val, err := row.GetInt32("col1")
		require.Nil(t, err)
		require.True(t, val%2 == 0)
		return nil
	})
	require.Nil(t, err)
}

func TestMapErrorsFailFast(t *testing.T) {
	frame, err := createTestCollectDataFrame(t, 10).To(
		ops.Map(func(row winnow.Row) error {
			return fmt.Errorf("this transformation always fails")
		}),
		util.Collect(2),
	)
	require.Nil(t, err)

	// without IgnoreRowErrors, the first row error aborts the run
	_, err = runTestFrame(context.Background(), t, frame, &engine.SessionConf{})
	require.NotNil(t, err)
	require.True(t, strings.Contains(err.Error(), "always fails"))
}
