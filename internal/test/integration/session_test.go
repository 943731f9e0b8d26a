package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/engine"
	"github.com/go-winnow/winnow/errors"
	ops "github.com/go-winnow/winnow/operations/transform"
	util "github.com/go-winnow/winnow/operations/util"
	"github.com/stretchr/testify/require"
)

func TestRunWithoutSession(t *testing.T) {
	var session *engine.Session
	frame, err := createTestCollectDataFrame(t, 5).To()
	require.Nil(t, err)
	_, err = session.Run(context.Background(), frame)
	require.IsType(t, errors.NotInitializedError{}, err)
	require.True(t, strings.Contains(err.Error(), "Session not initialized"))
}

func TestRunAfterStop(t *testing.T) {
	session := engine.CreateSession(&engine.SessionConf{})
	session.Stop()
	frame, err := createTestCollectDataFrame(t, 5).To()
	require.Nil(t, err)
	_, err = session.Run(context.Background(), frame)
	require.IsType(t, errors.NotInitializedError{}, err)
}

func TestSessionReuse(t *testing.T) {
	// a Session survives repeated runs, including a later run with more
	// stages than the first
	session := engine.CreateSession(&engine.SessionConf{NumWorkers: 2})
	defer session.Stop()

	collectFrame, err := createTestCollectDataFrame(t, 10).To(
		util.Collect(2),
	)
	require.Nil(t, err)
	res, err := session.Run(context.Background(), collectFrame)
	require.Nil(t, err)
	require.Equal(t, 10, res.NumRows())

	reduceFrame, err := createTestGroupByDataFrame(t).To(
		ops.Reduce(ops.KeyColumns("city"), func(lrow winnow.Row, rrow winnow.Row) error {
			ltemp, err := lrow.GetFloat64("temp")
			if err != nil {
				return err
			}
			rtemp, err := rrow.GetFloat64("temp")
			if err != nil {
				return err
			}
			return lrow.SetFloat64("temp", ltemp+rtemp)
		}),
		util.Collect(3),
	)
	require.Nil(t, err)
	res, err = session.Run(context.Background(), reduceFrame)
	require.Nil(t, err)
	require.Equal(t, 3, res.NumRows())
}

func TestRunWithoutAction(t *testing.T) {
	// a frame which never collects or accumulates cannot be run to completion
	frame, err := createTestCollectDataFrame(t, 5).To()
	require.Nil(t, err)
	_, err = runTestFrame(context.Background(), t, frame, &engine.SessionConf{})
	require.NotNil(t, err)
	require.True(t, strings.Contains(err.Error(), "must terminate in an action"))
}
