package integration

import (
	"context"
	"testing"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/engine"
)

// runs a test dataframe on a local Session
func runTestFrame(ctx context.Context, t *testing.T, frame winnow.DataFrame, conf *engine.SessionConf) (*engine.Result, error) {
	if conf.NumWorkers == 0 {
		conf.NumWorkers = 2
	}
	session := engine.CreateSession(conf)
	defer session.Stop()
	return session.Run(ctx, frame)
}
