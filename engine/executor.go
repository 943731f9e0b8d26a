package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/errors"
	"github.com/go-winnow/winnow/internal/pindex/hashmap"
	itypes "github.com/go-winnow/winnow/internal/types"
	iutil "github.com/go-winnow/winnow/internal/util"
	"github.com/go-winnow/winnow/logging"
)

// executor runs a single Plan against a Session, stage by stage
type executor struct {
	session *Session
	plan    itypes.Plan
}

// run executes every Stage of the Plan in order, returning the Result
// produced by the Plan's terminal action
func (ex *executor) run(ctx context.Context) (*Result, error) {
	if ex.plan.Size() == 0 {
		return nil, fmt.Errorf("Plan has no stages")
	}
	last := ex.plan.GetStage(ex.plan.Size() - 1)
	if !last.EndsInCollect() && !last.EndsInAccumulate() {
		return nil, fmt.Errorf("DataFrame must terminate in an action (Collect or Accumulate)")
	}
	ex.session.statsTracker.Start(ex.plan.Size())
	defer ex.session.statsTracker.Finish()
	startStage, incoming, err := ex.startingPoint()
	if err != nil {
		return nil, err
	}
	for i := startStage; i < ex.plan.Size(); i++ {
		stage := ex.plan.GetStage(i)
		sctx, err := ex.initStageContext(ctx, i, incoming)
		if err != nil {
			return nil, err
		}
		if err = stage.InitializeTasks(sctx); err != nil {
			return nil, err
		}
		ex.session.statsTracker.StartStage()
		result, next, err := ex.runStage(sctx, i, stage)
		ex.session.statsTracker.EndStage(i)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
		incoming = next
	}
	return nil, fmt.Errorf("DataFrame must terminate in an action (Collect or Accumulate)")
}

// startingPoint locates the latest Cache boundary in the Plan for which this
// Session retains Partitions, returning the index of the Stage to resume from
// and its incoming Partitions. When no boundary is cached, execution starts
// from the DataSource.
func (ex *executor) startingPoint() (int, winnow.PartitionIterator, error) {
	for i := ex.plan.Size() - 1; i >= 0; i-- {
		stage := ex.plan.GetStage(i)
		if stage.EndsInCache() && ex.session.hasBoundary(stage.CacheBoundaryID()) {
			parts, err := ex.session.replayBoundary(stage.CacheBoundaryID())
			if err != nil {
				return 0, nil, err
			}
			return i + 1, createPartitionSliceIterator(parts), nil
		}
	}
	pm, err := ex.plan.Source().Analyze()
	if err != nil {
		return 0, nil, err
	}
	loaders := make([]winnow.PartitionLoader, 0)
	for pm.HasNext() {
		loaders = append(loaders, pm.Next())
	}
	it := createPartitionLoaderIterator(loaders, ex.plan.Parser(), ex.plan.GetStage(0).WidestInitialSchema())
	return 0, it, nil
}

// initStageContext populates a StageContext with state for the given Stage
func (ex *executor) initStageContext(ctx context.Context, sidx int, incoming winnow.PartitionIterator) (winnow.StageContext, error) {
	stage := ex.plan.GetStage(sidx)
	sctx := createStageContext(ctx)
	// leave room for the widest upcoming schema (the current stage's, if this is the last stage)
	nextStage := stage
	if sidx+1 < ex.plan.Size() {
		nextStage = ex.plan.GetStage(sidx + 1)
	}
	if err := sctx.SetNextStageWidestInitialSchema(nextStage.WidestInitialSchema()); err != nil {
		return nil, err
	}
	if err := sctx.SetIncomingPartitionIterator(incoming); err != nil {
		return nil, err
	}
	if err := sctx.SetTargetPartitionSize(ex.targetPartitionSize(stage)); err != nil {
		return nil, err
	}
	if stage.KeyingOperation() != nil {
		if err := sctx.SetKeyingOperation(stage.KeyingOperation()); err != nil {
			return nil, err
		}
	}
	if stage.ReductionOperation() != nil {
		if err := sctx.SetReductionOperation(stage.ReductionOperation()); err != nil {
			return nil, err
		}
	}
	return sctx, nil
}

func (ex *executor) targetPartitionSize(stage itypes.Stage) int {
	if stage.TargetPartitionSize() > 0 {
		return stage.TargetPartitionSize()
	}
	return ex.session.conf.TargetPartitionSize
}

// runStage executes a single Stage across the worker pool. It returns a
// Result if the Stage terminates the Plan with an action, or otherwise the
// incoming PartitionIterator for the next Stage.
func (ex *executor) runStage(sctx winnow.StageContext, sidx int, stage itypes.Stage) (*Result, winnow.PartitionIterator, error) {
	var pindex itypes.PartitionIndex
	var collectionLimit int64
	if stage.EndsInShuffle() {
		// the index allocates partitions wide enough for the next stage's schema
		pindex = hashmap.CreateMapPartitionIndex(ex.targetPartitionSize(stage), sctx.NextStageWidestInitialSchema(), stage.OutgoingSchema())
	} else if stage.EndsInCollect() {
		collectionLimit = stage.GetCollectionLimit()
	}

	var lock sync.Mutex
	var collected []winnow.CollectedPartition
	var cacheable []winnow.OperablePartition
	var accumulators []winnow.Accumulator

	incoming := sctx.IncomingPartitionIterator()
	g, gctx := errgroup.WithContext(sctx)
	for w := 0; w < ex.session.conf.NumWorkers; w++ {
		g.Go(func() error {
			var acc winnow.Accumulator
			if stage.EndsInAccumulate() {
				acc = stage.AccumulatorFactory()()
				lock.Lock()
				accumulators = append(accumulators, acc)
				lock.Unlock()
			}
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				part, unlockPartition, err := incoming.NextPartition()
				if _, ok := err.(errors.NoMorePartitionsError); ok {
					if unlockPartition != nil {
						unlockPartition()
					}
					return nil
				} else if err != nil {
					if unlockPartition != nil {
						unlockPartition()
					}
					return err
				}
				res, err := stage.WorkerExecute(sctx, part.(winnow.OperablePartition))
				if merr, ok := err.(*multierror.Error); ok && ex.session.conf.IgnoreRowErrors {
					// log row transformation errors and carry on with the
					// rows which survived them
					merr.ErrorFormat = iutil.FormatMultiError
					logging.Log(logging.ErrorLevel, ex.session.ID(), "Row errors in stage %d:\n%s", stage.ID(), merr.Error())
					err = nil
				}
				if err == nil {
					for _, opart := range res {
						if err = ex.handleOutgoing(stage, opart, pindex, acc, collectionLimit, &lock, &collected, &cacheable); err != nil {
							break
						}
					}
				}
				if unlockPartition != nil {
					unlockPartition()
				}
				if err != nil {
					return err
				}
				ex.session.statsTracker.EndPartition(sidx, part.GetNumRows())
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	switch {
	case stage.EndsInShuffle():
		return nil, pindex.GetPartitionIterator(), nil
	case stage.EndsInAccumulate():
		if len(accumulators) == 0 {
			accumulators = append(accumulators, stage.AccumulatorFactory()())
		}
		merged := accumulators[0]
		for _, acc := range accumulators[1:] {
			if err := merged.Merge(acc); err != nil {
				return nil, nil, err
			}
		}
		return &Result{accumulator: merged}, nil, nil
	case stage.EndsInCollect():
		return &Result{collected: collected, schema: stage.OutgoingSchema()}, nil, nil
	case stage.EndsInCache():
		if err := ex.session.retainBoundary(stage.CacheBoundaryID(), cacheable, stage.OutgoingSchema()); err != nil {
			return nil, nil, err
		}
		// hand copies to the next stage, so the cached originals stay intact
		parts := make([]winnow.Partition, 0, len(cacheable))
		for _, opart := range cacheable {
			cpart, err := clonePartition(opart, stage.OutgoingSchema())
			if err != nil {
				return nil, nil, err
			}
			parts = append(parts, cpart)
		}
		return nil, createPartitionSliceIterator(parts), nil
	}
	return nil, nil, fmt.Errorf("Stage %d does not end in a boundary or an action", stage.ID())
}

// handleOutgoing routes a Partition produced by a Stage into that Stage's
// boundary: a shuffle index, an Accumulator, the collected Result, or the
// Session's Partition cache
func (ex *executor) handleOutgoing(stage itypes.Stage, opart winnow.OperablePartition, pindex itypes.PartitionIndex, acc winnow.Accumulator, collectionLimit int64, lock *sync.Mutex, collected *[]winnow.CollectedPartition, cacheable *[]winnow.OperablePartition) error {
	switch {
	case stage.EndsInShuffle():
		// align rows with the boundary schema so they fit the index's partitions
		repacked, err := opart.Repack(stage.OutgoingSchema())
		if err != nil {
			return err
		}
		return pindex.MergePartition(repacked.(itypes.ReduceablePartition), stage.KeyingOperation(), stage.ReductionOperation())
	case stage.EndsInAccumulate():
		bpart, ok := opart.(winnow.BuildablePartition)
		if !ok {
			return fmt.Errorf("Partition is not iterable")
		}
		return bpart.ForEachRow(iutil.SafeAccumulateOperation(acc))
	case stage.EndsInCollect():
		cpart, ok := opart.(winnow.CollectedPartition)
		if !ok {
			return fmt.Errorf("Partition is not collectible")
		}
		lock.Lock()
		defer lock.Unlock()
		if int64(len(*collected)) < collectionLimit {
			*collected = append(*collected, cpart)
		}
		return nil
	case stage.EndsInCache():
		repacked, err := opart.Repack(stage.OutgoingSchema())
		if err != nil {
			return err
		}
		lock.Lock()
		defer lock.Unlock()
		*cacheable = append(*cacheable, repacked)
		return nil
	}
	return fmt.Errorf("Stage %d does not end in a boundary or an action", stage.ID())
}
