package dataframe

import (
	"log"

	"github.com/go-winnow/winnow"
	"github.com/hashicorp/go-multierror"
)

// stageImpl is a group of tasks which share a common schema.
// Stages block the execution of further stages until they
// are complete.
type stageImpl struct {
	id                  int
	incomingSchema      winnow.Schema
	outgoingSchema      winnow.Schema
	frames              []*dataFrameImpl
	keyFn               winnow.KeyingOperation
	reduceFn            winnow.ReductionOperation
	accumulatorFactory  winnow.AccumulatorFactory
	targetPartitionSize int
	cacheBoundaryID     string
}

// createStage is a factory for Stages, safely assigning deterministic IDs
func createStage(id int) *stageImpl {
	return &stageImpl{
		id:                  id,
		frames:              []*dataFrameImpl{},
		targetPartitionSize: -1,
	}
}

// ID returns the ID for this Stage
func (s *stageImpl) ID() int {
	return s.id
}

// OutgoingSchema is the Schema for data leaving this Stage
func (s *stageImpl) OutgoingSchema() winnow.Schema {
	return s.outgoingSchema
}

// WidestInitialSchema returns the widest Schema which Rows in this
// Stage will reach, used to allocate Partition space up front
func (s *stageImpl) WidestInitialSchema() winnow.Schema {
	var widest winnow.Schema
	for _, f := range s.frames {
		if widest == nil || f.schema.Size() > widest.Size() || (f.schema.Size() == widest.Size() && f.schema.NumVariableLengthColumns() > widest.NumVariableLengthColumns()) {
			widest = f.schema
		}
	}
	return widest
}

// InitializeTasks runs the initialization logic for each Task in this Stage
func (s *stageImpl) InitializeTasks(sctx winnow.StageContext) error {
	for _, frame := range s.frames {
		if err := frame.task.RunInitialize(sctx); err != nil {
			return err
		}
	}
	return nil
}

// WorkerExecute runs a Stage against a Partition of data, returning
// the modified Partition (which may have been modified in-place, filtered,
// or turned into multiple Partitions)
func (s *stageImpl) WorkerExecute(sctx winnow.StageContext, part winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	var prev = []winnow.OperablePartition{part}
	var rowErrs *multierror.Error
	for _, frame := range s.frames {
		next := make([]winnow.OperablePartition, 0, len(prev))
		for _, p := range prev {
			out, err := frame.workerExecuteTask(sctx, p)
			if err != nil {
				// row transformation errors arrive as a multierror, along
				// with the rows which survived them. Anything else is fatal.
				merr, ok := err.(*multierror.Error)
				if !ok || out == nil {
					return nil, err
				}
				rowErrs = multierror.Append(rowErrs, merr.Errors...)
			}
			next = append(next, out...)
		}
		prev = next
	}
	return prev, rowErrs.ErrorOrNil()
}

// EndsInShuffle returns true iff this Stage ends with a reduction task
func (s *stageImpl) EndsInShuffle() bool {
	return len(s.frames) > 0 && s.frames[len(s.frames)-1].taskType == winnow.ShuffleTaskType
}

// EndsInAccumulate returns true iff this Stage ends with an accumulation task
func (s *stageImpl) EndsInAccumulate() bool {
	return len(s.frames) > 0 && s.frames[len(s.frames)-1].taskType == winnow.AccumulateTaskType
}

// EndsInCollect returns true iff this Stage represents a collect task
func (s *stageImpl) EndsInCollect() bool {
	return len(s.frames) > 0 && s.frames[len(s.frames)-1].taskType == winnow.CollectTaskType
}

// EndsInCache returns true iff this Stage ends by retaining computed Partitions for reuse
func (s *stageImpl) EndsInCache() bool {
	return len(s.cacheBoundaryID) > 0
}

// GetCollectionLimit returns the maximum number of Partitions to collect
func (s *stageImpl) GetCollectionLimit() int64 {
	if !s.EndsInCollect() {
		return 0
	}
	cTask, ok := s.frames[len(s.frames)-1].task.(collectionTask)
	if !ok {
		log.Panicf("taskType is collect but Task is not a collectionTask")
	}
	return cTask.GetCollectionLimit()
}

// KeyingOperation retrieves the KeyingOperation for this Stage (if it exists)
func (s *stageImpl) KeyingOperation() winnow.KeyingOperation {
	return s.keyFn
}

// ReductionOperation retrieves the ReductionOperation for this Stage (if it exists)
func (s *stageImpl) ReductionOperation() winnow.ReductionOperation {
	return s.reduceFn
}

// AccumulatorFactory retrieves the AccumulatorFactory for this Stage (if it exists)
func (s *stageImpl) AccumulatorFactory() winnow.AccumulatorFactory {
	return s.accumulatorFactory
}

// TargetPartitionSize retrieves the TargetPartitionSize for this Stage (if it exists)
func (s *stageImpl) TargetPartitionSize() int {
	return s.targetPartitionSize
}

// CacheBoundaryID returns the ID of the frame whose results should be
// cached at the end of this Stage, or the empty string
func (s *stageImpl) CacheBoundaryID() string {
	return s.cacheBoundaryID
}
