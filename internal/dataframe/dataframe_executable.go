package dataframe

import (
	"log"

	"github.com/go-winnow/winnow"
	itypes "github.com/go-winnow/winnow/internal/types"
)

// GetID returns the unique ID of this DataFrame
func (df *dataFrameImpl) GetID() string {
	return df.id
}

// GetParent returns the parent DataFrame of a DataFrame
func (df *dataFrameImpl) GetParent() winnow.DataFrame {
	if df.parent == nil {
		return nil
	}
	return df.parent
}

// Optimize splits the DataFrame chain into stages which each share a schema.
// Each stage's execution will be blocked until the completion of the previous stage
func (df *dataFrameImpl) Optimize() itypes.Plan {
	// create a slice of frames, in order of execution, by following parent links
	frames := []*dataFrameImpl{}
	for next := df; next != nil; next = next.parent {
		frames = append([]*dataFrameImpl{next}, frames...)
	}
	// split into stages by taskType
	nextID := 0
	stages := []*stageImpl{}
	endStage := func() {
		currentStage := stages[len(stages)-1]
		if len(currentStage.frames) == 0 {
			return
		}
		// set outgoing schema, repacking if the stage leaves removed columns behind
		lastFrame := currentStage.frames[len(currentStage.frames)-1]
		if lastFrame.schema.NumRemovedColumns() > 0 {
			currentStage.outgoingSchema = lastFrame.schema.Repack()
		} else {
			currentStage.outgoingSchema = lastFrame.schema
		}
	}
	newStage := func() {
		stages = append(stages, createStage(nextID))
		nextID++
		currentStage := stages[len(stages)-1]
		if len(stages) > 1 {
			currentStage.incomingSchema = stages[len(stages)-2].outgoingSchema
		}
	}
	newStage()
	for i, f := range frames {
		currentStage := stages[len(stages)-1]
		currentStage.frames = append(currentStage.frames, f)
		switch f.taskType {
		case winnow.ShuffleTaskType:
			// a shuffle ends the Stage
			endStage()
			sTask, ok := f.task.(shuffleTask)
			if !ok {
				log.Panicf("taskType is ShuffleTaskType but Task is not a shuffleTask. Task is misdefined.")
			}
			currentStage.keyFn = sTask.GetKeyingOperation()
			currentStage.reduceFn = sTask.GetReductionOperation()
			currentStage.targetPartitionSize = sTask.GetTargetPartitionSize()
			newStage()
		case winnow.CacheTaskType:
			// a cache boundary ends the Stage, so its results can be retained whole
			endStage()
			currentStage.cacheBoundaryID = f.id
			newStage()
		case winnow.AccumulateTaskType:
			endStage()
			aTask, ok := f.task.(accumulationTask)
			if !ok {
				log.Panicf("taskType is AccumulateTaskType but Task is not an accumulationTask. Task is misdefined.")
			}
			currentStage.accumulatorFactory = aTask.GetAccumulatorFactory()
			if i+1 < len(frames) {
				log.Panicf("No tasks can follow an Accumulate()")
			}
		case winnow.CollectTaskType:
			endStage()
			if i+1 < len(frames) {
				log.Panicf("No tasks can follow a Collect()")
			}
		}
	}
	// close out the last stage if it didn't end in a shuffle, accumulate or collect
	if len(stages) > 0 && stages[len(stages)-1].outgoingSchema == nil {
		endStage()
	}
	// drop a trailing empty stage left behind by an ending shuffle or cache boundary
	if len(stages) > 1 && len(stages[len(stages)-1].frames) == 0 {
		stages = stages[:len(stages)-1]
	}
	return &planImpl{stages, df.parser, df.source}
}

// AnalyzeSource returns a PartitionMap for the source data for this DataFrame
func (df *dataFrameImpl) AnalyzeSource() (winnow.PartitionMap, error) {
	return df.source.Analyze()
}

// workerExecuteTask runs this DataFrame's task against the previous Partition,
// returning the modified Partition (or a new one(s) if necessary).
func (df *dataFrameImpl) workerExecuteTask(sctx winnow.StageContext, previous winnow.OperablePartition) ([]winnow.OperablePartition, error) {
	// row errors surface alongside the surviving rows, so partial results
	// pass through with their error
	res, err := df.task.RunWorker(sctx, previous)
	if res == nil {
		return nil, err
	}
	// update current schemas
	for _, p := range res {
		p.UpdateSchema(df.schema)
	}
	return res, err
}
