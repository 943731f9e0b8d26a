// Package stats tracks statistics about a running Winnow pipeline
package stats

import (
	"sync"
	"time"
)

// RunStatistics contains statistics about a running Winnow pipeline.
// Safe for concurrent use by worker goroutines.
type RunStatistics struct {
	lock                sync.Mutex
	finished            bool
	startTime           time.Time
	totalRuntime        time.Duration
	rowsProcessed       []int64
	partitionsProcessed []int64
	stageRuntimes       []time.Duration
	currentStageStart   time.Time
}

// Start triggers statistics tracking for a run. Counters from any previous
// run are discarded, and the per-stage slices are resized to numStages.
func (rs *RunStatistics) Start(numStages int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.finished = false
	rs.startTime = time.Now()
	rs.rowsProcessed = make([]int64, numStages)
	rs.partitionsProcessed = make([]int64, numStages)
	rs.stageRuntimes = make([]time.Duration, numStages)
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.finished = true
	rs.totalRuntime = time.Since(rs.startTime)
}

// StartStage tracks the beginning of a new Stage
func (rs *RunStatistics) StartStage() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.currentStageStart = time.Now()
}

// EndStage tracks the end of a Stage
func (rs *RunStatistics) EndStage(sidx int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.stageRuntimes[sidx] = time.Since(rs.currentStageStart)
}

// EndPartition tracks the end of the processing of a partition
func (rs *RunStatistics) EndPartition(sidx int, numRows int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.rowsProcessed[sidx] += int64(numRows)
	rs.partitionsProcessed[sidx]++
}

// GetStartTime returns the start time of the pipeline
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the pipeline
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of Rows which have been processed so far, counted by stage
func (rs *RunStatistics) GetNumRowsProcessed() []int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	result := make([]int64, len(rs.rowsProcessed))
	copy(result, rs.rowsProcessed)
	return result
}

// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far, counted by stage
func (rs *RunStatistics) GetNumPartitionsProcessed() []int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	result := make([]int64, len(rs.partitionsProcessed))
	copy(result, rs.partitionsProcessed)
	return result
}

// GetStageRuntimes returns all recorded stage runtimes, from the most recent run of each Stage
func (rs *RunStatistics) GetStageRuntimes() []time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	result := make([]time.Duration, len(rs.stageRuntimes))
	copy(result, rs.stageRuntimes)
	return result
}
