// Package engine executes DataFrames locally, across a bounded pool of worker
// goroutines. A Session plans a DataFrame into Stages, runs each Stage to
// completion over all Partitions of the underlying DataSource, and returns
// materialized results. Sessions also retain Partitions computed at Cache
// boundaries, so that repeated actions against derived DataFrames can skip
// recomputing their shared prefix.
package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	uuid "github.com/gofrs/uuid"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/errors"
	"github.com/go-winnow/winnow/internal/partition"
	"github.com/go-winnow/winnow/internal/pcache"
	"github.com/go-winnow/winnow/internal/stats"
	itypes "github.com/go-winnow/winnow/internal/types"
)

// SessionConf configures a Session
type SessionConf struct {
	NumWorkers              int     // the number of goroutines which execute Partitions in parallel (default: runtime.NumCPU())
	IgnoreRowErrors         bool    // iff true, log row transformation errors instead of crashing immediately
	TargetPartitionSize     int     // the default maximum number of Rows per Partition produced by shuffles (default: 1024)
	TempFilePath            string  // the directory where cached Partitions may be spilled to disk (default: os.TempDir())
	CachePartitions         int     // the maximum number of Partitions retained in memory per Cache boundary (default: 32)
	CacheCompressedFraction float32 // the fraction of retained Partitions which are stored compressed (default: 0.25)
}

// cachedBoundary tracks the Partitions retained for a single Cache boundary
type cachedBoundary struct {
	cache  winnow.PartitionCache
	keys   []string
	schema winnow.Schema
}

// Session is the entry point for executing DataFrames
type Session struct {
	id           string
	conf         *SessionConf
	lock         sync.Mutex
	initialized  bool
	cached       map[string]*cachedBoundary
	statsTracker *stats.RunStatistics
}

// CreateSession initializes a new Session for executing DataFrames
func CreateSession(conf *SessionConf) *Session {
	if conf == nil {
		conf = &SessionConf{}
	}
	if conf.NumWorkers <= 0 {
		conf.NumWorkers = runtime.NumCPU()
	}
	if conf.TargetPartitionSize <= 0 {
		conf.TargetPartitionSize = 1024
	}
	if len(conf.TempFilePath) == 0 {
		conf.TempFilePath = os.TempDir()
	}
	if conf.CachePartitions <= 0 {
		conf.CachePartitions = 32
	} else if conf.CachePartitions < 5 {
		// the tiered cache needs room for its compressed region
		conf.CachePartitions = 5
	}
	if conf.CacheCompressedFraction <= 0 {
		conf.CacheCompressedFraction = 0.25
	}
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}
	return &Session{
		id:           id.String(),
		conf:         conf,
		initialized:  true,
		cached:       map[string]*cachedBoundary{},
		statsTracker: &stats.RunStatistics{},
	}
}

// ID returns the unique identifier of this Session
func (s *Session) ID() string {
	return s.id
}

// RuntimeStatistics returns statistics about the most recent Run
func (s *Session) RuntimeStatistics() winnow.RuntimeStatistics {
	return s.statsTracker
}

// Run executes a DataFrame against this Session, blocking until all Stages are
// complete, and returns the materialized Result. The DataFrame must terminate
// in an action (Collect or Accumulate).
func (s *Session) Run(ctx context.Context, frame winnow.DataFrame) (*Result, error) {
	if s == nil {
		return nil, errors.NotInitializedError{}
	}
	s.lock.Lock()
	if !s.initialized {
		s.lock.Unlock()
		return nil, errors.NotInitializedError{}
	}
	s.lock.Unlock()
	eframe, ok := frame.(itypes.ExecutableDataFrame)
	if !ok {
		return nil, fmt.Errorf("DataFrame is not executable")
	}
	if frame.GetDataSource().IsStreaming() {
		return nil, fmt.Errorf("Cannot run a streaming DataSource to completion")
	}
	ex := &executor{
		session: s,
		plan:    eframe.Optimize(),
	}
	return ex.run(ctx)
}

// Uncache releases any Partitions retained for Cache boundaries within the
// given DataFrame's chain of transformations
func (s *Session) Uncache(frame winnow.DataFrame) error {
	if s == nil {
		return errors.NotInitializedError{}
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.initialized {
		return errors.NotInitializedError{}
	}
	eframe, ok := frame.(itypes.ExecutableDataFrame)
	if !ok {
		return fmt.Errorf("DataFrame is not executable")
	}
	for f := eframe; f != nil; {
		if cb, ok := s.cached[f.GetID()]; ok {
			cb.cache.Destroy()
			delete(s.cached, f.GetID())
		}
		parent := f.GetParent()
		if parent == nil {
			break
		}
		f = parent.(itypes.ExecutableDataFrame)
	}
	return nil
}

// Stop shuts down this Session, releasing all cached Partitions. The Session
// cannot be used afterwards.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.initialized = false
	for id, cb := range s.cached {
		cb.cache.Destroy()
		delete(s.cached, id)
	}
}

// retainBoundary stores the Partitions computed at a Cache boundary. parts
// must already be aligned to schema.
func (s *Session) retainBoundary(boundaryID string, parts []winnow.OperablePartition, schema winnow.Schema) error {
	cb := &cachedBoundary{
		cache: pcache.NewLRU(&pcache.LRUConfig{
			Size:               s.conf.CachePartitions,
			CompressedFraction: s.conf.CacheCompressedFraction,
			DiskPath:           s.conf.TempFilePath,
			Schema:             schema,
			Serializer:         partition.NewLZ4PartitionSerializer(),
		}),
		keys:   make([]string, 0, len(parts)),
		schema: schema,
	}
	for n, part := range parts {
		key := fmt.Sprintf("%s-%d", boundaryID, n)
		cb.cache.Add(key, part)
		cb.keys = append(cb.keys, key)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if old, ok := s.cached[boundaryID]; ok {
		old.cache.Destroy()
	}
	s.cached[boundaryID] = cb
	return nil
}

// replayBoundary fetches copies of the Partitions retained for a Cache
// boundary, leaving the originals cached for future Runs
func (s *Session) replayBoundary(boundaryID string) ([]winnow.Partition, error) {
	s.lock.Lock()
	cb, ok := s.cached[boundaryID]
	s.lock.Unlock()
	if !ok {
		return nil, fmt.Errorf("No Partitions cached for boundary %s", boundaryID)
	}
	parts := make([]winnow.Partition, 0, len(cb.keys))
	for _, key := range cb.keys {
		part, err := cb.cache.Get(key)
		if err != nil {
			return nil, err
		}
		cpart, err := clonePartition(part, cb.schema)
		if err != nil {
			return nil, err
		}
		cb.cache.Add(key, part)
		parts = append(parts, cpart)
	}
	return parts, nil
}

// hasBoundary returns true iff Partitions are retained for a Cache boundary
func (s *Session) hasBoundary(boundaryID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.cached[boundaryID]
	return ok
}

// clonePartition deep-copies a Partition via a serialization round trip
func clonePartition(part winnow.Partition, schema winnow.Schema) (winnow.OperablePartition, error) {
	rpart, ok := part.(itypes.ReduceablePartition)
	if !ok {
		return nil, fmt.Errorf("Partition is not serializable")
	}
	buf, err := rpart.ToBytes()
	if err != nil {
		return nil, err
	}
	return partition.FromBytes(buf, schema)
}
