package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-winnow/winnow"
)

type stageContextKey string

const nextStageWidestInitialSchema stageContextKey = "winnow.engine.stageContextImpl.nextStageWidestInitialSchema"
const pCache stageContextKey = "winnow.engine.stageContextImpl.pCache"
const pIncoming stageContextKey = "winnow.engine.stageContextImpl.pIncoming"
const keyFn stageContextKey = "winnow.engine.stageContextImpl.keyingFn"
const reduceFn stageContextKey = "winnow.engine.stageContextImpl.reduceFn"
const accumulator stageContextKey = "winnow.engine.stageContextImpl.accumulator"
const targetPartitionSize stageContextKey = "winnow.engine.stageContextImpl.targetPartitionSize"

type stageContextImpl struct {
	ctx context.Context
}

func createStageContext(ctx context.Context) winnow.StageContext {
	return &stageContextImpl{ctx: ctx}
}

func (s *stageContextImpl) Deadline() (deadline time.Time, ok bool) {
	return s.ctx.Deadline()
}

func (s *stageContextImpl) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *stageContextImpl) Err() error {
	return s.ctx.Err()
}

func (s *stageContextImpl) Value(key interface{}) interface{} {
	return s.ctx.Value(key)
}

func (s *stageContextImpl) NextStageWidestInitialSchema() winnow.Schema {
	if i := s.ctx.Value(nextStageWidestInitialSchema); i != nil {
		return i.(winnow.Schema)
	}
	return nil
}

func (s *stageContextImpl) SetNextStageWidestInitialSchema(schema winnow.Schema) error {
	if s.NextStageWidestInitialSchema() != nil {
		return fmt.Errorf("Cannot overwrite widest initial Schema for next Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, nextStageWidestInitialSchema, schema)
	return nil
}

func (s *stageContextImpl) PartitionCache() winnow.PartitionCache {
	if c := s.ctx.Value(pCache); c != nil {
		return c.(winnow.PartitionCache)
	}
	return nil
}

func (s *stageContextImpl) SetPartitionCache(cache winnow.PartitionCache) error {
	if s.PartitionCache() != nil {
		return fmt.Errorf("Cannot overwrite PartitionCache for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, pCache, cache)
	return nil
}

func (s *stageContextImpl) IncomingPartitionIterator() winnow.PartitionIterator {
	if i := s.ctx.Value(pIncoming); i != nil {
		return i.(winnow.PartitionIterator)
	}
	return nil
}

func (s *stageContextImpl) SetIncomingPartitionIterator(i winnow.PartitionIterator) error {
	if s.IncomingPartitionIterator() != nil {
		return fmt.Errorf("Cannot overwrite incoming PartitionIterator for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, pIncoming, i)
	return nil
}

func (s *stageContextImpl) KeyingOperation() winnow.KeyingOperation {
	if i := s.ctx.Value(keyFn); i != nil {
		return i.(winnow.KeyingOperation)
	}
	return nil
}

func (s *stageContextImpl) SetKeyingOperation(kfn winnow.KeyingOperation) error {
	if s.KeyingOperation() != nil {
		return fmt.Errorf("Cannot overwrite KeyingOperation for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, keyFn, kfn)
	return nil
}

func (s *stageContextImpl) ReductionOperation() winnow.ReductionOperation {
	if i := s.ctx.Value(reduceFn); i != nil {
		return i.(winnow.ReductionOperation)
	}
	return nil
}

func (s *stageContextImpl) SetReductionOperation(rfn winnow.ReductionOperation) error {
	if s.ReductionOperation() != nil {
		return fmt.Errorf("Cannot overwrite ReductionOperation for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, reduceFn, rfn)
	return nil
}

func (s *stageContextImpl) Accumulator() winnow.Accumulator {
	if i := s.ctx.Value(accumulator); i != nil {
		return i.(winnow.Accumulator)
	}
	return nil
}

func (s *stageContextImpl) SetAccumulator(acc winnow.Accumulator) error {
	if s.Accumulator() != nil {
		return fmt.Errorf("Cannot overwrite Accumulator for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, accumulator, acc)
	return nil
}

func (s *stageContextImpl) TargetPartitionSize() int {
	if i := s.ctx.Value(targetPartitionSize); i != nil {
		return i.(int)
	}
	return -1
}

func (s *stageContextImpl) SetTargetPartitionSize(size int) error {
	if s.TargetPartitionSize() > 0 {
		return fmt.Errorf("Cannot overwrite target Partition size for Stage (already set)")
	}
	s.ctx = context.WithValue(s.ctx, targetPartitionSize, size)
	return nil
}
