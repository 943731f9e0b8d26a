package hashmap

import (
	"sync"

	"github.com/go-winnow/winnow"
	errors "github.com/go-winnow/winnow/errors"
	itypes "github.com/go-winnow/winnow/internal/types"
)

// partitionSliceIterator iterates over a slice of indexed Partitions
type partitionSliceIterator struct {
	lock         sync.Mutex
	parts        []itypes.ReduceablePartition
	next         int
	endListeners []func()
}

func createPartitionSliceIterator(parts []itypes.ReduceablePartition) winnow.PartitionIterator {
	return &partitionSliceIterator{
		parts:        parts,
		endListeners: []func(){},
	}
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (psi *partitionSliceIterator) OnEnd(onEnd func()) {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	psi.endListeners = append(psi.endListeners, onEnd)
}

// HasNextPartition returns true iff this iterator can produce another Partition
func (psi *partitionSliceIterator) HasNextPartition() bool {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	return psi.next < len(psi.parts)
}

// NextPartition returns the next Partition if one is available, or an error
func (psi *partitionSliceIterator) NextPartition() (winnow.Partition, func(), error) {
	psi.lock.Lock()
	defer psi.lock.Unlock()
	if psi.next >= len(psi.parts) {
		for _, l := range psi.endListeners {
			l()
		}
		psi.endListeners = []func(){}
		return nil, nil, errors.NoMorePartitionsError{}
	}
	part := psi.parts[psi.next]
	psi.next++
	return part, nil, nil
}
