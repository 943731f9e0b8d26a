package winnow

// A PartitionIterator produces a sequence of Partitions, hiding where they
// come from (a datasource, a partition index, a cache)
type PartitionIterator interface {
	HasNextPartition() bool
	// NextPartition returns the next Partition in the sequence. When
	// unlockPartition is non-nil, it must be called once the caller is
	// finished with the returned Partition.
	NextPartition() (part Partition, unlockPartition func(), err error)
	// OnEnd registers a callback which fires when iteration is exhausted
	OnEnd(onEnd func())
}
