package winnow

import "io"

// PartitionCache is a cache for Partitions
type PartitionCache interface {
	Destroy()                                               // Destroy shuts down this PartitionCache, removing any disk residue
	Add(key string, value OperablePartition)                // Add caches a Partition under the given key
	Get(key string) (value OperablePartition, err error)    // Get removes the Partition from the cache and returns it, if present. Returns an error otherwise.
	CurrentSize() int                                       // CurrentSize returns the number of Partitions currently retained by this cache
	Remove(key string)                                      // Remove discards a cached Partition, if present
}

// PartitionSerializer compresses and decompresses Partition data for caching or disk storage
type PartitionSerializer interface {
	Compress(w io.Writer, part Partition) error                       // Compress serializes and compresses partition data to a write stream
	Decompress(r io.Reader, schema Schema) (OperablePartition, error) // Decompress decompresses and deserializes partition data from a read stream
}
