package pcache

import (
	"os"
	"testing"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/internal/partition"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

func createCacheTestSchema() winnow.Schema {
	schema := schema.CreateSchema()
	schema.CreateColumn("key", &winnow.Uint32ColumnType{})
	schema.CreateColumn("val", &winnow.Uint32ColumnType{})
	return schema
}

func TestCacheRoundTrip(t *testing.T) {
	schema := createCacheTestSchema()
	cache := NewLRU(&LRUConfig{
		Size:               10,
		CompressedFraction: 0.5,
		DiskPath:           os.TempDir(),
		Schema:             schema,
		Serializer:         partition.NewLZ4PartitionSerializer(),
	})
	defer cache.Destroy()

	part := partition.CreateReduceablePartition(16, schema, schema)
	tempRow := partition.CreateTempRow()
	for i := 0; i < 16; i++ {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint32("key", uint32(i)))
		require.Nil(t, row.SetUint32("val", uint32(i*10)))
	}
	cache.Add(part.ID(), part)
	require.Equal(t, 1, cache.CurrentSize())
	// Get is destructive
	fetched, err := cache.Get(part.ID())
	require.Nil(t, err)
	require.Equal(t, 16, fetched.GetNumRows())
	require.Equal(t, 0, cache.CurrentSize())
	_, err = cache.Get(part.ID())
	require.NotNil(t, err)
}

func TestCacheEviction(t *testing.T) {
	schema := createCacheTestSchema()
	cache := NewLRU(&LRUConfig{
		Size:               10,
		CompressedFraction: 0.5,
		DiskPath:           os.TempDir(),
		Schema:             schema,
		Serializer:         partition.NewLZ4PartitionSerializer(),
	})
	defer cache.Destroy()

	iCache, ok := cache.(*lru)
	require.True(t, ok)

	keys := make([]string, 0)
	for i := 0; i < 20; i++ {
		part := partition.CreateReduceablePartition(64, schema, schema)
		tempRow := partition.CreateTempRow()
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint32("key", uint32(i)))
		keys = append(keys, part.ID())
		cache.Add(part.ID(), part)
	}
	// oldest partitions cascade through the compressed tier onto disk
	require.Equal(t, 5, len(iCache.pmap))
	require.Equal(t, 5, len(iCache.compressedPmap))
	require.Equal(t, 10, len(iCache.diskKeys))
	require.Equal(t, 20, cache.CurrentSize())
	// every partition survives eviction, regardless of tier
	for i, key := range keys {
		fetched, err := cache.Get(key)
		require.Nil(t, err)
		val, err := fetched.GetRow(0).GetUint32("key")
		require.Nil(t, err)
		require.Equal(t, uint32(i), val)
	}
	require.Equal(t, 0, cache.CurrentSize())
}

func TestCacheRemove(t *testing.T) {
	schema := createCacheTestSchema()
	cache := NewLRU(&LRUConfig{
		Size:               5,
		CompressedFraction: 0.2,
		DiskPath:           os.TempDir(),
		Schema:             schema,
		Serializer:         partition.NewLZ4PartitionSerializer(),
	})
	defer cache.Destroy()

	part := partition.CreateReduceablePartition(8, schema, schema)
	cache.Add(part.ID(), part)
	require.Equal(t, 1, cache.CurrentSize())
	cache.Remove(part.ID())
	require.Equal(t, 0, cache.CurrentSize())
	_, err := cache.Get(part.ID())
	require.NotNil(t, err)
}
