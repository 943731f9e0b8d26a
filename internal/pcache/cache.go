// Package pcache implements a tiered LRU cache for Partitions, spilling
// from uncompressed memory to compressed memory to disk as it fills.
package pcache

import (
	"bytes"
	"container/list"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path"

	"github.com/docker/docker/pkg/locker"
	"github.com/go-winnow/winnow"
)

// lru is an LRU cache for Partitions
type lru struct {
	config               *LRUConfig
	serializer           winnow.PartitionSerializer
	plocks               *locker.Locker
	globalLock           *locker.Locker // used with the empty key to guard all cache state
	pmap                 map[string]*list.Element
	compressedPmap       map[string]*list.Element
	diskKeys             map[string]bool
	recentUncompressed   *list.List // back is oldest, front is newest
	recentCompressed     *list.List // back is oldest, front is newest
	maxUncompressed      int
	maxCompressed        int
}

type cachedPartition struct {
	key   string
	value winnow.OperablePartition
}

type cachedCompressedPartition struct {
	key   string
	value []byte
}

// LRUConfig configures an LRU PartitionCache
type LRUConfig struct {
	Size               int
	CompressedFraction float32
	DiskPath           string
	Schema             winnow.Schema
	Serializer         winnow.PartitionSerializer
}

// NewLRU produces an LRU PartitionCache
func NewLRU(config *LRUConfig) winnow.PartitionCache {
	if config.Size < 5 {
		log.Panicf("LRUConfig.Size %d must be greater than 5", config.Size)
	}
	if config.CompressedFraction < 0 || config.CompressedFraction > 1 {
		log.Panicf("LRUConfig.CompressedFraction %f must be between 0 and 1", config.CompressedFraction)
	}
	if config.Schema == nil {
		log.Panicf("Cached partition schema was nil")
	}
	if config.Serializer == nil {
		log.Panicf("Partition serializer was nil")
	}
	maxUncompressed := int(float32(config.Size) * (1 - config.CompressedFraction))
	maxCompressed := config.Size - maxUncompressed
	return &lru{
		config:             config,
		serializer:         config.Serializer,
		plocks:             locker.New(),
		globalLock:         locker.New(),
		pmap:               make(map[string]*list.Element),
		compressedPmap:     make(map[string]*list.Element),
		diskKeys:           make(map[string]bool),
		recentUncompressed: list.New(),
		recentCompressed:   list.New(),
		maxUncompressed:    maxUncompressed,
		maxCompressed:      maxCompressed,
	}
}

// Destroy shuts down this cache, discarding all cached Partitions and any disk residue
func (c *lru) Destroy() {
	c.globalLock.Lock("")
	defer c.globalLock.Unlock("")
	c.pmap = make(map[string]*list.Element)
	c.compressedPmap = make(map[string]*list.Element)
	c.recentUncompressed.Init()
	c.recentCompressed.Init()
	for key := range c.diskKeys {
		tempFilePath := path.Join(c.config.DiskPath, key)
		if err := os.Remove(tempFilePath); err != nil {
			log.Printf("Unable to remove file %s", tempFilePath)
		}
	}
	c.diskKeys = make(map[string]bool)
}

// Add caches a Partition under the given key, evicting older Partitions to
// slower tiers if the cache is full
func (c *lru) Add(key string, value winnow.OperablePartition) {
	c.globalLock.Lock("")
	defer c.globalLock.Unlock("")
	e := c.recentUncompressed.PushFront(&cachedPartition{
		key:   key,
		value: value,
	})
	c.pmap[key] = e

	// if we're full, it can only be because the uncompressed
	// cache has grown, so let's just check that one
	if c.recentUncompressed.Len() > c.maxUncompressed {
		toRemove := c.recentUncompressed.Back()
		c.recentUncompressed.Remove(toRemove)
		evicted := toRemove.Value.(*cachedPartition)
		delete(c.pmap, evicted.key)
		c.evictToCompressedMemory(evicted)
	}
}

// evictToCompressedMemory compresses a Partition into the compressed tier,
// spilling the oldest compressed Partition to disk if that tier is full
func (c *lru) evictToCompressedMemory(evicted *cachedPartition) {
	var buff bytes.Buffer
	if err := c.serializer.Compress(&buff, evicted.value); err != nil {
		log.Panicf("Unable to compress evicted partition %s: %v", evicted.key, err)
	}
	e := c.recentCompressed.PushFront(&cachedCompressedPartition{
		key:   evicted.key,
		value: buff.Bytes(),
	})
	c.compressedPmap[evicted.key] = e
	if c.recentCompressed.Len() > c.maxCompressed {
		toRemove := c.recentCompressed.Back()
		c.recentCompressed.Remove(toRemove)
		spilled := toRemove.Value.(*cachedCompressedPartition)
		delete(c.compressedPmap, spilled.key)
		c.evictToDisk(spilled)
	}
}

// evictToDisk spills compressed Partition data to the configured disk path
func (c *lru) evictToDisk(spilled *cachedCompressedPartition) {
	c.plocks.Lock(spilled.key)
	defer c.plocks.Unlock(spilled.key)
	tempFilePath := path.Join(c.config.DiskPath, spilled.key)
	if err := ioutil.WriteFile(tempFilePath, spilled.value, 0644); err != nil {
		log.Panicf("Unable to disk-swap partition %s: %v", spilled.key, err)
	}
	c.diskKeys[spilled.key] = true
}

// Get removes the Partition from the cache and returns it, if present. Returns an error otherwise.
func (c *lru) Get(key string) (value winnow.OperablePartition, err error) {
	c.globalLock.Lock("")
	defer c.globalLock.Unlock("")
	value, err = c.getFromCache(key)
	if err != nil {
		value, err = c.getFromCompressedCache(key)
		if err != nil {
			value, err = c.getFromDisk(key)
			if err != nil {
				return nil, err
			}
		}
	}
	return
}

// getFromCache removes the partition from the uncompressed cache and returns it, if present
func (c *lru) getFromCache(key string) (value winnow.OperablePartition, err error) {
	ve, ok := c.pmap[key]
	if ok {
		delete(c.pmap, key)
		c.recentUncompressed.Remove(ve)
		return ve.Value.(*cachedPartition).value, nil
	}
	return nil, fmt.Errorf("Partition %s is not in the cache", key)
}

// getFromCompressedCache removes the partition from the compressed cache and returns it, if present
func (c *lru) getFromCompressedCache(key string) (value winnow.OperablePartition, err error) {
	cve, cok := c.compressedPmap[key]
	if cok {
		delete(c.compressedPmap, key)
		c.recentCompressed.Remove(cve)
		buff := cve.Value.(*cachedCompressedPartition).value
		decompressedPart, err := c.serializer.Decompress(bytes.NewReader(buff), c.config.Schema)
		if err != nil {
			return nil, err
		}
		return decompressedPart, nil
	}
	return nil, fmt.Errorf("Partition %s is not in the cache", key)
}

// getFromDisk removes the partition from the disk cache and returns it, if present
func (c *lru) getFromDisk(key string) (value winnow.OperablePartition, err error) {
	if !c.diskKeys[key] {
		return nil, fmt.Errorf("Partition %s is not in the cache", key)
	}
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)
	tempFilePath := path.Join(c.config.DiskPath, key)
	f, err := os.Open(tempFilePath)
	if err != nil {
		return nil, fmt.Errorf("Unable to load disk-swapped partition %s: %w", tempFilePath, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Unable to close file %s", tempFilePath)
		}
		if err := os.Remove(tempFilePath); err != nil {
			log.Printf("Unable to remove file %s", tempFilePath)
		}
		delete(c.diskKeys, key)
	}()
	part, err := c.serializer.Decompress(f, c.config.Schema)
	if err != nil {
		return nil, fmt.Errorf("Unable to decompress disk-swapped partition %s: %w", tempFilePath, err)
	}
	return part, nil
}

// CurrentSize returns the number of Partitions currently retained by this cache
func (c *lru) CurrentSize() int {
	c.globalLock.Lock("")
	defer c.globalLock.Unlock("")
	return c.recentUncompressed.Len() + c.recentCompressed.Len() + len(c.diskKeys)
}

// Remove discards a cached Partition, if present
func (c *lru) Remove(key string) {
	c.globalLock.Lock("")
	defer c.globalLock.Unlock("")
	if ve, ok := c.pmap[key]; ok {
		delete(c.pmap, key)
		c.recentUncompressed.Remove(ve)
		return
	}
	if cve, ok := c.compressedPmap[key]; ok {
		delete(c.compressedPmap, key)
		c.recentCompressed.Remove(cve)
		return
	}
	if c.diskKeys[key] {
		c.plocks.Lock(key)
		defer c.plocks.Unlock(key)
		tempFilePath := path.Join(c.config.DiskPath, key)
		if err := os.Remove(tempFilePath); err != nil {
			log.Printf("Unable to remove file %s", tempFilePath)
		}
		delete(c.diskKeys, key)
	}
}
