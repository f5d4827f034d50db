package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/custody/errors"
)

// DefaultFreeListSize is the number of released nodes a cache keeps for
// reuse.
const DefaultFreeListSize = btree.DefaultFreeListSize

// btreeDegree of the in memory trees. Caches are small and short lived.
const btreeDegree = 2

// BTreeCacheable adds a btree based CacheWrap to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a store without any persistence. It is used to
// validate genesis files and in tests.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// ShowOpser returns an ordered list of all operations performed
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore returns a memory store along with the log of all writes
// applied to it.
func LogableStore() (CacheableKVStore, ShowOpser) {
	e := EmptyKVStore{}
	b := NewNonAtomicBatch(e)
	kv := NewBTreeCacheWrap(e, b, nil)
	return kv, b
}

// BTreeCacheWrap buffers all writes in a btree on top of a read only
// parent. Reads see the buffered writes first. Write flushes the buffer
// through the batch, Discard drops it.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap creates a cache over kv. All writes must go through
// batch, kv itself is only read.
//
// free may be nil. Cache wraps created from each other share the same
// free list.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(btreeDegree, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another btree on top of this one. Nested savepoints
// are built this way.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to
// our cachewrap
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all buffered writes to the parent and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all buffered writes. The nodes go back to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(cacheItem{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(cacheItem{key: key, deleted: true})
	return b.batch.Delete(key)
}

// Get reads from the cache if the key was written, else from the parent.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	item, ok, err := b.cached(key)
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return b.back.Get(key)
	case item.deleted:
		return nil, nil
	}
	return item.value, nil
}

// Has checks the cache if the key was written, else the parent.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	item, ok, err := b.cached(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return b.back.Has(key)
	}
	return !item.deleted, nil
}

func (b BTreeCacheWrap) cached(key []byte) (cacheItem, bool, error) {
	res := b.bt.Get(cacheItem{key: key})
	if res == nil {
		return cacheItem{}, false, nil
	}
	item, ok := res.(cacheItem)
	if !ok {
		return cacheItem{}, false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
	}
	return item, true, nil
}

// Iterator over a domain of keys in ascending order. Buffered writes are
// merged with the parent content.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.snapshot(start, end, false), parent, false)
}

// ReverseIterator over a domain of keys in descending order. Buffered
// writes are merged with the parent content.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.snapshot(start, end, true), parent, true)
}

// snapshot copies the cached items within [start, end) in iteration
// order. A nil bound is open.
func (b BTreeCacheWrap) snapshot(start, end []byte, reverse bool) []cacheItem {
	var items []cacheItem
	collect := func(i btree.Item) bool {
		items = append(items, i.(cacheItem))
		return true
	}

	if !reverse {
		switch {
		case start == nil && end == nil:
			b.bt.Ascend(collect)
		case start == nil:
			b.bt.AscendLessThan(cacheItem{key: end}, collect)
		case end == nil:
			b.bt.AscendGreaterOrEqual(cacheItem{key: start}, collect)
		default:
			b.bt.AscendRange(cacheItem{key: start}, cacheItem{key: end}, collect)
		}
		return items
	}

	// Descending walks include the pivot, an exclusive end is skipped.
	inRange := func(i btree.Item) bool {
		key := i.(cacheItem).key
		if start != nil && bytes.Compare(key, start) < 0 {
			return false
		}
		if end != nil && bytes.Equal(key, end) {
			return true
		}
		return collect(i)
	}
	if end == nil {
		b.bt.Descend(inRange)
	} else {
		b.bt.DescendLessOrEqual(cacheItem{key: end}, inRange)
	}
	return items
}

// cacheItem is a buffered write. A deleted item hides the parent value.
type cacheItem struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = cacheItem{}

// Less orders the items by key.
func (c cacheItem) Less(item btree.Item) bool {
	return bytes.Compare(c.key, item.(cacheItem).key) < 0
}
