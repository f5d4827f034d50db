package store

import "bytes"

// mergeIterator walks the buffered writes of a cache wrap together with
// the iterator of its parent. On equal keys the cache wins, deleted keys
// are skipped.
type mergeIterator struct {
	items   []cacheItem
	pos     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []cacheItem, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.skipDeleted(); err != nil {
		parent.Close()
		return nil, err
	}
	return it, nil
}

// source tells which side holds the current key.
type source int

const (
	none source = iota
	cache
	parent
	both
)

// Valid returns true iff the iterator can be read.
func (m *mergeIterator) Valid() bool {
	return m.current() != none
}

// Next moves to the following key in iteration order.
//
// If Valid returns false, this method will panic.
func (m *mergeIterator) Next() error {
	switch m.current() {
	case cache:
		m.pos++
	case both:
		m.pos++
		if err := m.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := m.parent.Next(); err != nil {
			return err
		}
	default:
		panic("advanced past the end")
	}
	return m.skipDeleted()
}

// Key returns the key of the cursor.
func (m *mergeIterator) Key() []byte {
	switch m.current() {
	case cache, both:
		return m.items[m.pos].key
	case parent:
		return m.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (m *mergeIterator) Value() []byte {
	switch m.current() {
	case cache, both:
		return m.items[m.pos].value
	case parent:
		return m.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the parent iterator.
func (m *mergeIterator) Close() {
	m.parent.Close()
	m.items = nil
}

// skipDeleted moves over deleted cache items along with the parent keys
// they hide.
func (m *mergeIterator) skipDeleted() error {
	for {
		src := m.current()
		if src != cache && src != both {
			return nil
		}
		if !m.items[m.pos].deleted {
			return nil
		}
		m.pos++
		if src == both {
			if err := m.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// current selects the side whose key comes first in iteration order.
func (m *mergeIterator) current() source {
	cacheOK := m.pos < len(m.items)
	parentOK := m.parent != nil && m.parent.Valid()
	switch {
	case !cacheOK && !parentOK:
		return none
	case !parentOK:
		return cache
	case !cacheOK:
		return parent
	}

	cmp := bytes.Compare(m.items[m.pos].key, m.parent.Key())
	if m.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return cache
	case cmp > 0:
		return parent
	default:
		return both
	}
}
