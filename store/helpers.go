package store

// SliceIterator walks a sorted slice of models. The iavl adapter collects
// a range into a slice and hands it out through this type.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool { return s.idx < len(s.data) }

// Next panics when the iterator is exhausted.
func (s *SliceIterator) Next() error {
	s.current()
	s.idx++
	return nil
}

func (s *SliceIterator) Key() []byte { return s.current().Key }

func (s *SliceIterator) Value() []byte { return s.current().Value }

func (s *SliceIterator) Close() { s.data = nil }

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("store: iterator used after the last element")
	}
	return s.data[s.idx]
}

// EmptyKVStore holds nothing and ignores writes. It is the bottom layer
// of a MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error      { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }

func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

// Op is a single buffered write. Deletes carry no value.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

// Apply writes the operation to out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

func SetOp(key, value []byte) Op { return Op{key: key, value: value} }

func DelOp(key []byte) Op { return Op{key: key, del: true} }

// NonAtomicBatch buffers writes and replays them in order on Write. A
// failing write leaves the earlier ones applied, so it only backs
// in-memory stores and cache layers.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays the buffered operations and empties the batch.
func (b *NonAtomicBatch) Write() error {
	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	return nil
}

// ShowOps returns the buffered operations. LogableStore exposes it to
// tests.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
