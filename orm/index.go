package orm

import (
	"bytes"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const idxPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
// Returning a nil key leaves the object out of the index.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
//
// Every reference is stored under its own key
//
//	_i.<name>:<index value><primary key>
//
// so that all primary keys for an index value are found by a prefix scan
// and no read-modify-write of a shared list is needed. Index values must
// be of a fixed size for the scan to be exact.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ custody.QueryHandler = Index{}

// NewIndex constructs an index.
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     append([]byte(idxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// indexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) indexKey(parts ...[]byte) []byte {
	l := len(i.id)
	for _, p := range parts {
		l += len(p)
	}
	out := make([]byte, 0, l)
	out = append(out, i.id...)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
func (i Index) Update(db custody.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		return i.insert(db, save)
	case save == nil:
		return i.remove(db, prev)
	}

	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	oldIdx, err := i.index(prev)
	if err != nil {
		return err
	}
	newIdx, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldIdx, newIdx) {
		return nil
	}
	if err := i.remove(db, prev); err != nil {
		return err
	}
	return i.insert(db, save)
}

func (i Index) insert(db custody.KVStore, obj Object) error {
	value, err := i.index(obj)
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	if i.unique {
		refs, err := i.GetAt(db, value)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
	}
	return db.Set(i.indexKey(value, obj.Key()), obj.Key())
}

func (i Index) remove(db custody.KVStore, obj Object) error {
	value, err := i.index(obj)
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	key := i.indexKey(value, obj.Key())
	ok, err := db.Has(key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrState, "index %s: missing reference", i.name)
	}
	return db.Delete(key)
}

// GetAt returns a list of all primary keys that were indexed under given
// value, in ascending order.
func (i Index) GetAt(db custody.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	models, err := queryPrefix(db, i.indexKey(value))
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	refs := make([][]byte, len(models))
	for n, m := range models {
		refs[n] = m.Value
	}
	return refs, nil
}

// Query handles queries from the QueryRouter. The result holds the indexed
// objects, not the index entries.
func (i Index) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod, custody.PrefixQueryMod:
		models, err := queryPrefix(db, i.indexKey(data))
		if err != nil {
			return nil, err
		}
		res := make([]custody.Model, 0, len(models))
		for _, m := range models {
			key := i.refKey(m.Value)
			value, err := db.Get(key)
			if err != nil {
				return nil, errors.Wrap(err, "load reference")
			}
			res = append(res, custody.Pair(key, value))
		}
		return res, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "not implemented: %s", mod)
	}
}
