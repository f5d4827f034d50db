package orm

import (
	"github.com/iov-one/custody"
)

// Object binds a model to the key it is stored under. Buckets prepend
// their own prefix to the key.
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() custody.Persistent
}

// Keyed exposes the storage key of an object.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable returns an empty object of the same kind, ready to be
// unmarshaled into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is the value part of an object.
type CloneableData interface {
	custody.Persistent
	Validate() error
	Copy() CloneableData
}

// Model is stored by a ModelBucket. Slots, mints, escrows and signature
// sequences all implement it.
type Model = CloneableData
