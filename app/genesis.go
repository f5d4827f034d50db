package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ChainInitializers runs the genesis initializers in the given order.
// Extensions that depend on state of another extension, like escrow
// reading token slots, must come after it.
func ChainInitializers(inits ...custody.Initializer) custody.Initializer {
	return initializers(inits)
}

type initializers []custody.Initializer

// FromGenesis stops at the first failing initializer. The store is then
// in an undefined state and InitChain panics.
func (list initializers) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	for i, init := range list {
		if err := init.FromGenesis(opts, kv); err != nil {
			return errors.Wrapf(err, "initializer %d (%T)", i, init)
		}
	}
	return nil
}
