package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ custody.Initializer = (*Initializer)(nil)

// FromGenesis stores the escrow configuration. Missing seed and mode are
// set to their defaults. Escrows cannot be declared in genesis, they only
// come into existence through a deposit.
func (*Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	conf := DefaultConfiguration()
	if err := gconf.InitConfig(db, opts, confPackage, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	// Fail early when no custody authority can be derived.
	_, _, err := conf.Authority()
	return err
}
