package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ custody.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration and creates the mints and slots
// declared under the "token" key. Balances of genesis slots count towards
// the supply of their mint.
func (*Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPackage, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var state struct {
		Mints []struct {
			Address   custody.Address `json:"address"`
			Authority custody.Address `json:"authority"`
			Decimals  uint32          `json:"decimals"`
		} `json:"mints"`
		Slots []struct {
			Owner  custody.Address `json:"owner"`
			Mint   custody.Address `json:"mint"`
			Nonce  uint32          `json:"nonce"`
			Amount uint64          `json:"amount"`
		} `json:"slots"`
	}
	if err := opts.ReadOptions("token", &state); err != nil {
		return err
	}

	// Genesis does not authenticate anybody, the controller permission
	// checks are never reached.
	ctrl := NewController(nil)
	for i, m := range state.Mints {
		if err := ctrl.CreateMint(db, m.Address, m.Authority, m.Decimals); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}
	for i, s := range state.Slots {
		addr, err := ctrl.CreateSlot(db, s.Owner, s.Mint, s.Nonce)
		if err != nil {
			return errors.Wrapf(err, "slot #%d", i)
		}
		if s.Amount == 0 {
			continue
		}
		mint, err := ctrl.Mint(db, s.Mint)
		if err != nil {
			return err
		}
		if err := ctrl.credit(db, s.Mint, mint, addr, s.Amount); err != nil {
			return errors.Wrapf(err, "slot #%d", i)
		}
	}
	return nil
}
