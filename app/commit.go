package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// chainIDKey is stored next to the application data. The underscore
// prefix cannot collide with a bucket name.
const chainIDKey = "_app:chain_id"

// CommitStore keeps the committed tree and two working caches on top of
// it. DeliverTx writes to the deliver cache, which becomes the next
// version on Commit. CheckTx writes to the check cache, which is dropped
// on Commit.
type CommitStore struct {
	committed custody.CommitKVStore
	deliver   custody.KVCacheWrap
	check     custody.KVCacheWrap
}

// NewCommitStore loads the latest version of the store or panics.
func NewCommitStore(store custody.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (custody.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes the deliver cache as a new version. Pending check state
// is dropped. The caller must ensure no transaction is processed
// concurrently.
func (cs *CommitStore) Commit() (custody.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return custody.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, errors.Wrap(err, "commit")
	}
	cs.reset()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() custody.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() custody.CacheableKVStore {
	return cs.deliver
}

// ChainID returns the chain id written at genesis, or an empty string
// before genesis.
func (cs *CommitStore) ChainID() (string, error) {
	v, err := cs.deliver.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// SetChainID writes the chain id. It can be set only once.
func (cs *CommitStore) SetChainID(chainID string) error {
	if !custody.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	switch current, err := cs.ChainID(); {
	case err != nil:
		return err
	case current != "":
		return errors.Wrapf(errors.ErrUnauthorized, "chain id already set to %q", current)
	}
	if err := cs.deliver.Set([]byte(chainIDKey), []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
