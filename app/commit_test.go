package app

import (
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStoreChainID(t *testing.T) {
	cs := NewCommitStore(iavl.MemCommitStore())

	id, err := cs.ChainID()
	require.NoError(t, err)
	assert.Equal(t, "", id)

	err = cs.SetChainID("x")
	assert.True(t, errors.ErrInput.Is(err))

	require.NoError(t, cs.SetChainID("custody-chain-1"))
	err = cs.SetChainID("custody-chain-2")
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = cs.Commit()
	require.NoError(t, err)
	id, err = cs.ChainID()
	require.NoError(t, err)
	assert.Equal(t, "custody-chain-1", id)
}

func TestCommitStoreDropsCheckState(t *testing.T) {
	cs := NewCommitStore(iavl.MemCommitStore())
	require.NoError(t, cs.CheckStore().Set([]byte("check"), []byte("1")))
	require.NoError(t, cs.DeliverStore().Set([]byte("deliver"), []byte("1")))

	// not visible to each other before the commit
	v, err := cs.DeliverStore().Get([]byte("check"))
	require.NoError(t, err)
	assert.Nil(t, v)

	info, err := cs.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Version)

	v, err = cs.CheckStore().Get([]byte("check"))
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = cs.CheckStore().Get([]byte("deliver"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}

func TestCommitStoreOnDisk(t *testing.T) {
	db, cleanup := custodytest.CommitKVStore(t)
	defer cleanup()

	cs := NewCommitStore(db)
	require.NoError(t, cs.SetChainID("custody-disk-1"))
	for want := int64(1); want <= 2; want++ {
		info, err := cs.Commit()
		require.NoError(t, err)
		assert.Equal(t, want, info.Version)
	}
	id, err := cs.ChainID()
	require.NoError(t, err)
	assert.Equal(t, "custody-disk-1", id)
}
