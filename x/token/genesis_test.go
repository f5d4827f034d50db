package token

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	mint := custodytest.NewAddress()
	owner := custodytest.NewAddress()
	genesis := fmt.Sprintf(`{
		"conf": {"token": {"program_id": %q}},
		"token": {
			"mints": [{"address": %q, "authority": %q, "decimals": 2}],
			"slots": [
				{"owner": %q, "mint": %q, "amount": 700},
				{"owner": %q, "mint": %q, "nonce": 1}
			]
		}
	}`, tokenProgram, mint, owner, owner, mint, owner, mint)

	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, (&Initializer{}).FromGenesis(opts, db))

	ctrl := NewController(nil)
	m, err := ctrl.Mint(db, mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(700), m.Supply)
	assert.Equal(t, uint32(2), m.Decimals)

	assoc, err := SlotAddress(tokenProgram, owner, mint, 0)
	require.NoError(t, err)
	balance, err := ctrl.Balance(db, assoc)
	require.NoError(t, err)
	assert.Equal(t, uint64(700), balance)

	second, err := SlotAddress(tokenProgram, owner, mint, 1)
	require.NoError(t, err)
	balance, err = ctrl.Balance(db, second)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestGenesisRequiresConfiguration(t *testing.T) {
	db := store.MemStore()
	err := (&Initializer{}).FromGenesis(custody.Options{}, db)
	assert.True(t, errors.ErrNotFound.Is(err))
}
