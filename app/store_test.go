package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	if value == "" {
		return errors.Wrap(errors.ErrEmpty, dummyKey)
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	c.called++
	return nil
}

func newStoreApp() *StoreApp {
	qr := custody.NewQueryRouter()
	qr.RegisterAll(orm.RegisterQuery)
	return NewStoreApp("custody-test", iavl.MemCommitStore(), qr, context.Background())
}

func TestInitChain(t *testing.T) {
	cases := map[string]struct {
		appState    string
		chainID     string
		wantPanic   bool
		wantChainID string
		wantCalled  int
		wantValue   []byte
	}{
		"proper genesis": {
			appState:    `{"dummy": "secret"}`,
			chainID:     "test-chain-67",
			wantChainID: "test-chain-67",
			wantCalled:  1,
			wantValue:   []byte("secret"),
		},
		"initializer failure": {
			appState:  `{"other": "value"}`,
			chainID:   "super-chain-22",
			wantPanic: true,
		},
		"missing app state": {
			chainID:   "super-chain-22",
			wantPanic: true,
		},
		"malformed app state": {
			appState:  `[1, 2`,
			chainID:   "super-chain-22",
			wantPanic: true,
		},
		"invalid chain id": {
			appState:  `{"dummy": "secret"}`,
			chainID:   "x",
			wantPanic: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c := new(countInit)
			s := newStoreApp().WithInit(ChainInitializers(dummyInit{}, c))
			assert.Equal(t, "", s.GetChainID())

			req := abci.RequestInitChain{
				ChainId:       tc.chainID,
				AppStateBytes: []byte(tc.appState),
			}
			if tc.wantPanic {
				assert.Panics(t, func() { s.InitChain(req) })
				return
			}
			s.InitChain(req)
			assert.Equal(t, tc.wantChainID, s.GetChainID())
			assert.Equal(t, tc.wantCalled, c.called)
			val, err := s.DeliverStore().Get([]byte(dummyKey))
			require.NoError(t, err)
			assert.Equal(t, tc.wantValue, val)
		})
	}
}

func TestInitChainOnlyOnce(t *testing.T) {
	s := newStoreApp().WithInit(dummyInit{})
	req := abci.RequestInitChain{
		ChainId:       "test-chain-1",
		AppStateBytes: []byte(`{"dummy": "secret"}`),
	}
	s.InitChain(req)
	assert.Panics(t, func() { s.InitChain(req) })
}

func TestQueryCommittedState(t *testing.T) {
	s := newStoreApp()

	key := []byte("escrow:1")
	require.NoError(t, s.DeliverStore().Set(key, []byte("record")))

	// Nothing is visible before the commit.
	res := s.Query(abci.RequestQuery{Path: "/", Data: key})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(res.Value))
	assert.Empty(t, values.Results)

	commit := s.Commit()
	assert.NotEmpty(t, commit.Data)

	res = s.Query(abci.RequestQuery{Path: "/", Data: key})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, int64(1), res.Height)

	var record rawBytes
	require.NoError(t, UnmarshalOneResult(res.Value, &record))
	assert.Equal(t, "record", string(record))

	res = s.Query(abci.RequestQuery{Path: "/?prefix", Data: []byte("escrow:")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var keys ResultSet
	require.NoError(t, keys.Unmarshal(res.Key))
	require.NoError(t, values.Unmarshal(res.Value))
	models, err := JoinResults(&keys, &values)
	require.NoError(t, err)
	assert.Equal(t, []custody.Model{custody.Pair(key, []byte("record"))}, models)

	res = s.Query(abci.RequestQuery{Path: "/unknown", Data: key})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = s.Query(abci.RequestQuery{Path: "/?range", Data: key})
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
}

func TestInfo(t *testing.T) {
	s := newStoreApp()
	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, "custody-test", info.Data)
	assert.Equal(t, int64(0), info.LastBlockHeight)

	require.NoError(t, s.DeliverStore().Set([]byte("a"), []byte("b")))
	commit := s.Commit()

	info = s.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
}

type rawBytes []byte

func (r *rawBytes) Unmarshal(raw []byte) error {
	*r = append((*r)[:0], raw...)
	return nil
}

func (r *rawBytes) Marshal() ([]byte, error) {
	return *r, nil
}
