package server

import (
	"net"
	"testing"
	"time"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServe(t *testing.T) {
	var gotHome string
	var gotDebug bool
	gen := func(home string, logger log.Logger, debug bool) (abci.Application, error) {
		gotHome, gotDebug = home, debug
		return abci.NewBaseApplication(), nil
	}

	addr := freeAddr(t)
	stop, err := Serve(gen, log.NewNopLogger(), "/tmp/custody-home", "tcp://"+addr, true)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custody-home", gotHome)
	assert.True(t, gotDebug)

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	conn.Close()

	assert.NoError(t, stop())
}

func TestServeGeneratorFailure(t *testing.T) {
	gen := func(string, log.Logger, bool) (abci.Application, error) {
		return nil, errors.Wrap(errors.ErrState, "store locked")
	}
	_, err := Serve(gen, log.NewNopLogger(), "", "tcp://"+freeAddr(t), false)
	require.Error(t, err)
	assert.True(t, errors.ErrState.Is(err))
}
