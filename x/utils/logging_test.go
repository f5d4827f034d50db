package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewFilter(log.NewTMLogger(&buf), log.AllowInfo())
	ctx := custody.WithLogger(context.Background(), logger)
	db := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "token/transfer"}}

	// Successful checks are logged at debug level only.
	_, err := NewLogging().Check(ctx, db, tx, &custodytest.Handler{CheckResult: custody.CheckResult{Log: "checked"}})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "checked")

	_, err = NewLogging().Deliver(ctx, db, tx, &custodytest.Handler{DeliverResult: custody.DeliverResult{Log: "delivered"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "delivered")
	assert.Contains(t, buf.String(), "path=token/transfer")

	buf.Reset()
	_, err = NewLogging().Check(ctx, db, tx, &custodytest.Handler{CheckErr: errors.ErrInsufficientAmount})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "insufficient amount")
}
