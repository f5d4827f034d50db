package utils

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestActionTagger(t *testing.T) {
	presetTag := common.KVPair{Key: []byte("escrow"), Value: []byte("0000000000000001")}

	cases := map[string]struct {
		tx       custody.Tx
		handler  custody.Handler
		wantErr  *errors.Error
		wantTags []common.KVPair
	}{
		"tagged with the message path": {
			tx:      &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/create"}},
			handler: &custodytest.Handler{},
			wantTags: []common.KVPair{
				{Key: []byte(ActionKey), Value: []byte("escrow/create")},
				{Key: []byte(ModuleKey), Value: []byte("escrow")},
			},
		},
		"handler tags are kept": {
			tx: &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/claim"}},
			handler: &custodytest.Handler{
				DeliverResult: custody.DeliverResult{Tags: []common.KVPair{presetTag}},
			},
			wantTags: []common.KVPair{
				presetTag,
				{Key: []byte(ActionKey), Value: []byte("escrow/claim")},
				{Key: []byte(ModuleKey), Value: []byte("escrow")},
			},
		},
		"failed deliver is not tagged": {
			tx:      &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/cancel"}},
			handler: &custodytest.Handler{DeliverErr: errors.ErrUnauthorized},
			wantErr: errors.ErrUnauthorized,
		},
		"unreadable message": {
			tx:      &custodytest.Tx{Err: errors.ErrMsg},
			handler: &custodytest.Handler{},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			_, err := NewActionTagger().Check(ctx, db, tc.tx, tc.handler)
			if tc.wantErr == nil {
				require.NoError(t, err)
			}

			res, err := NewActionTagger().Deliver(ctx, db, tc.tx, tc.handler)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTags, res.Tags)
		})
	}
}
