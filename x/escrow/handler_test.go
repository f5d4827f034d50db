package escrow

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlers(t *testing.T) {
	f := newFixture(t, pooledConf())
	create := CreateHandler{auth: f.auth, ctrl: f.ctrl}
	claim := ClaimHandler{ctrl: f.ctrl}
	cancel := CancelHandler{ctrl: f.ctrl}

	createTx := &custodytest.Tx{Msg: &CreateMsg{
		Initializer:   f.initializer,
		SourceSlot:    f.source,
		CustodySlot:   f.custody,
		DepositAmount: 300,
		ClaimAmount:   300,
	}}
	stranger := custodytest.NewAddress()
	_, err := create.Check(f.signedBy(stranger), f.db, createTx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	cres, err := create.Check(f.signedBy(f.initializer), f.db, createTx)
	require.NoError(t, err)
	assert.Equal(t, createEscrowCost, cres.GasAllocated)

	dres, err := create.Deliver(f.signedBy(f.initializer), f.db, createTx)
	require.NoError(t, err)
	id := dres.Data
	require.Len(t, id, 8)

	cancelTx := &custodytest.Tx{Msg: &CancelMsg{EscrowID: id, SourceSlot: f.source, CustodySlot: f.custody}}
	_, err = cancel.Check(f.signedBy(stranger), f.db, cancelTx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = cancel.Check(f.signedBy(f.initializer), f.db, cancelTx)
	require.NoError(t, err)

	taker := custodytest.NewAddress()
	claimTx := &custodytest.Tx{Msg: &ClaimMsg{EscrowID: id, CustodySlot: f.custody, ReceivingSlot: f.associated(t, taker)}}
	_, err = claim.Check(f.signedBy(taker), f.db, claimTx)
	require.NoError(t, err)
	_, err = claim.Deliver(f.signedBy(taker), f.db, claimTx)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), f.slot(t, f.associated(t, taker)).Amount)

	// The losing side of the race observes a missing record.
	_, err = claim.Check(f.signedBy(taker), f.db, claimTx)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = cancel.Deliver(f.signedBy(f.initializer), f.db, cancelTx)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestQueries(t *testing.T) {
	f := newFixture(t, pooledConf())
	id := f.create(t, 200, 20)

	qr := custody.NewQueryRouter()
	RegisterQuery(qr)

	res, err := qr.Handler("/escrows").Query(f.db, custody.KeyQueryMod, id)
	require.NoError(t, err)
	require.Len(t, res, 1)
	var e Escrow
	require.NoError(t, e.Unmarshal(res[0].Value))
	assert.Equal(t, f.custody, e.CustodySlot)
	assert.Equal(t, uint64(200), e.DepositAmount)

	res, err = qr.Handler("/escrows/initializer").Query(f.db, custody.KeyQueryMod, f.initializer)
	require.NoError(t, err)
	require.Len(t, res, 1)

	res, err = qr.Handler("/escrows/initializer").Query(f.db, custody.KeyQueryMod, f.source)
	require.NoError(t, err)
	assert.Empty(t, res)
}
