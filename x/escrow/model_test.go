package escrow

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLayout(t *testing.T) {
	initializer := custodytest.NewAddress()
	source := custodytest.NewAddress()
	custodySlot := custodytest.NewAddress()

	pooled := Escrow{
		Initializer:   initializer,
		SourceSlot:    source,
		CustodySlot:   custodySlot,
		DepositAmount: 1000,
		ClaimAmount:   100,
		Pooled:        true,
	}
	raw, err := pooled.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, PooledRecordSize)
	assert.True(t, bytes.Equal(initializer, raw[:32]))
	assert.True(t, bytes.Equal(source, raw[32:64]))
	assert.True(t, bytes.Equal(custodySlot, raw[64:96]))
	assert.Equal(t, uint64(1000), binary.BigEndian.Uint64(raw[96:104]))
	assert.Equal(t, uint64(100), binary.BigEndian.Uint64(raw[104:]))

	var got Escrow
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, pooled, got)

	direct := Escrow{
		Initializer: initializer,
		SourceSlot:  source,
		CustodySlot: source,
		ClaimAmount: 7,
	}
	raw, err = direct.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, DirectRecordSize)
	assert.Equal(t, uint64(7), binary.BigEndian.Uint64(raw[96:]))

	got = Escrow{}
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, direct, got)

	err = got.Unmarshal(raw[:50])
	assert.True(t, errors.ErrModel.Is(err))

	_, err = (&Escrow{Initializer: initializer, SourceSlot: source}).Marshal()
	assert.True(t, errors.ErrInput.Is(err))
}

func TestEscrowValidate(t *testing.T) {
	a := custodytest.NewAddress()
	b := custodytest.NewAddress()
	c := custodytest.NewAddress()

	cases := map[string]struct {
		escrow  Escrow
		wantErr *errors.Error
	}{
		"valid pooled": {
			escrow: Escrow{Initializer: a, SourceSlot: b, CustodySlot: c, DepositAmount: 5, ClaimAmount: 5, Pooled: true},
		},
		"valid direct": {
			escrow: Escrow{Initializer: a, SourceSlot: b, CustodySlot: b, ClaimAmount: 5},
		},
		"pooled claim above deposit": {
			escrow:  Escrow{Initializer: a, SourceSlot: b, CustodySlot: c, DepositAmount: 5, ClaimAmount: 6, Pooled: true},
			wantErr: errors.ErrPrecondition,
		},
		"pooled into source": {
			escrow:  Escrow{Initializer: a, SourceSlot: b, CustodySlot: b, Pooled: true},
			wantErr: errors.ErrModel,
		},
		"direct with other slot": {
			escrow:  Escrow{Initializer: a, SourceSlot: b, CustodySlot: c},
			wantErr: errors.ErrModel,
		},
		"missing initializer": {
			escrow:  Escrow{SourceSlot: b, CustodySlot: b},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.escrow.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestMsgValidate(t *testing.T) {
	a := custodytest.NewAddress()
	b := custodytest.NewAddress()
	id := []byte{0, 0, 0, 0, 0, 0, 0, 1}

	cases := map[string]struct {
		msg     custody.Msg
		wantErr *errors.Error
	}{
		"create":                  {msg: &CreateMsg{Initializer: a, SourceSlot: b, DepositAmount: 10, ClaimAmount: 10}},
		"create claim too big":    {msg: &CreateMsg{Initializer: a, SourceSlot: b, DepositAmount: 10, ClaimAmount: 11}, wantErr: errors.ErrPrecondition},
		"create bad custody slot": {msg: &CreateMsg{Initializer: a, SourceSlot: b, CustodySlot: []byte{1}}, wantErr: errors.ErrInput},
		"claim":                   {msg: &ClaimMsg{EscrowID: id, CustodySlot: a, ReceivingSlot: b}},
		"claim short id":          {msg: &ClaimMsg{EscrowID: []byte{1}, CustodySlot: a, ReceivingSlot: b}, wantErr: errors.ErrInput},
		"claim into custody":      {msg: &ClaimMsg{EscrowID: id, CustodySlot: a, ReceivingSlot: a}, wantErr: errors.ErrInput},
		"cancel":                  {msg: &CancelMsg{EscrowID: id, SourceSlot: a, CustodySlot: b}},
		"cancel missing slot":     {msg: &CancelMsg{EscrowID: id, SourceSlot: a}, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}
