package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterAmino(cdc)
}

// RegisterAmino registers the transaction messages of the custody
// application with given codec.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterInterface((*custody.Msg)(nil), nil)
	cdc.RegisterConcrete(&token.CreateSlotMsg{}, "token/CreateSlotMsg", nil)
	cdc.RegisterConcrete(&token.TransferMsg{}, "token/TransferMsg", nil)
	cdc.RegisterConcrete(&token.SetAuthorityMsg{}, "token/SetAuthorityMsg", nil)
	cdc.RegisterConcrete(&token.MintToMsg{}, "token/MintToMsg", nil)
	cdc.RegisterConcrete(&escrow.CreateMsg{}, "escrow/CreateMsg", nil)
	cdc.RegisterConcrete(&escrow.ClaimMsg{}, "escrow/ClaimMsg", nil)
	cdc.RegisterConcrete(&escrow.CancelMsg{}, "escrow/CancelMsg", nil)
}

// Tx is the only transaction type accepted by the custody application. It
// carries exactly one message and the signatures of its signers.
type Tx struct {
	Msg        custody.Msg         `json:"msg"`
	Signatures []sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// Marshal serializes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(*tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal deserializes the transaction.
func (tx *Tx) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "empty transaction")
	}
	if err := cdc.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// GetMsg returns the message carried by the transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Those are the serialized
// transaction without any signature.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}
