package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathCreateSlotMsg   = "token/create_slot"
	pathTransferMsg     = "token/transfer"
	pathSetAuthorityMsg = "token/set_authority"
	pathMintToMsg       = "token/mint_to"
)

var _ custody.Msg = (*CreateSlotMsg)(nil)
var _ custody.Msg = (*TransferMsg)(nil)
var _ custody.Msg = (*SetAuthorityMsg)(nil)
var _ custody.Msg = (*MintToMsg)(nil)

// CreateSlotMsg creates an empty slot owned by Owner.
type CreateSlotMsg struct {
	Owner custody.Address `json:"owner"`
	Mint  custody.Address `json:"mint"`
	Nonce uint32          `json:"nonce"`
}

// Path fulfills custody.Msg interface to allow routing
func (CreateSlotMsg) Path() string {
	return pathCreateSlotMsg
}

// Validate makes sure that this is sensible
func (m *CreateSlotMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return errors.Wrap(m.Mint.Validate(), "mint")
}

// TransferMsg moves tokens between two slots of the same mint.
type TransferMsg struct {
	From   custody.Address `json:"from"`
	To     custody.Address `json:"to"`
	Amount uint64          `json:"amount"`
}

// Path fulfills custody.Msg interface to allow routing
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate makes sure that this is sensible
func (m *TransferMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	return nil
}

// SetAuthorityMsg hands a slot over to a new authority.
type SetAuthorityMsg struct {
	Slot         custody.Address `json:"slot"`
	NewAuthority custody.Address `json:"new_authority"`
}

// Path fulfills custody.Msg interface to allow routing
func (SetAuthorityMsg) Path() string {
	return pathSetAuthorityMsg
}

// Validate makes sure that this is sensible
func (m *SetAuthorityMsg) Validate() error {
	if err := m.Slot.Validate(); err != nil {
		return errors.Wrap(err, "slot")
	}
	return errors.Wrap(m.NewAuthority.Validate(), "new authority")
}

// MintToMsg issues new tokens.
type MintToMsg struct {
	Mint   custody.Address `json:"mint"`
	Slot   custody.Address `json:"slot"`
	Amount uint64          `json:"amount"`
}

// Path fulfills custody.Msg interface to allow routing
func (MintToMsg) Path() string {
	return pathMintToMsg
}

// Validate makes sure that this is sensible
func (m *MintToMsg) Validate() error {
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Slot.Validate(); err != nil {
		return errors.Wrap(err, "slot")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}
