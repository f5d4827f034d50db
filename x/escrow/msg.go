package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	pathCreateMsg = "escrow/create"
	pathClaimMsg  = "escrow/claim"
	pathCancelMsg = "escrow/cancel"
)

var _ custody.Msg = (*CreateMsg)(nil)
var _ custody.Msg = (*ClaimMsg)(nil)
var _ custody.Msg = (*CancelMsg)(nil)

// CreateMsg locks DepositAmount tokens of the source slot. CustodySlot is
// required in pooled mode and must be empty or equal to the source slot
// in direct mode.
type CreateMsg struct {
	Initializer   custody.Address `json:"initializer"`
	SourceSlot    custody.Address `json:"source_slot"`
	CustodySlot   custody.Address `json:"custody_slot,omitempty"`
	DepositAmount uint64          `json:"deposit_amount"`
	ClaimAmount   uint64          `json:"claim_amount"`
}

// Path fulfills custody.Msg interface to allow routing
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	if err := m.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if err := m.SourceSlot.Validate(); err != nil {
		return errors.Wrap(err, "source slot")
	}
	if m.CustodySlot != nil {
		if err := m.CustodySlot.Validate(); err != nil {
			return errors.Wrap(err, "custody slot")
		}
	}
	if m.ClaimAmount > m.DepositAmount {
		return errors.Wrapf(errors.ErrPrecondition, "claim amount %d exceeds deposit %d", m.ClaimAmount, m.DepositAmount)
	}
	return nil
}

// ClaimMsg pays the claim amount of an escrow into the receiving slot.
// The message does not have to be signed.
type ClaimMsg struct {
	EscrowID      []byte          `json:"escrow_id"`
	CustodySlot   custody.Address `json:"custody_slot"`
	ReceivingSlot custody.Address `json:"receiving_slot"`
}

// Path fulfills custody.Msg interface to allow routing
func (ClaimMsg) Path() string {
	return pathClaimMsg
}

// Validate makes sure that this is sensible
func (m *ClaimMsg) Validate() error {
	if err := validateEscrowID(m.EscrowID); err != nil {
		return err
	}
	if err := m.CustodySlot.Validate(); err != nil {
		return errors.Wrap(err, "custody slot")
	}
	if err := m.ReceivingSlot.Validate(); err != nil {
		return errors.Wrap(err, "receiving slot")
	}
	if m.ReceivingSlot.Equals(m.CustodySlot) {
		return errors.Wrap(errors.ErrInput, "cannot claim into the custody slot")
	}
	return nil
}

// CancelMsg returns the deposit of an escrow to the initializer.
type CancelMsg struct {
	EscrowID    []byte          `json:"escrow_id"`
	SourceSlot  custody.Address `json:"source_slot"`
	CustodySlot custody.Address `json:"custody_slot"`
}

// Path fulfills custody.Msg interface to allow routing
func (CancelMsg) Path() string {
	return pathCancelMsg
}

// Validate makes sure that this is sensible
func (m *CancelMsg) Validate() error {
	if err := validateEscrowID(m.EscrowID); err != nil {
		return err
	}
	if err := m.SourceSlot.Validate(); err != nil {
		return errors.Wrap(err, "source slot")
	}
	return errors.Wrap(m.CustodySlot.Validate(), "custody slot")
}

func validateEscrowID(id []byte) error {
	return errors.Wrap(orm.ValidateSequence(id), "escrow id")
}
