package token

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	amino "github.com/tendermint/go-amino"
)

const (
	// MintBucketName is where mints are stored.
	MintBucketName = "mint"
	// SlotBucketName is where slots are stored.
	SlotBucketName = "slot"

	// MaxDecimals is the greatest precision a mint can declare.
	MaxDecimals = 18
)

var cdc = amino.NewCodec()

// Mint describes a token type.
type Mint struct {
	// Authority can issue new tokens.
	Authority custody.Address `json:"authority"`
	Supply    uint64          `json:"supply"`
	Decimals  uint32          `json:"decimals"`
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(*m)
}

func (m *Mint) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *Mint) Validate() error {
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d", m.Decimals)
	}
	return nil
}

func (m *Mint) Copy() orm.CloneableData {
	return &Mint{
		Authority: m.Authority.Clone(),
		Supply:    m.Supply,
		Decimals:  m.Decimals,
	}
}

// Slot holds the balance of a single mint.
type Slot struct {
	Mint      custody.Address `json:"mint"`
	Authority custody.Address `json:"authority"`
	Amount    uint64          `json:"amount"`
}

var _ orm.Model = (*Slot)(nil)

func (s *Slot) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(*s)
}

func (s *Slot) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

func (s *Slot) Validate() error {
	if err := s.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := s.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

func (s *Slot) Copy() orm.CloneableData {
	return &Slot{
		Mint:      s.Mint.Clone(),
		Authority: s.Authority.Clone(),
		Amount:    s.Amount,
	}
}

// NewMintBucket returns a bucket of mints keyed by the mint address.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket(MintBucketName, &Mint{})
}

// NewSlotBucket returns a bucket of slots keyed by the slot address. Slots
// are indexed by their current authority.
func NewSlotBucket() orm.ModelBucket {
	return orm.NewModelBucket(SlotBucketName, &Slot{},
		orm.WithIndex("authority", slotAuthority, false))
}

func slotAuthority(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	s, ok := obj.Value().(*Slot)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return s.Authority, nil
}

// SlotAddress returns the address of the slot of given owner and mint.
// Nonce zero is the associated slot.
func SlotAddress(program, owner, mint custody.Address, nonce uint32) (custody.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if err := mint.Validate(); err != nil {
		return nil, errors.Wrap(err, "mint")
	}
	n := make([]byte, 4)
	binary.BigEndian.PutUint32(n, nonce)
	addr, _, err := custody.FindProgramAddress([][]byte{owner, mint, n}, program)
	return addr, err
}
