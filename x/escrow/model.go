package escrow

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where escrow records are stored.
const BucketName = "escrow"

const (
	// PooledRecordSize is the size of a serialized record that holds its
	// deposit in a separate custody slot.
	PooledRecordSize = 3*custody.AddressLength + 16
	// DirectRecordSize is the size of a serialized record that took over
	// the source slot. Such record does not carry the deposit amount.
	DirectRecordSize = 3*custody.AddressLength + 8
)

// Escrow is the record of an active escrow. The record exists for as long
// as the escrow can be claimed or cancelled.
type Escrow struct {
	Initializer custody.Address
	SourceSlot  custody.Address
	CustodySlot custody.Address
	// DepositAmount is only persisted for pooled records.
	DepositAmount uint64
	ClaimAmount   uint64
	Pooled        bool
}

var _ orm.Model = (*Escrow)(nil)

// Marshal serializes the record into a fixed size, big endian layout:
// initializer, source slot, custody slot, deposit amount (pooled only) and
// claim amount.
func (e *Escrow) Marshal() ([]byte, error) {
	if err := e.validAddresses(); err != nil {
		return nil, err
	}

	size := DirectRecordSize
	if e.Pooled {
		size = PooledRecordSize
	}
	raw := make([]byte, 0, size)
	raw = append(raw, e.Initializer...)
	raw = append(raw, e.SourceSlot...)
	raw = append(raw, e.CustodySlot...)
	if e.Pooled {
		raw = appendUint64(raw, e.DepositAmount)
	}
	raw = appendUint64(raw, e.ClaimAmount)
	return raw, nil
}

// Unmarshal is the inverse of Marshal. The variant is recognized by the
// size of the data.
func (e *Escrow) Unmarshal(raw []byte) error {
	switch len(raw) {
	case PooledRecordSize:
		e.Pooled = true
	case DirectRecordSize:
		e.Pooled = false
	default:
		return errors.Wrapf(errors.ErrModel, "escrow record of %d bytes", len(raw))
	}

	const n = custody.AddressLength
	e.Initializer = custody.Address(raw[:n]).Clone()
	e.SourceSlot = custody.Address(raw[n : 2*n]).Clone()
	e.CustodySlot = custody.Address(raw[2*n : 3*n]).Clone()
	rest := raw[3*n:]
	e.DepositAmount = 0
	if e.Pooled {
		e.DepositAmount = binary.BigEndian.Uint64(rest)
		rest = rest[8:]
	}
	e.ClaimAmount = binary.BigEndian.Uint64(rest)
	return nil
}

func appendUint64(b []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(b, buf[:]...)
}

// Validate ensures the record is consistent with its variant.
func (e *Escrow) Validate() error {
	if err := e.validAddresses(); err != nil {
		return err
	}
	if !e.Pooled {
		if !e.CustodySlot.Equals(e.SourceSlot) {
			return errors.Wrap(errors.ErrModel, "direct escrow must hold the source slot")
		}
		return nil
	}
	if e.CustodySlot.Equals(e.SourceSlot) {
		return errors.Wrap(errors.ErrModel, "pooled escrow cannot hold the source slot")
	}
	if e.ClaimAmount > e.DepositAmount {
		return errors.Wrap(errors.ErrPrecondition, "claim amount exceeds deposit")
	}
	return nil
}

func (e *Escrow) validAddresses() error {
	if err := e.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if err := e.SourceSlot.Validate(); err != nil {
		return errors.Wrap(err, "source slot")
	}
	return errors.Wrap(e.CustodySlot.Validate(), "custody slot")
}

// Copy makes a deep copy of the record.
func (e *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Initializer:   e.Initializer.Clone(),
		SourceSlot:    e.SourceSlot.Clone(),
		CustodySlot:   e.CustodySlot.Clone(),
		DepositAmount: e.DepositAmount,
		ClaimAmount:   e.ClaimAmount,
		Pooled:        e.Pooled,
	}
}

// NewBucket returns the bucket of escrow records. Records are keyed by a
// sequence and indexed by initializer and custody slot. A custody slot
// can back only one escrow.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{},
		orm.WithIndex("initializer", initializerIndex, false),
		orm.WithIndex("custody", custodyIndex, true),
	)
}

func initializerIndex(obj orm.Object) ([]byte, error) {
	e, err := asEscrow(obj)
	if err != nil {
		return nil, err
	}
	return e.Initializer, nil
}

func custodyIndex(obj orm.Object) ([]byte, error) {
	e, err := asEscrow(obj)
	if err != nil {
		return nil, err
	}
	return e.CustodySlot, nil
}

func asEscrow(obj orm.Object) (*Escrow, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return e, nil
}
