package token

import (
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

// Controller is the only entry point that changes mints and slots.
// Every state change that requires a permission is checked against the
// current authority of the mint or slot.
type Controller struct {
	auth  x.Authenticator
	mints orm.ModelBucket
	slots orm.ModelBucket
}

// NewController returns a controller authenticating callers with given
// authenticator. To let programs operate on slots they control, the
// authenticator must include x.ProgramAuth.
func NewController(auth x.Authenticator) *Controller {
	return &Controller{
		auth:  auth,
		mints: NewMintBucket(),
		slots: NewSlotBucket(),
	}
}

// Mint returns the mint stored under given address.
func (c *Controller) Mint(db custody.ReadOnlyKVStore, addr custody.Address) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, addr, &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &m, nil
}

// Slot returns the slot stored under given address.
func (c *Controller) Slot(db custody.ReadOnlyKVStore, addr custody.Address) (*Slot, error) {
	var s Slot
	if err := c.slots.One(db, addr, &s); err != nil {
		return nil, errors.Wrapf(err, "slot %s", addr)
	}
	return &s, nil
}

// Balance returns the amount held by given slot.
func (c *Controller) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	s, err := c.Slot(db, addr)
	if err != nil {
		return 0, err
	}
	return s.Amount, nil
}

// CreateMint registers a new token type with zero supply.
func (c *Controller) CreateMint(db custody.KVStore, addr, authority custody.Address, decimals uint32) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "mint address")
	}
	if err := c.mints.Has(db, addr); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "mint %s", addr)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	m := Mint{Authority: authority, Decimals: decimals}
	_, err := c.mints.Put(db, addr, &m)
	return err
}

// SlotAddress derives the address of a slot using the configured token
// program.
func (c *Controller) SlotAddress(db custody.ReadOnlyKVStore, owner, mint custody.Address, nonce uint32) (custody.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return SlotAddress(conf.ProgramID, owner, mint, nonce)
}

// AssociatedSlot returns the address of the associated slot of the owner.
// The slot does not have to exist.
func (c *Controller) AssociatedSlot(db custody.ReadOnlyKVStore, owner, mint custody.Address) (custody.Address, error) {
	return c.SlotAddress(db, owner, mint, 0)
}

// CreateSlot creates an empty slot controlled by the owner. Anybody can
// create a slot for anybody else.
func (c *Controller) CreateSlot(db custody.KVStore, owner, mint custody.Address, nonce uint32) (custody.Address, error) {
	if _, err := c.Mint(db, mint); err != nil {
		return nil, err
	}
	addr, err := c.SlotAddress(db, owner, mint, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "slot address")
	}
	if err := c.slots.Has(db, addr); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "slot %s", addr)
	} else if !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	s := Slot{Mint: mint, Authority: owner}
	if _, err := c.slots.Put(db, addr, &s); err != nil {
		return nil, errors.Wrap(err, "save slot")
	}
	return addr, nil
}

// EnsureAssociatedSlot returns the associated slot of the owner, creating
// it first if necessary.
func (c *Controller) EnsureAssociatedSlot(db custody.KVStore, owner, mint custody.Address) (custody.Address, error) {
	addr, err := c.AssociatedSlot(db, owner, mint)
	if err != nil {
		return nil, err
	}
	switch err := c.slots.Has(db, addr); {
	case err == nil:
		return addr, nil
	case errors.ErrNotFound.Is(err):
		return c.CreateSlot(db, owner, mint, 0)
	default:
		return nil, err
	}
}

// Transfer moves amount tokens between two slots of the same mint. The
// authority of the source slot must authorize the call.
func (c *Controller) Transfer(ctx custody.Context, db custody.KVStore, from, to custody.Address, amount uint64) error {
	src, err := c.Slot(db, from)
	if err != nil {
		return err
	}
	dst, err := c.Slot(db, to)
	if err != nil {
		return err
	}
	if !src.Mint.Equals(dst.Mint) {
		return errors.Wrapf(errors.ErrState, "mint mismatch: %s and %s", src.Mint, dst.Mint)
	}
	if !c.auth.HasAddress(ctx, src.Authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "slot %s authority", from)
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, requested %d", src.Amount, amount)
	}
	if from.Equals(to) {
		return nil
	}
	if dst.Amount > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "slot %s", to)
	}

	src.Amount -= amount
	dst.Amount += amount
	if _, err := c.slots.Put(db, from, src); err != nil {
		return errors.Wrap(err, "save source")
	}
	if _, err := c.slots.Put(db, to, dst); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

// SetAuthority hands the control over a slot to a new authority. The
// current authority must authorize the call.
func (c *Controller) SetAuthority(ctx custody.Context, db custody.KVStore, addr, authority custody.Address) error {
	if err := authority.Validate(); err != nil {
		return errors.Wrap(err, "new authority")
	}
	s, err := c.Slot(db, addr)
	if err != nil {
		return err
	}
	if !c.auth.HasAddress(ctx, s.Authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "slot %s authority", addr)
	}
	s.Authority = authority
	if _, err := c.slots.Put(db, addr, s); err != nil {
		return errors.Wrap(err, "save slot")
	}
	return nil
}

// MintTo issues new tokens into given slot. The mint authority must
// authorize the call.
func (c *Controller) MintTo(ctx custody.Context, db custody.KVStore, mint, slot custody.Address, amount uint64) error {
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	if !c.auth.HasAddress(ctx, m.Authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "mint %s authority", mint)
	}
	return c.credit(db, mint, m, slot, amount)
}

// credit increases both the supply of the mint and the balance of the slot.
func (c *Controller) credit(db custody.KVStore, mintAddr custody.Address, m *Mint, slot custody.Address, amount uint64) error {
	s, err := c.Slot(db, slot)
	if err != nil {
		return err
	}
	if !s.Mint.Equals(mintAddr) {
		return errors.Wrapf(errors.ErrState, "slot %s holds %s", slot, s.Mint)
	}
	if m.Supply > math.MaxUint64-amount || s.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	m.Supply += amount
	s.Amount += amount
	if _, err := c.mints.Put(db, mintAddr, m); err != nil {
		return errors.Wrap(err, "save mint")
	}
	if _, err := c.slots.Put(db, slot, s); err != nil {
		return errors.Wrap(err, "save slot")
	}
	return nil
}
