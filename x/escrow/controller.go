package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/token"
)

// Ledger is the part of the token ledger an escrow relies on.
type Ledger interface {
	Slot(db custody.ReadOnlyKVStore, addr custody.Address) (*token.Slot, error)
	Transfer(ctx custody.Context, db custody.KVStore, from, to custody.Address, amount uint64) error
	SetAuthority(ctx custody.Context, db custody.KVStore, slot, authority custody.Address) error
	AssociatedSlot(db custody.ReadOnlyKVStore, owner, mint custody.Address) (custody.Address, error)
	EnsureAssociatedSlot(db custody.KVStore, owner, mint custody.Address) (custody.Address, error)
}

var _ Ledger = (*token.Controller)(nil)

// Controller implements the escrow state transitions. Each method is
// expected to run inside a single savepoint: on error the caller must
// discard every write.
type Controller struct {
	ledger Ledger
	auth   x.Authenticator
	bucket orm.ModelBucket
}

// NewController returns a controller moving tokens with given ledger. The
// authenticator identifies the human signers of a transaction.
func NewController(ledger Ledger, auth x.Authenticator) *Controller {
	return &Controller{
		ledger: ledger,
		auth:   auth,
		bucket: NewBucket(),
	}
}

// Escrow returns the record stored under given id.
func (c *Controller) Escrow(db custody.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	var e Escrow
	if err := c.bucket.One(db, id, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %X", id)
	}
	return &e, nil
}

// Create stores a new escrow and transfers control over the deposit to
// the custody authority. The id of the new record is returned.
func (c *Controller) Create(ctx custody.Context, db custody.KVStore, msg *CreateMsg) ([]byte, *Escrow, error) {
	if err := msg.Validate(); err != nil {
		return nil, nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	authority, _, err := conf.Authority()
	if err != nil {
		return nil, nil, err
	}

	if !c.auth.HasAddress(ctx, msg.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initializer signature missing")
	}
	source, err := c.ledger.Slot(db, msg.SourceSlot)
	if err != nil {
		return nil, nil, errors.Wrap(err, "source slot")
	}
	if !source.Authority.Equals(msg.Initializer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initializer does not control the source slot")
	}
	if source.Amount < msg.DepositAmount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "source balance %d, deposit %d", source.Amount, msg.DepositAmount)
	}

	escrow := Escrow{
		Initializer: msg.Initializer,
		SourceSlot:  msg.SourceSlot,
		ClaimAmount: msg.ClaimAmount,
	}
	switch conf.Mode {
	case ModePooled:
		if msg.CustodySlot == nil {
			return nil, nil, errors.Wrap(errors.ErrInput, "custody slot required")
		}
		if msg.CustodySlot.Equals(msg.SourceSlot) {
			return nil, nil, errors.Wrap(errors.ErrInput, "custody slot must differ from the source slot")
		}
		custodySlot, err := c.ledger.Slot(db, msg.CustodySlot)
		if err != nil {
			return nil, nil, errors.Wrap(err, "custody slot")
		}
		if !custodySlot.Mint.Equals(source.Mint) {
			return nil, nil, errors.Wrap(errors.ErrPrecondition, "custody slot holds a different token")
		}
		escrow.CustodySlot = msg.CustodySlot
		escrow.DepositAmount = msg.DepositAmount
		escrow.Pooled = true
	case ModeDirect:
		if msg.CustodySlot != nil && !msg.CustodySlot.Equals(msg.SourceSlot) {
			return nil, nil, errors.Wrap(errors.ErrInput, "direct escrow holds the source slot")
		}
		escrow.CustodySlot = msg.SourceSlot
	default:
		return nil, nil, errors.Wrapf(errors.ErrState, "mode %q", conf.Mode)
	}

	key, err := c.bucket.Put(db, nil, &escrow)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot store escrow")
	}
	if escrow.Pooled {
		if err := c.ledger.Transfer(ctx, db, escrow.SourceSlot, escrow.CustodySlot, escrow.DepositAmount); err != nil {
			return nil, nil, errors.Wrap(err, "deposit")
		}
	}
	if err := c.ledger.SetAuthority(ctx, db, escrow.CustodySlot, authority); err != nil {
		return nil, nil, errors.Wrap(err, "hand over custody slot")
	}
	return key, &escrow, nil
}

// Claim pays the claim amount into the receiving slot and destroys the
// record. Anybody can claim. A missing receiving slot is created when it
// is the associated slot of the main signer.
func (c *Controller) Claim(ctx custody.Context, db custody.KVStore, msg *ClaimMsg) (*Escrow, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	_, sig, err := conf.Authority()
	if err != nil {
		return nil, err
	}
	escrow, err := c.Escrow(db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	if !msg.CustodySlot.Equals(escrow.CustodySlot) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "custody slot does not belong to the escrow")
	}
	custodySlot, err := c.ledger.Slot(db, escrow.CustodySlot)
	if err != nil {
		return nil, errors.Wrap(err, "custody slot")
	}
	if err := c.prepareReceiver(ctx, db, custodySlot.Mint, msg.ReceivingSlot); err != nil {
		return nil, err
	}

	signed := custody.WithProgramSignature(ctx, sig)
	if err := c.ledger.Transfer(signed, db, escrow.CustodySlot, msg.ReceivingSlot, escrow.ClaimAmount); err != nil {
		return nil, errors.Wrap(err, "pay claim")
	}
	if conf.SweepResidual {
		if err := c.sweep(signed, db, escrow); err != nil {
			return nil, err
		}
	}
	if err := c.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	return escrow, nil
}

func (c *Controller) prepareReceiver(ctx custody.Context, db custody.KVStore, mint, receiving custody.Address) error {
	slot, err := c.ledger.Slot(db, receiving)
	switch {
	case err == nil:
		if !slot.Mint.Equals(mint) {
			return errors.Wrap(errors.ErrPrecondition, "receiving slot holds a different token")
		}
		return nil
	case !errors.ErrNotFound.Is(err):
		return err
	}

	taker := x.MainSigner(ctx, c.auth)
	if taker == nil {
		return errors.Wrap(err, "receiving slot")
	}
	assoc, aerr := c.ledger.AssociatedSlot(db, taker, mint)
	if aerr != nil {
		return aerr
	}
	if !assoc.Equals(receiving) {
		return errors.Wrap(err, "receiving slot")
	}
	_, err = c.ledger.EnsureAssociatedSlot(db, taker, mint)
	return err
}

// sweep returns what the claim left behind to the initializer. A pooled
// custody slot is drained into the source slot, a direct one is handed
// back.
func (c *Controller) sweep(signed custody.Context, db custody.KVStore, escrow *Escrow) error {
	if !escrow.Pooled {
		return errors.Wrap(c.ledger.SetAuthority(signed, db, escrow.SourceSlot, escrow.Initializer), "return source slot")
	}
	slot, err := c.ledger.Slot(db, escrow.CustodySlot)
	if err != nil {
		return errors.Wrap(err, "custody slot")
	}
	if slot.Amount == 0 {
		return nil
	}
	return errors.Wrap(c.ledger.Transfer(signed, db, escrow.CustodySlot, escrow.SourceSlot, slot.Amount), "sweep residual")
}

// Cancel gives the deposit back to the initializer and destroys the
// record. Only the initializer can cancel.
func (c *Controller) Cancel(ctx custody.Context, db custody.KVStore, msg *CancelMsg) (*Escrow, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	_, sig, err := conf.Authority()
	if err != nil {
		return nil, err
	}
	escrow, err := c.Escrow(db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	if err := c.authorizeCancel(ctx, escrow, msg); err != nil {
		return nil, err
	}

	signed := custody.WithProgramSignature(ctx, sig)
	if escrow.Pooled {
		slot, err := c.ledger.Slot(db, escrow.CustodySlot)
		if err != nil {
			return nil, errors.Wrap(err, "custody slot")
		}
		if err := c.ledger.Transfer(signed, db, escrow.CustodySlot, escrow.SourceSlot, slot.Amount); err != nil {
			return nil, errors.Wrap(err, "refund")
		}
	} else {
		if err := c.ledger.SetAuthority(signed, db, escrow.SourceSlot, escrow.Initializer); err != nil {
			return nil, errors.Wrap(err, "return source slot")
		}
	}
	if err := c.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	return escrow, nil
}

func (c *Controller) authorizeCancel(ctx custody.Context, escrow *Escrow, msg *CancelMsg) error {
	if !c.auth.HasAddress(ctx, escrow.Initializer) {
		return errors.Wrap(errors.ErrUnauthorized, "initializer signature missing")
	}
	if !msg.SourceSlot.Equals(escrow.SourceSlot) || !msg.CustodySlot.Equals(escrow.CustodySlot) {
		return errors.Wrap(errors.ErrUnauthorized, "slots do not belong to the escrow")
	}
	return nil
}

// ByInitializer returns the ids of all active escrows of given initializer.
func (c *Controller) ByInitializer(db custody.ReadOnlyKVStore, initializer custody.Address) ([][]byte, error) {
	return c.bucket.ByIndex(db, "initializer", initializer)
}
