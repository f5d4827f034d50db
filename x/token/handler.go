package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

const (
	createSlotCost   int64 = 100
	transferCost     int64 = 100
	setAuthorityCost int64 = 50
	mintToCost       int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&CreateSlotMsg{}, CreateSlotHandler{ctrl: ctrl})
	r.Handle(&TransferMsg{}, TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SetAuthorityMsg{}, SetAuthorityHandler{auth: auth, ctrl: ctrl})
	r.Handle(&MintToMsg{}, MintToHandler{ctrl: ctrl})
}

// RegisterQuery will register the buckets as "/mints" and "/slots"
func RegisterQuery(qr custody.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewSlotBucket().Register("slots", qr)
}

// CreateSlotHandler creates empty slots.
type CreateSlotHandler struct {
	ctrl *Controller
}

var _ custody.Handler = CreateSlotHandler{}

func (h CreateSlotHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg CreateSlotMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &custody.CheckResult{GasAllocated: createSlotCost}, nil
}

// Deliver returns the address of the new slot.
func (h CreateSlotHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg CreateSlotMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	addr, err := h.ctrl.CreateSlot(db, msg.Owner, msg.Mint, msg.Nonce)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Debug("slot created", "slot", addr, "owner", msg.Owner, "mint", msg.Mint)
	return &custody.DeliverResult{Data: addr}, nil
}

// TransferHandler moves tokens between slots.
type TransferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ custody.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg TransferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	slot, err := h.ctrl.Slot(db, msg.From)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, slot.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "slot authority signature missing")
	}
	return &custody.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg TransferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Transfer(ctx, db, msg.From, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// SetAuthorityHandler changes the authority of a slot.
type SetAuthorityHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ custody.Handler = SetAuthorityHandler{}

func (h SetAuthorityHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg SetAuthorityMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	slot, err := h.ctrl.Slot(db, msg.Slot)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, slot.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "slot authority signature missing")
	}
	return &custody.CheckResult{GasAllocated: setAuthorityCost}, nil
}

func (h SetAuthorityHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg SetAuthorityMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.SetAuthority(ctx, db, msg.Slot, msg.NewAuthority); err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("slot authority changed", "slot", msg.Slot, "authority", msg.NewAuthority)
	return &custody.DeliverResult{}, nil
}

// MintToHandler issues tokens.
type MintToHandler struct {
	ctrl *Controller
}

var _ custody.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg MintToMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Mint(db, msg.Mint); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: mintToCost}, nil
}

func (h MintToHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg MintToMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.MintTo(ctx, db, msg.Mint, msg.Slot, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}
