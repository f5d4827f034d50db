package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

const (
	createEscrowCost int64 = 300
	claimEscrowCost  int64 = 100
	cancelEscrowCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ledger Ledger) {
	ctrl := NewController(ledger, auth)
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ClaimMsg{}, ClaimHandler{ctrl: ctrl})
	r.Handle(&CancelMsg{}, CancelHandler{ctrl: ctrl})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// CreateHandler locks a deposit under the custody authority.
type CreateHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ custody.Handler = CreateHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg CreateMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Initializer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "initializer signature missing")
	}
	return &custody.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver stores the escrow and returns its id.
func (h CreateHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg CreateMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	key, escrow, err := h.ctrl.Create(ctx, db, &msg)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("escrow created",
		"id", key,
		"initializer", escrow.Initializer,
		"custody_slot", escrow.CustodySlot,
		"claim_amount", escrow.ClaimAmount)
	return &custody.DeliverResult{Data: key}, nil
}

// ClaimHandler pays out an escrow to the first caller.
type ClaimHandler struct {
	ctrl *Controller
}

var _ custody.Handler = ClaimHandler{}

// Check verifies the escrow is still active and the custody slot matches.
func (h ClaimHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg ClaimMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.ctrl.Escrow(db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	if !msg.CustodySlot.Equals(escrow.CustodySlot) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "custody slot does not belong to the escrow")
	}
	return &custody.CheckResult{GasAllocated: claimEscrowCost}, nil
}

func (h ClaimHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg ClaimMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.ctrl.Claim(ctx, db, &msg)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("escrow claimed",
		"id", msg.EscrowID,
		"receiving_slot", msg.ReceivingSlot,
		"amount", escrow.ClaimAmount)
	return &custody.DeliverResult{}, nil
}

// CancelHandler returns an escrow to its initializer.
type CancelHandler struct {
	ctrl *Controller
}

var _ custody.Handler = CancelHandler{}

// Check verifies the escrow is active and the initializer signed.
func (h CancelHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg CancelMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.ctrl.Escrow(db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.authorizeCancel(ctx, escrow, &msg); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: cancelEscrowCost}, nil
}

func (h CancelHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg CancelMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.ctrl.Cancel(ctx, db, &msg)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("escrow cancelled",
		"id", msg.EscrowID,
		"initializer", escrow.Initializer)
	return &custody.DeliverResult{}, nil
}
