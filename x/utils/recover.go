package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery turns a panic of any later decorator or handler into an
// ErrPanic failure of the transaction. The panic is logged with the path
// of the message that caused it.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (_ *custody.CheckResult, err error) {
	defer r.recover(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (r Recovery) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (_ *custody.DeliverResult, err error) {
	defer r.recover(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recover must be deferred directly.
func (Recovery) recover(ctx custody.Context, tx custody.Tx, err *error) {
	if p := recover(); p != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", p)
		custody.GetLogger(ctx).Error("Transaction panic",
			"path", custody.GetPath(tx),
			"panic", p)
	}
}
