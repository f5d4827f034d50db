package utils

import (
	"strings"

	"github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags a result with the full message path, for example
	// "escrow/claim".
	ActionKey = "action"
	// ModuleKey tags a result with the extension that handled it, for
	// example "escrow".
	ModuleKey = "module"
)

// ActionTagger tags every successful delivery with the path of its
// message and the module handling it. Clients subscribe to escrow
// creations, claims and cancellations with those tags.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends the tags on the result if there is a success.
func (ActionTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	// Fail before dispatching if the message cannot be read.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	path := msg.Path()
	module := path
	if i := strings.Index(path, "/"); i > 0 {
		module = path[:i]
	}
	res.Tags = append(res.Tags,
		common.KVPair{Key: []byte(ActionKey), Value: []byte(path)},
		common.KVPair{Key: []byte(ModuleKey), Value: []byte(module)},
	)
	return res, nil
}
