package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &custodytest.Decorator{}
	c2 := &custodytest.Decorator{}
	c3 := &custodytest.Decorator{}
	h := &custodytest.Handler{}

	var nilDecorator *custodytest.Decorator
	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		nilDecorator,
		c2,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	bg := context.Background()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(bg, nil, tx)
	assert.NoError(t, err)
	ctx := custody.WithHeight(bg, 4)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// A panic is turned into an error by the recovery decorator and
	// stops the call before the inner decorator.
	ctx = custody.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainAppendsDecorators(t *testing.T) {
	c1 := &custodytest.Decorator{}
	c2 := &custodytest.Decorator{DeliverErr: errors.ErrUnauthorized}
	h := &custodytest.Handler{}

	base := ChainDecorators(c1)
	stack := base.Chain(c2).WithHandler(h)

	_, err := stack.Deliver(context.Background(), nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, c1.DeliverCallCount())
	assert.Equal(t, 1, c2.DeliverCallCount())
	assert.Equal(t, 0, h.DeliverCallCount())

	// The base chain is not modified by Chain.
	_, err = base.WithHandler(h).Deliver(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}

// panicAtHeight panics when the block height is at least the given one.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	if h, _ := custody.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	if h, _ := custody.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}

func TestChainKeepsReceiver(t *testing.T) {
	c1 := &custodytest.Decorator{}
	c2 := &custodytest.Decorator{}
	c3 := &custodytest.Decorator{}

	base := ChainDecorators(c1, nil)
	left := base.Chain(c2)
	right := base.Chain(c3)

	assert.Len(t, base.chain, 1)
	assert.Equal(t, []custody.Decorator{c1, c2}, left.chain)
	assert.Equal(t, []custody.Decorator{c1, c3}, right.chain)
}
