package sigs

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
)

type signersKey struct{}

// withSigners stores the verified signers. Only the signature decorator
// may call it.
func withSigners(ctx custody.Context, signers []custody.Address) custody.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate resolves the human signers of a transaction. Combine it
// with x.ProgramAuth to also accept program signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns the verified signers in signature order. The first
// one is the main signer. An unsigned context returns nil.
func (Authenticate) GetSigners(ctx custody.Context) []custody.Address {
	signers, _ := ctx.Value(signersKey{}).([]custody.Address)
	return signers
}

func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}
