package x

import (
	"github.com/iov-one/custody"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetSigners reveals all addresses that authorized the current
	// call.
	GetSigners(custody.Context) []custody.Address
	// HasAddress checks if any signer matches this address
	HasAddress(custody.Context, custody.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators
func (m MultiAuth) GetSigners(ctx custody.Context) []custody.Address {
	var res []custody.Address
	for _, impl := range m.impls {
		add := impl.GetSigners(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// ProgramAuth authenticates the addresses of all program signatures
// attached to the context. A program signature cannot be forged by a
// transaction, it is only attached by the program that owns the seeds.
type ProgramAuth struct{}

var _ Authenticator = ProgramAuth{}

// GetSigners returns the re-derived address of every valid program
// signature in the context.
func (ProgramAuth) GetSigners(ctx custody.Context) []custody.Address {
	sigs := custody.GetProgramSignatures(ctx)
	res := make([]custody.Address, 0, len(sigs))
	for _, s := range sigs {
		addr, err := s.Address()
		if err != nil {
			continue
		}
		res = append(res, addr)
	}
	return res
}

// HasAddress returns true if any program signature in the context derives
// given address.
func (ProgramAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range custody.GetProgramSignatures(ctx) {
		if s.Authorizes(addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise nil
func MainSigner(ctx custody.Context, auth Authenticator) custody.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx custody.Context, auth Authenticator, required []custody.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are
// also in context.
func HasNAddresses(ctx custody.Context, auth Authenticator, required []custody.Address, n int) bool {
	if n <= 0 {
		return true
	}

	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}
