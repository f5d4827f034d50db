package x

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
)

func TestAuth(t *testing.T) {
	a := custodytest.NewAddress()
	b := custodytest.NewAddress()
	c := custodytest.NewAddress()

	ctx1 := &custodytest.CtxAuth{Key: "foo"}
	ctx2 := &custodytest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          custody.Context
		auth         Authenticator
		mainSigner   custody.Address
		wantInCtx    custody.Address
		wantNotInCtx custody.Address
		wantAll      []custody.Address
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &custodytest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &custodytest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []custody.Address{a},
		},
		"signer b": {
			ctx: context.Background(),
			auth: ChainAuth(
				&custodytest.Auth{Signer: b},
				&custodytest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []custody.Address{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetSigners(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []custody.Address{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetSigners(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx) {
				t.Fatal("address that was expected in context not found")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx) {
				t.Fatal("address that was expected not to be in context found")
			}

			all := tc.auth.GetSigners(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			if !HasAllAddresses(tc.ctx, tc.auth, all) {
				t.Fatal("not all addresses found")
			}
			if !HasNAddresses(tc.ctx, tc.auth, all, len(all)) {
				t.Fatal("not all addresses found")
			}
			if HasNAddresses(tc.ctx, tc.auth, append(all, c), len(all)+1) {
				t.Fatal("unexpected address found")
			}
		})
	}
}

func TestProgramAuth(t *testing.T) {
	program := custody.NewAddress([]byte("program"))
	authority, bump, err := custody.DeriveAuthority("vault", program)
	assert.Nil(t, err)

	var auth ProgramAuth
	ctx := context.Background()
	assert.Equal(t, false, auth.HasAddress(ctx, authority))
	assert.Equal(t, 0, len(auth.GetSigners(ctx)))

	// a signature that does not derive a valid address is ignored
	bad := custody.ProgramSignature{Program: custody.Address("short")}
	ctx = custody.WithProgramSignature(ctx, bad)
	assert.Equal(t, 0, len(auth.GetSigners(ctx)))

	signed := custody.WithProgramSignature(ctx, custody.NewAuthoritySignature("vault", program, bump))
	assert.Equal(t, true, auth.HasAddress(signed, authority))
	assert.Equal(t, []custody.Address{authority}, auth.GetSigners(signed))
	assert.Equal(t, false, auth.HasAddress(signed, custodytest.NewAddress()))

	// the parent context is not affected
	assert.Equal(t, false, auth.HasAddress(ctx, authority))
}
