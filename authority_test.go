package custody_test

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

var programID = custody.NewAddress([]byte("escrow-program"))

func TestDeriveAuthorityIsDeterministic(t *testing.T) {
	a1, bump1, err := custody.DeriveAuthority("custody-escrow", programID)
	require.NoError(t, err)
	a2, bump2, err := custody.DeriveAuthority("custody-escrow", programID)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, bump1, bump2)
	assert.NoError(t, a1.Validate())
}

func TestDeriveAuthorityIsKeyless(t *testing.T) {
	for _, seed := range []string{"custody-escrow", "a", "another-seed", ""} {
		addr, _, err := custody.DeriveAuthority(seed, programID)
		require.NoError(t, err)
		assert.False(t, custody.IsOnCurve(addr), "seed %q", seed)
	}
}

func TestDeriveAuthorityDependsOnInputs(t *testing.T) {
	base, _, err := custody.DeriveAuthority("custody-escrow", programID)
	require.NoError(t, err)

	otherSeed, _, err := custody.DeriveAuthority("custody-escrow-2", programID)
	require.NoError(t, err)
	assert.False(t, base.Equals(otherSeed))

	otherProgram, _, err := custody.DeriveAuthority("custody-escrow", custody.NewAddress([]byte("token")))
	require.NoError(t, err)
	assert.False(t, base.Equals(otherProgram))
}

func TestPublicKeysAreOnCurve(t *testing.T) {
	for i := 0; i < 10; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		assert.True(t, custody.IsOnCurve(pub))
	}
	assert.False(t, custody.IsOnCurve([]byte("too short")))
}

func TestFindProgramAddressBumpIsHighestViable(t *testing.T) {
	seeds := [][]byte{[]byte("custody-escrow")}
	addr, bump, err := custody.FindProgramAddress(seeds, programID)
	require.NoError(t, err)

	// Every higher bump must have produced an on-curve address.
	for b := 255; b > int(bump); b-- {
		_, err := custody.CreateProgramAddress(append(seeds, []byte{uint8(b)}), programID)
		require.Error(t, err)
	}
	got, err := custody.CreateProgramAddress(append(seeds, []byte{bump}), programID)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestCreateProgramAddressLimits(t *testing.T) {
	long := bytes.Repeat([]byte{1}, custody.MaxSeedLength+1)
	_, err := custody.CreateProgramAddress([][]byte{long}, programID)
	assert.True(t, errors.ErrInput.Is(err))

	many := make([][]byte, custody.MaxSeeds+1)
	_, err = custody.CreateProgramAddress(many, programID)
	assert.True(t, errors.ErrInput.Is(err))

	_, _, err = custody.FindProgramAddress(make([][]byte, custody.MaxSeeds), programID)
	assert.True(t, errors.ErrInput.Is(err))

	_, _, err = custody.DeriveAuthority("seed", custody.Address("bad"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestProgramSignature(t *testing.T) {
	authority, bump, err := custody.DeriveAuthority("custody-escrow", programID)
	require.NoError(t, err)

	sig := custody.NewAuthoritySignature("custody-escrow", programID, bump)
	assert.True(t, sig.Authorizes(authority))

	wrongBump := custody.NewAuthoritySignature("custody-escrow", programID, bump-1)
	assert.False(t, wrongBump.Authorizes(authority))

	wrongSeed := custody.NewAuthoritySignature("other", programID, bump)
	assert.False(t, wrongSeed.Authorizes(authority))

	wrongProgram := custody.NewAuthoritySignature("custody-escrow", custody.NewAddress([]byte("evil")), bump)
	assert.False(t, wrongProgram.Authorizes(authority))
}
