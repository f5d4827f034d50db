package custody

import (
	"crypto/sha256"

	"github.com/agl/ed25519/edwards25519"
	"github.com/iov-one/custody/errors"
)

const (
	// MaxSeeds is the maximum number of seeds, including the bump, that
	// can be used to derive a program address.
	MaxSeeds = 16

	// MaxSeedLength is the maximum size of a single seed.
	MaxSeedLength = 32

	programAddressMarker = "ProgramDerivedAddress"
)

// CreateProgramAddress computes the address for given seeds and program.
//
// The address is the sha256 of all seeds, the program identity and a
// constant marker. An address that happens to be a valid ed25519 point is
// rejected, because a private key could exist for it.
func CreateProgramAddress(seeds [][]byte, program Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return nil, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	if err := program.Validate(); err != nil {
		return nil, errors.Wrap(err, "program")
	}

	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, errors.Wrapf(errors.ErrInput, "seed %d too long", i)
		}
		_, _ = h.Write(s)
	}
	_, _ = h.Write(program)
	_, _ = h.Write([]byte(programAddressMarker))
	addr := h.Sum(nil)

	if IsOnCurve(addr) {
		return nil, errors.Wrap(errors.ErrInput, "derived address is a valid public key")
	}
	return addr, nil
}

// FindProgramAddress searches for a bump seed that, appended to given seeds,
// produces an off-curve address. Bumps are tried from 255 downward and the
// first match is returned, which makes the result deterministic.
func FindProgramAddress(seeds [][]byte, program Address) (Address, uint8, error) {
	if len(seeds)+1 > MaxSeeds {
		return nil, 0, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, 0, errors.Wrapf(errors.ErrInput, "seed %d too long", i)
		}
	}
	if err := program.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "program")
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		// Input was validated, so the only failure left is an
		// address that lies on the curve.
		if addr, err := CreateProgramAddress(withBump, program); err == nil {
			return addr, uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no viable bump seed")
}

// DeriveAuthority returns the custody authority of a program: the key-less
// address derived from a fixed seed and the program identity, together
// with the bump needed to sign for it.
func DeriveAuthority(seed string, program Address) (Address, uint8, error) {
	return FindProgramAddress([][]byte{[]byte(seed)}, program)
}

// IsOnCurve returns true if given bytes decode to a point of the ed25519
// curve.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	var buf [32]byte
	copy(buf[:], b)
	var p edwards25519.ExtendedGroupElement
	return p.FromBytes(&buf)
}

// ProgramSignature is the authorization a program presents when acting on
// behalf of one of its derived addresses. It carries everything needed to
// re-derive the address and nothing secret.
type ProgramSignature struct {
	Program Address
	Seeds   [][]byte
	Bump    uint8
}

// NewAuthoritySignature builds the signature matching DeriveAuthority.
func NewAuthoritySignature(seed string, program Address, bump uint8) ProgramSignature {
	return ProgramSignature{
		Program: program,
		Seeds:   [][]byte{[]byte(seed)},
		Bump:    bump,
	}
}

// Address re-derives the address this signature authorizes.
func (s ProgramSignature) Address() (Address, error) {
	seeds := make([][]byte, 0, len(s.Seeds)+1)
	seeds = append(seeds, s.Seeds...)
	seeds = append(seeds, []byte{s.Bump})
	return CreateProgramAddress(seeds, s.Program)
}

// Authorizes returns true if the signature re-derives to given address.
func (s ProgramSignature) Authorizes(addr Address) bool {
	derived, err := s.Address()
	if err != nil {
		return false
	}
	return derived.Equals(addr)
}
