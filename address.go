package custody

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/iov-one/custody/errors"
)

// AddressLength is the length of all addresses. Public keys and program
// derived addresses share the same size.
const AddressLength = 32

// Address identifies a signer, a program or a token slot.
//
// It will be of size AddressLength.
type Address []byte

// NewAddress hashes given data into an address. The result is not checked
// against the curve, use CreateProgramAddress for key-less addresses.
func NewAddress(data []byte) Address {
	h := sha256.Sum256(data)
	return h[:]
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share the underlying array.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// String returns the base58 representation, the same format wallets use to
// display public keys.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return base58.Encode(a)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: %X", []byte(a))
	}
	return nil
}

// MarshalJSON provides a base58 representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts base58 encoded addresses. A "hex:" prefix switches
// to hexadecimal decoding.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes the text form of an address. Empty input is a nil
// address.
func ParseAddress(enc string) (Address, error) {
	if len(enc) == 0 {
		return nil, nil
	}

	var addr Address
	if chunks := strings.SplitN(enc, ":", 2); len(chunks) == 2 {
		if chunks[0] != "hex" {
			return nil, errors.Wrapf(errors.ErrType, "unknown format %q", chunks[0])
		}
		raw, err := hex.DecodeString(chunks[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr = raw
	} else {
		addr = base58.Decode(enc)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// MustParseAddress is like ParseAddress but panics on error. Use it only
// for constants.
func MustParseAddress(enc string) Address {
	addr, err := ParseAddress(enc)
	if err != nil {
		panic(err)
	}
	return addr
}
