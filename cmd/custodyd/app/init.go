package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/token"
)

var (
	// TokenProgram is the identity the slot addresses of a development
	// chain are derived from.
	TokenProgram = custody.NewAddress([]byte("custody/token"))
	// EscrowProgram is the identity the custody authority of a
	// development chain is derived from.
	EscrowProgram = custody.NewAddress([]byte("custody/escrow"))
)

const defaultSupply = 1000000

// GenInitOptions will produce the genesis app_state of a development
// chain: both programs configured, one mint and one funded slot.
//
// The optional arguments are the escrow mode and the initial supply. The
// generated key controls both the mint and the funded slot and is printed
// on the standard output.
func GenInitOptions(args []string) (json.RawMessage, error) {
	mode := escrow.ModePooled
	if len(args) > 0 {
		mode = args[0]
	}
	supply := uint64(defaultSupply)
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "supply %q", args[1])
		}
		supply = n
	}

	owner, keys, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	fmt.Println(keys)

	conf := escrow.DefaultConfiguration()
	conf.ProgramID = EscrowProgram
	conf.Mode = mode
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "escrow configuration")
	}

	mint := custody.NewAddress(append([]byte("custody/mint/"), owner...))
	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"token":  token.Configuration{ProgramID: TokenProgram},
			"escrow": conf,
		},
		"token": map[string]interface{}{
			"mints": []interface{}{
				map[string]interface{}{
					"address":   mint,
					"authority": owner,
					"decimals":  6,
				},
			},
			"slots": []interface{}{
				map[string]interface{}{
					"owner":  owner,
					"mint":   mint,
					"nonce":  0,
					"amount": supply,
				},
			},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

type output struct {
	Address custody.Address `json:"address"`
	Pubkey  string          `json:"pub_key"`
	Seed    string          `json:"secret"`
}

// GenerateKey returns the address of a new key, along with a json
// representation of the key that allows to restore it.
func GenerateKey() (custody.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{
		Address: addr,
		Pubkey:  hex.EncodeToString(pubKey),
		Seed:    hex.EncodeToString(privKey.Seed()),
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
