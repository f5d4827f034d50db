package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	amino "github.com/tendermint/go-amino"
)

const confPackage = "escrow"

const (
	// DefaultSeed is used to derive the custody authority when the
	// configuration does not declare one.
	DefaultSeed = "custody-escrow"

	// ModePooled moves the deposit into a separate custody slot.
	ModePooled = "pooled"
	// ModeDirect hands over the source slot itself.
	ModeDirect = "direct"
)

var cdc = amino.NewCodec()

// Configuration of the escrow program. It is set once at genesis, all
// records of a chain follow the same mode.
type Configuration struct {
	ProgramID custody.Address `json:"program_id"`
	Seed      string          `json:"seed"`
	Mode      string          `json:"mode"`
	// SweepResidual returns whatever the claim leaves in the custody slot
	// to the initializer.
	SweepResidual bool `json:"sweep_residual"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration returns the configuration defaults. Only the
// program identity must always be provided.
func DefaultConfiguration() Configuration {
	return Configuration{
		Seed: DefaultSeed,
		Mode: ModePooled,
	}
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(*c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Configuration) Validate() error {
	if err := c.ProgramID.Validate(); err != nil {
		return errors.Wrap(err, "program id")
	}
	if len(c.Seed) == 0 || len(c.Seed) > custody.MaxSeedLength {
		return errors.Wrapf(errors.ErrInput, "seed %q", c.Seed)
	}
	switch c.Mode {
	case ModePooled, ModeDirect:
	default:
		return errors.Wrapf(errors.ErrInput, "mode %q", c.Mode)
	}
	return nil
}

// Authority derives the custody authority and the program signature that
// authorizes it.
func (c *Configuration) Authority() (custody.Address, custody.ProgramSignature, error) {
	addr, bump, err := custody.DeriveAuthority(c.Seed, c.ProgramID)
	if err != nil {
		return nil, custody.ProgramSignature{}, errors.Wrap(err, "derive authority")
	}
	return addr, custody.NewAuthoritySignature(c.Seed, c.ProgramID, bump), nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPackage, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
