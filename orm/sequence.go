package orm

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// sequenceLength is the size of every generated key. Big endian encoding
// keeps the keys sorted in creation order.
const sequenceLength = 8

// Sequence is a persistent counter that hands out unique keys. Escrow
// records get their ids from it.
type Sequence struct {
	id []byte
}

// NewSequence returns the counter stored under "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal advances the counter and returns the new value as a key.
func (s *Sequence) NextVal(db custody.KVStore) ([]byte, error) {
	val, err := s.advance(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt advances the counter and returns the new value.
func (s *Sequence) NextInt(db custody.KVStore) (int64, error) {
	return s.advance(db)
}

// Latest returns the last value handed out, zero for an unused sequence.
func (s *Sequence) Latest(db custody.ReadOnlyKVStore) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, errors.Wrap(err, "cannot load sequence")
	}
	return DecodeSequence(raw), raw, nil
}

func (s *Sequence) advance(db custody.KVStore) (int64, error) {
	val, _, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	val++
	if err := db.Set(s.id, EncodeSequence(val)); err != nil {
		return 0, errors.Wrap(err, "cannot save sequence")
	}
	return val, nil
}

// DecodeSequence reads a stored counter. No data means zero.
func DecodeSequence(bz []byte) int64 {
	if len(bz) == 0 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(bz))
}

func EncodeSequence(val int64) []byte {
	bz := make([]byte, sequenceLength)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

// ValidateSequence checks that id could have been generated by a Sequence.
func ValidateSequence(id []byte) error {
	switch len(id) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	case sequenceLength:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "sequence of %d bytes", len(id))
	}
}
