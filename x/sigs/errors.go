package sigs

import "github.com/iov-one/custody/errors"

// ErrInvalidSequence means a signature was made for another nonce than
// the one stored for the signer. Replayed transactions fail with it.
var ErrInvalidSequence = errors.Register(20, "invalid sequence number")
