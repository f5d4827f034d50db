package custodytest

import "github.com/iov-one/custody"

// Tx is a transaction carrying a single message, without any
// serialization.
type Tx struct {
	Msg custody.Msg
	// Err if set is returned by GetMsg instead of the message.
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("custodytest transactions are never serialized")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("custodytest transactions are never serialized")
}

// Msg is a message routed by its path alone.
type Msg struct {
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
