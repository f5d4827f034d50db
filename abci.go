package custody

import (
	"fmt"

	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Codespace is set on every failed response, so that clients can tell the
// error codes of this application from those of tendermint.
const Codespace = "custody"

// DeliverOrError returns the abci response for DeliverTx: the error
// if present, else the successful result.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError returns the abci response for CheckTx: the error if
// present, else the successful result.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// ToABCI converts our internal type into an abci response
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// ToABCI converts our internal type into an abci response
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverTxError converts any error into an abci.ResponseDeliverTx.
// Unregistered errors are redacted unless debug is set.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := failure("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{
		Code:      code,
		Codespace: Codespace,
		Log:       log,
	}
}

// CheckTxError converts any error into an abci.ResponseCheckTx.
// Unregistered errors are redacted unless debug is set.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := failure("cannot check tx", err, debug)
	return abci.ResponseCheckTx{
		Code:      code,
		Codespace: Codespace,
		Log:       log,
	}
}

// QueryError converts any error into an abci.ResponseQuery. Queries never
// expose a stack trace.
func QueryError(err error) abci.ResponseQuery {
	code, log := failure("cannot query", err, false)
	return abci.ResponseQuery{
		Code:      code,
		Codespace: Codespace,
		Log:       log,
	}
}

func failure(action string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, fmt.Sprintf("%s: %s", action, log)
}
