/*
Package errors implements custom error interfaces for custody.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. Every error returned to a
client must wrap one of the root errors declared here, so that the ABCI code
tells the caller which class of failure happened:

	ErrPrecondition, ErrInsufficientAmount, ErrAmount   the state does not allow the operation
	ErrUnauthorized                                     missing signer or slot linkage mismatch
	ErrNotFound                                         the escrow is gone (claimed or cancelled)

Errors returned by the token ledger are wrapped but never re-categorized, so
a ledger rejection reaches the caller with its original code.

If you want to register a custom error - use Register(code, description).
For reusing errors - use ErrXyz.New, ErrXyz.Newf or Wrap(ErrXyz, "...").

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
for the error

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
