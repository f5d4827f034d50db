/*
Package custody defines all common interfaces to tie together the various
subpackages of a key-less token escrow application, as well as
implementations of some of the simpler components (when interfaces would be
too much overhead).

Every identity is a 32 byte Address. Addresses held by people are ed25519
public keys. Addresses held by programs are derived from a list of seeds and
the program identity with CreateProgramAddress; such an address is never a
valid curve point, so no private key exists for it and the only way to act
on its behalf is to present a ProgramSignature that re-derives it.

We pass context through context.Context between app, middleware, and
handlers. There should exist two functions for every XYZ of type T that we
want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package custody
