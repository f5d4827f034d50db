/*
Package token implements the token ledger: mints and the slots holding
their balances.

A slot belongs to exactly one mint and has a single authority. Only the
authority can move tokens out of a slot or hand the slot over to somebody
else. The authority may be a human key or a program derived address, in
which case the owning program authorizes calls by attaching its program
signature to the context.

Slot addresses are derived from the owner, the mint and a nonce. The slot
with nonce zero is the associated slot of the owner for that mint.
*/
package token
