/*
Package escrow implements a custodial escrow over token slots.

An initializer locks tokens by handing the authority of a slot to the
custody authority of this program: an address derived from a fixed seed
and the program identity, for which no private key exists. From then on
only this package can move the tokens, by presenting a program signature
to the token ledger.

Depending on the configured mode, the deposit is either moved into a
separate custody slot (pooled) or the source slot itself is handed over
(direct).

Anybody can claim an escrow. The first valid claim receives the claim
amount and destroys the record, so every later claim or cancel fails with
ErrNotFound. The initializer can cancel an escrow that was not claimed yet
and regain control of the deposit.
*/
package escrow
