/*
Package x contains some standard extensions

Extensions are a combination of Handlers and Decorators that can be
plugged into the application. Each subpackage is one extension:

  - sigs checks ed25519 signatures and keeps replay protection nonces
  - token keeps token slots and moves balances between them
  - escrow locks tokens under a program authority until claimed or
    cancelled

This package holds the interfaces shared between extensions, most
importantly Authenticator.
*/
package x
