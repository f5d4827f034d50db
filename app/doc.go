/*
Package app contains the ABCI plumbing of a custody node: the message
router, the decorator chain, the committed and cached stores and the
BaseApp that dispatches CheckTx and DeliverTx to a handler stack.
*/
package app
