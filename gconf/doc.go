/*
Package gconf stores the configuration of each extension in the
application state.

A configuration is read from the "conf" section of the genesis file once,
validated and written under the "_c:<package>" key. Every node then reads
the same values for as long as the chain lives. There is no message to
change a configuration after genesis.

A missing or invalid configuration is a broken application state. Load
returns the error and the transaction fails.
*/
package gconf
