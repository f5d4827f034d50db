/*
Package server contains the commands shared by every node binary: adding
the application state to a genesis file, validating a genesis file and
serving an application over the abci socket.
*/
package server
