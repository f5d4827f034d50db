/*
Package utils contains the decorators shared by every custody handler
stack: logging, panic recovery, savepoints and action tagging.
*/
package utils
