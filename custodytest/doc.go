// Package custodytest provides mocks and helpers shared by the tests of
// all extensions.
package custodytest
