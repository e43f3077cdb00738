package tranchetest

import (
	"testing"

	"github.com/tranche-io/tranche"
)

// ParseAddress takes a tranche address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// tranche.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) tranche.Address {
	t.Helper()

	addr, err := tranche.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
