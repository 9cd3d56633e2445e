// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package util

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/testhelpers"
)

func TestAddressAliasing(t *testing.T) {
	cases := []struct {
		l1 string
		l2 string
	}{
		{"0x0000000000000000000000000000000000000000", "0x1111000000000000000000000000000000001111"},
		{"0xffffffffffffffffffffffffffffffffffffffff", "0x1111000000000000000000000000000000001110"},
		{"0xC1b634853Cb333D3aD8663715b08f41A3Aec47cc", "0xd2c734853cb333d3ad8663715b08f41a3aec58dd"},
		{"0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", "0xffffeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeffff"},
	}
	for _, c := range cases {
		l1 := common.HexToAddress(c.l1)
		l2 := RemapL1Address(l1)
		if l2 != common.HexToAddress(c.l2) {
			Fail(t, "alias of", c.l1, "should be", c.l2, "but got", l2)
		}
		if InverseRemapL1Address(l2) != l1 {
			Fail(t, "inverse alias of", l2, "did not return", l1)
		}
	}
}

func TestAliasRoundTrip(t *testing.T) {
	source := testhelpers.NewPseudoRandomDataSource(t, 1)
	for i := 0; i < 64; i++ {
		address := source.GetAddress()
		if InverseRemapL1Address(RemapL1Address(address)) != address {
			Fail(t, "round trip failed for", address)
		}
	}
}

func Fail(t *testing.T, printables ...interface{}) {
	t.Helper()
	testhelpers.FailImpl(t, printables...)
}
