//
// Copyright 2021, Offchain Labs, Inc. All rights reserved.
//

package util

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Added to an L1 contract's address to give the address it acts from on L2
var AddressAliasOffset = uint256.MustFromHex("0x1111000000000000000000000000000000001111")

var InverseAddressAliasOffset = new(uint256.Int).Sub(
	new(uint256.Int).Lsh(uint256.NewInt(1), 160),
	AddressAliasOffset,
)

var addressMask = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 160), uint256.NewInt(1))

func addressPlus(address common.Address, offset *uint256.Int) common.Address {
	sum := new(uint256.Int).SetBytes(address.Bytes())
	sum.Add(sum, offset)
	sum.And(sum, addressMask)
	return common.Address(sum.Bytes20())
}

// RemapL1Address computes (l1Addr + AddressAliasOffset) mod 2^160
func RemapL1Address(l1Addr common.Address) common.Address {
	return addressPlus(l1Addr, AddressAliasOffset)
}

func InverseRemapL1Address(l2Addr common.Address) common.Address {
	return addressPlus(l2Addr, InverseAddressAliasOffset)
}

func AddressToHash(address common.Address) common.Hash {
	return common.BytesToHash(address.Bytes())
}
