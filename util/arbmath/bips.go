// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package arbmath

import "github.com/holiman/uint256"

type Bips uint64

const OneInBips Bips = 10000

func PercentToBips(percentage uint64) Bips {
	return Bips(percentage) * 100
}

// U256MulByBips computes floor(value * bips / 10000), saturating on overflow
func U256MulByBips(value *uint256.Int, bips Bips) *uint256.Int {
	product, overflow := new(uint256.Int).MulOverflow(value, uint256.NewInt(uint64(bips)))
	if overflow {
		// divide first, losing at most the fractional part of the result
		quotient := new(uint256.Int).Div(value, uint256.NewInt(uint64(OneInBips)))
		return SaturatingU256Mul(quotient, uint256.NewInt(uint64(bips)))
	}
	return product.Div(product, uint256.NewInt(uint64(OneInBips)))
}

// UintMulByBips computes floor(value * bips / 10000) without intermediate overflow
func UintMulByBips(value uint64, bips Bips) uint64 {
	result := U256MulByBips(uint256.NewInt(value), bips)
	if !result.IsUint64() {
		return ^uint64(0)
	}
	return result.Uint64()
}
