// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package arbmath

import (
	"math/big"

	"github.com/holiman/uint256"
)

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var maxU256 = new(uint256.Int).SetAllOne()

// MaxU256 returns 2^256 - 1
func MaxU256() *uint256.Int {
	return new(uint256.Int).Set(maxU256)
}

// SaturatingUAdd add two integers without overflow
func SaturatingUAdd[T Unsigned](a, b T) T {
	sum := a + b
	if sum < a || sum < b {
		sum = ^T(0)
	}
	return sum
}

// SaturatingUMul multiply two integers without over/underflow
func SaturatingUMul[T Unsigned](a, b T) T {
	product := a * b
	if b != 0 && product/b != a {
		product = ^T(0)
	}
	return product
}

// SaturatingU256Add returns a + b, clipped to 2^256 - 1
func SaturatingU256Add(a, b *uint256.Int) *uint256.Int {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return MaxU256()
	}
	return sum
}

// SaturatingU256Mul returns a * b, clipped to 2^256 - 1
func SaturatingU256Mul(a, b *uint256.Int) *uint256.Int {
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return MaxU256()
	}
	return product
}

// U256DivOrZero returns a / b, or zero when b is zero
func U256DivOrZero(a, b *uint256.Int) *uint256.Int {
	if b.IsZero() {
		return new(uint256.Int)
	}
	return new(uint256.Int).Div(a, b)
}

func U256Clone(value *uint256.Int) *uint256.Int {
	if value == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(value)
}

func U256Equals(first, second *uint256.Int) bool {
	if first == nil || second == nil {
		return first == second
	}
	return first.Eq(second)
}

// U256FromDecimal parses a base-10 string into a word, rejecting values of 2^256 or more
func U256FromDecimal(text string) (*uint256.Int, bool) {
	parsed, ok := new(big.Int).SetString(text, 10)
	if !ok || parsed.Sign() < 0 {
		return nil, false
	}
	value, overflow := uint256.FromBig(parsed)
	if overflow {
		return nil, false
	}
	return value, true
}

func U256ToDecimal(value *uint256.Int) string {
	return value.ToBig().String()
}

func Gwei(amount uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(1_000_000_000))
}
