// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package arbutil

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const WordSize = 32

var ErrWordLength = errors.New("abi word must be exactly 32 bytes")
var ErrDirtyAddress = errors.New("address word has non-zero high bytes")

// EncodeWord right-aligns the value in a 32-byte big-endian word
func EncodeWord(value *uint256.Int) []byte {
	if value == nil {
		return make([]byte, WordSize)
	}
	word := value.Bytes32()
	return word[:]
}

func EncodeUint64Word(value uint64) []byte {
	return EncodeWord(uint256.NewInt(value))
}

func EncodeBoolWord(value bool) []byte {
	if value {
		return EncodeUint64Word(1)
	}
	return EncodeUint64Word(0)
}

func DecodeWord(word []byte) (*uint256.Int, error) {
	if len(word) != WordSize {
		return nil, fmt.Errorf("%w, got %d", ErrWordLength, len(word))
	}
	return new(uint256.Int).SetBytes(word), nil
}

// EncodeWords concatenates the words of a static tuple
func EncodeWords(values ...*uint256.Int) []byte {
	out := make([]byte, 0, len(values)*WordSize)
	for _, value := range values {
		out = append(out, EncodeWord(value)...)
	}
	return out
}

// DecodeWords reads count words from the head of data; trailing bytes are ignored
func DecodeWords(data []byte, count int) ([]*uint256.Int, error) {
	if len(data) < count*WordSize {
		return nil, fmt.Errorf("need %d bytes for %d words, have %d", count*WordSize, count, len(data))
	}
	words := make([]*uint256.Int, count)
	for i := range words {
		words[i] = new(uint256.Int).SetBytes(data[i*WordSize : (i+1)*WordSize])
	}
	return words, nil
}

func AddressToWord(address common.Address) []byte {
	return common.BytesToHash(address.Bytes()).Bytes()
}

// WordToAddress rejects words that do not fit in 160 bits
func WordToAddress(word []byte) (common.Address, error) {
	if len(word) != WordSize {
		return common.Address{}, fmt.Errorf("%w, got %d", ErrWordLength, len(word))
	}
	for _, b := range word[:WordSize-common.AddressLength] {
		if b != 0 {
			return common.Address{}, ErrDirtyAddress
		}
	}
	return common.BytesToAddress(word[WordSize-common.AddressLength:]), nil
}
