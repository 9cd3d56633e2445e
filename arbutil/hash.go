package arbutil

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PaddedKeccak256 pads each argument to 32 bytes, concatenates and returns
// keccak256 hash of the result.
func PaddedKeccak256(args ...[]byte) common.Hash {
	var data []byte
	for _, arg := range args {
		data = append(data, common.BytesToHash(arg).Bytes()...)
	}
	return crypto.Keccak256Hash(data)
}

// Selector is the first four bytes of the keccak256 of a canonical signature
func Selector(signature string) [4]byte {
	var selector [4]byte
	copy(selector[:], crypto.Keccak256([]byte(signature))[:4])
	return selector
}

// Calldata prefixes the selector of signature to the given argument words
func Calldata(signature string, args ...[]byte) []byte {
	selector := Selector(signature)
	data := append([]byte{}, selector[:]...)
	for _, arg := range args {
		data = append(data, arg...)
	}
	return data
}
