//
// Copyright 2022, Offchain Labs, Inc. All rights reserved.
//

package testhelpers

import (
	"encoding/binary"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

type PseudoRandomDataSource struct {
	salt  common.Hash
	index uint64
}

// pseudorandom source that repeats on different executions
// T param is to make sure it's only used in testing
func NewPseudoRandomDataSource(_ *testing.T, saltParam uint64) *PseudoRandomDataSource {
	salt := uint256.NewInt(saltParam).Bytes32()
	return &PseudoRandomDataSource{
		salt: crypto.Keccak256Hash([]byte{'s'}, salt[:]),
	}
}

func (r *PseudoRandomDataSource) GetHash() common.Hash {
	r.index++
	index := uint256.NewInt(r.index).Bytes32()
	return crypto.Keccak256Hash(r.salt[:], index[:])
}

func (r *PseudoRandomDataSource) GetAddress() common.Address {
	return common.BytesToAddress(r.GetHash().Bytes()[:20])
}

func (r *PseudoRandomDataSource) GetUint64() uint64 {
	return binary.BigEndian.Uint64(r.GetHash().Bytes()[:8])
}

func (r *PseudoRandomDataSource) GetU256() *uint256.Int {
	return new(uint256.Int).SetBytes(r.GetHash().Bytes())
}

// Data with a mix of zero and non-zero bytes
func (r *PseudoRandomDataSource) GetData(size int) []byte {
	ret := []byte{}
	for len(ret) < size {
		chunk := r.GetHash().Bytes()
		if chunk[0]%2 == 0 {
			chunk = make([]byte, len(chunk)/2)
		}
		ret = append(ret, chunk...)
	}
	return ret[:size]
}
