// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type addr = common.Address
type huge = *uint256.Int
type ctx = ExecutionContext

// ExecutionContext carries the ambient facts of one call. Handlers never modify it.
type ExecutionContext struct {
	BlockNumber uint64
	ChainID     *uint256.Int // zero or nil defers to the configured chain id
	GasPrice    *uint256.Int
	Caller      common.Address
	CallStack   []common.Address
	CallValue   *uint256.Int
	Timestamp   uint64

	// calldata of the enclosing top-level transaction, when the host knows it
	TxCalldata []byte
}

// PrecompileResult is produced once per call and never retained
type PrecompileResult struct {
	Success bool
	Output  []byte // a whole number of 32-byte words
	GasUsed uint64
	Error   string
}

func failure(err error) PrecompileResult {
	return PrecompileResult{Error: err.Error()}
}
