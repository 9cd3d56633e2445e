// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbutil"
)

func TestPrecompiledContracts(t *testing.T) {
	registry, err := BuildRegistry(DefaultPrecompileConfig(), nil)
	Require(t, err)
	blockNumber := uint64(0)
	contracts := registry.PrecompiledContracts(func() ExecutionContext {
		blockNumber++
		return ExecutionContext{BlockNumber: blockNumber, ChainID: uint256.NewInt(10)}
	})
	require.Len(t, contracts, 2)

	arbSys := contracts[ArbSysAddress]
	calldata := arbutil.Calldata("arbBlockNumber()")
	require.Equal(t, uint64(arbSysGasCost), arbSys.RequiredGas(calldata))
	output, err := arbSys.Run(calldata)
	Require(t, err)
	require.Equal(t, word(1), output)
	output, err = arbSys.Run(arbutil.Calldata("arbChainID()"))
	Require(t, err)
	require.Equal(t, word(10), output)

	_, err = arbSys.Run([]byte{1})
	if !errors.Is(err, vm.ErrExecutionReverted) {
		Fail(t, "expected revert, got", err)
	}
	require.Contains(t, err.Error(), "calldata too short")
}

func TestMergePrecompiles(t *testing.T) {
	registry, err := BuildRegistry(DefaultPrecompileConfig(), nil)
	Require(t, err)
	merged := registry.MergePrecompiles(vm.PrecompiledContractsBerlin, nil)
	require.Len(t, merged, len(vm.PrecompiledContractsBerlin)+2)
	require.Contains(t, merged, common.BytesToAddress([]byte{1}))

	output, err := merged[ArbGasInfoAddress].Run(arbutil.Calldata("getL1BaseFeeEstimate()"))
	Require(t, err)
	require.Equal(t, word(0), output)
}
