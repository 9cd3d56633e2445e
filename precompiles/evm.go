// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
)

// evmPrecompile lets a go-ethereum EVM call a registered handler
type evmPrecompile struct {
	address  common.Address
	registry *Registry
	context  func() ExecutionContext
}

func (p *evmPrecompile) RequiredGas(input []byte) uint64 {
	handler, ok := p.registry.GetHandler(p.address)
	if !ok {
		return 0
	}
	return handler.GasCost(input)
}

// Run reverts with the handler's error message on failure
func (p *evmPrecompile) Run(input []byte) ([]byte, error) {
	var c ExecutionContext
	if p.context != nil {
		c = p.context()
	}
	result := p.registry.HandleCall(p.address, input, c)
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", vm.ErrExecutionReverted, result.Error)
	}
	return result.Output, nil
}

// PrecompiledContracts returns the registry's handlers in the form a go-ethereum
// EVM installs. context is consulted once per call and may be nil.
func (r *Registry) PrecompiledContracts(context func() ExecutionContext) map[common.Address]vm.PrecompiledContract {
	contracts := make(map[common.Address]vm.PrecompiledContract)
	for _, address := range r.Addresses() {
		contracts[address] = &evmPrecompile{
			address:  address,
			registry: r,
			context:  context,
		}
	}
	return contracts
}

// MergePrecompiles adds the registry's contracts to a copy of base, such as vm.PrecompiledContractsBerlin
func (r *Registry) MergePrecompiles(base map[common.Address]vm.PrecompiledContract, context func() ExecutionContext) map[common.Address]vm.PrecompiledContract {
	merged := make(map[common.Address]vm.PrecompiledContract, len(base)+r.Len())
	for address, contract := range base {
		merged[address] = contract
	}
	for address, contract := range r.PrecompiledContracts(context) {
		merged[address] = contract
	}
	return merged
}
