// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package tx7eexec

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/tx7e"
	"github.com/Supercoolkayy/Ox-rollup-sub000/execution"
)

// Interceptor is a Provider that routes raw deposit transactions through a
// Processor. Every other call reaches the wrapped provider untouched.
type Interceptor struct {
	execution.Provider
	processor *Processor
	onDeposit func(*ProcessingResult)
}

// onDeposit, when set, sees every processed deposit, failed or not
func NewInterceptor(provider execution.Provider, processor *Processor, onDeposit func(*ProcessingResult)) *Interceptor {
	return &Interceptor{
		Provider:  provider,
		processor: processor,
		onDeposit: onDeposit,
	}
}

// SendRawTransaction returns the deposit hash for 0x7e payloads
func (i *Interceptor) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	if !tx7e.IsDepositTransaction(raw) {
		return i.Provider.SendRawTransaction(ctx, raw)
	}
	result := i.processor.ProcessTransaction(ctx, raw)
	if i.onDeposit != nil {
		i.onDeposit(result)
	}
	if err := result.Err(); err != nil {
		return common.Hash{}, err
	}
	return result.DepositHash, nil
}
