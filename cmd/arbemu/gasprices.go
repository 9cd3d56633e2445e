// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l1pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l2pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/arbutil"
	"github.com/Supercoolkayy/Ox-rollup-sub000/precompiles"
)

func callArbGasInfo(ctx context.Context, caller ethereum.ContractCaller, signature string, count int) ([]*uint256.Int, error) {
	to := precompiles.ArbGasInfoAddress
	output, err := caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: arbutil.Calldata(signature)}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error calling ArbGasInfo.%s", signature)
	}
	words, err := arbutil.DecodeWords(output, count)
	if err != nil {
		return nil, errors.Wrapf(err, "unexpected ArbGasInfo.%s output", signature)
	}
	return words, nil
}

// FetchRemoteShimPrices reads getPricesInWei from a live ArbGasInfo and reorders it into shim order
func FetchRemoteShimPrices(ctx context.Context, caller ethereum.ContractCaller) (l1pricing.ShimPrices, error) {
	words, err := callArbGasInfo(ctx, caller, "getPricesInWei()", l1pricing.NumPriceSlots)
	if err != nil {
		return l1pricing.ShimPrices{}, err
	}
	var native l1pricing.PricesInWei
	copy(native[:], words)
	return l1pricing.NormalizeArbGasInfoPrices(native), nil
}

// FetchRemoteAccounting overlays the remote getGasAccountingParams onto base
func FetchRemoteAccounting(ctx context.Context, caller ethereum.ContractCaller, base l2pricing.GasAccountingParams) (l2pricing.GasAccountingParams, error) {
	words, err := callArbGasInfo(ctx, caller, "getGasAccountingParams()", 3)
	if err != nil {
		return base, err
	}
	fields := []*uint64{&base.SpeedLimitPerSecond, &base.GasPoolMax, &base.MaxTxGasLimit}
	for i, word := range words {
		if !word.IsUint64() {
			return base, fmt.Errorf("accounting parameter %d does not fit in 64 bits: %v", i, word)
		}
		*fields[i] = word.Uint64()
	}
	return base, base.Validate()
}

// seedGasFile writes the prices of a live chain to outFile in the gas config format
func seedGasFile(ctx context.Context, remoteURL string, outFile string, base l2pricing.GasAccountingParams) error {
	client, err := ethclient.DialContext(ctx, remoteURL)
	if err != nil {
		return errors.Wrap(err, "error connecting to remote chain")
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return errors.Wrap(err, "error reading remote chain id")
	}
	prices, err := FetchRemoteShimPrices(ctx, client)
	if err != nil {
		return err
	}
	accounting, err := FetchRemoteAccounting(ctx, client, base)
	if err != nil {
		log.Warn("keeping configured accounting parameters", "err", err)
		accounting = base
	}
	if err := l1pricing.WriteGasFile(outFile, prices, &accounting); err != nil {
		return errors.Wrap(err, "error writing gas config")
	}
	log.Info("wrote remote gas prices", "chainId", chainID, "file", outFile, "prices", prices.Decimals())
	return nil
}
