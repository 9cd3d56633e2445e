// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l1pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l2pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/arbutil"
)

// Provides insight into the cost of using the rollup.
type ArbGasInfo struct {
	gasConfigFile string

	mutex      sync.RWMutex
	model      *l1pricing.Model
	accounting l2pricing.GasAccountingParams

	methods *methodTable
}

func NewArbGasInfo(config *PrecompileConfig) *ArbGasInfo {
	con := &ArbGasInfo{
		gasConfigFile: config.GasConfigFile,
		model:         config.L1Model(),
		accounting:    config.Accounting,
	}
	word := arbutil.WordSize
	con.methods = newMethodTable("ArbGasInfo",
		method{"getPricesInWei", "getPricesInWei()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordsOutput(con.GetPricesInWei(c)...)
		}},
		method{"getL1BaseFeeEstimate", "getL1BaseFeeEstimate()", 5, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetL1BaseFeeEstimate(c))
		}},
		method{"getCurrentTxL1GasFees", "getCurrentTxL1GasFees()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetCurrentTxL1GasFees(c, c.TxCalldata))
		}},
		method{"getPricesInArbGas", "getPricesInArbGas()", 96, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordsOutput(con.GetPricesInArbGas(c)...)
		}},
		method{"getGasAccountingParams", "getGasAccountingParams()", 20, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordsOutput(con.GetGasAccountingParams(c)...)
		}},
		method{"getMinimumGasPrice", "getMinimumGasPrice()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetMinimumGasPrice(c))
		}},
		method{"getL2BaseFeeEstimate", "getL2BaseFeeEstimate()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetL2BaseFeeEstimate(c))
		}},
		method{"getAmortizedCostCapBips", "getAmortizedCostCapBips()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetAmortizedCostCapBips(c))
		}},
		method{"getPricesInWeiWithAggregator", "getPricesInWeiWithAggregator(address)", 20, word, func(c ctx, args []byte) ([]byte, error) {
			aggregator, err := addressArg("getPricesInWeiWithAggregator", args, 0)
			if err != nil {
				return nil, err
			}
			return wordsOutput(con.GetPricesInWeiWithAggregator(c, aggregator)...)
		}},
		method{"getPricesInArbGasWithAggregator", "getPricesInArbGasWithAggregator(address)", 20, word, func(c ctx, args []byte) ([]byte, error) {
			aggregator, err := addressArg("getPricesInArbGasWithAggregator", args, 0)
			if err != nil {
				return nil, err
			}
			return wordsOutput(con.GetPricesInArbGasWithAggregator(c, aggregator)...)
		}},
		method{"getL1GasPriceEstimate", "getL1GasPriceEstimate()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetL1GasPriceEstimate(c))
		}},
		method{"getL1BlobBaseFeeEstimate", "getL1BlobBaseFeeEstimate()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetL1BlobBaseFeeEstimate(c))
		}},
		method{"getL1BaseFeeEstimateInertia", "getL1BaseFeeEstimateInertia()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetL1BaseFeeEstimateInertia(c))
		}},
		method{"getGasBacklog", "getGasBacklog()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetGasBacklog(c))
		}},
		method{"getPricingInertia", "getPricingInertia()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetPricingInertia(c))
		}},
		method{"getGasBacklogTolerance", "getGasBacklogTolerance()", 10, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetGasBacklogTolerance(c))
		}},
	)
	return con
}

func (con *ArbGasInfo) Address() addr {
	return ArbGasInfoAddress
}

func (con *ArbGasInfo) Name() string {
	return "ArbGasInfo"
}

func (con *ArbGasInfo) Run(input []byte, c ctx) ([]byte, error) {
	// without the outer calldata the fee estimate prices this call, selector included
	if c.TxCalldata == nil {
		c.TxCalldata = input
	}
	return con.methods.dispatch(input, c)
}

func (con *ArbGasInfo) GasCost(input []byte) uint64 {
	return con.methods.gasCost(input)
}

// ReloadGasConfig re-reads the gas config file given at construction.
// A file that fails to load leaves the current prices in place.
func (con *ArbGasInfo) ReloadGasConfig() error {
	if con.gasConfigFile == "" {
		return nil
	}
	con.mutex.Lock()
	defer con.mutex.Unlock()
	config := &PrecompileConfig{
		L1BaseFee:          con.model.L1BaseFee,
		GasPriceComponents: con.model.Components,
		L1Fees:             con.model.Fees,
		Accounting:         con.accounting,
	}
	if err := applyGasFile(config, con.gasConfigFile); err != nil {
		return err
	}
	con.model = config.L1Model()
	con.accounting = config.Accounting
	log.Info("reloaded gas config", "file", con.gasConfigFile, "l1BaseFee", con.model.L1BaseFee, "l2BaseFee", con.model.Components.L2BaseFee)
	return nil
}

func (con *ArbGasInfo) snapshot() (*l1pricing.Model, l2pricing.GasAccountingParams) {
	con.mutex.RLock()
	defer con.mutex.RUnlock()
	return con.model, con.accounting
}

// Get prices in wei when using the provided aggregator
func (con *ArbGasInfo) GetPricesInWeiWithAggregator(c ctx, aggregator addr) []huge {
	return con.GetPricesInWei(c)
}

// Get prices in wei. Slots follow the ABI:
// perL2Tx, weiForL1Calldata, weiForL2Storage, perArbGasBase, perArbGasCongestion, perArbGasTotal
func (con *ArbGasInfo) GetPricesInWei(c ctx) []huge {
	model, _ := con.snapshot()
	prices := model.PricesInWei()
	return prices[:]
}

// Get prices in ArbGas when using the provided aggregator
func (con *ArbGasInfo) GetPricesInArbGasWithAggregator(c ctx, aggregator addr) []huge {
	return con.GetPricesInArbGas(c)
}

// Get prices in ArbGas: perL2Tx, gasForL1Calldata, gasForL2Storage
func (con *ArbGasInfo) GetPricesInArbGas(c ctx) []huge {
	model, _ := con.snapshot()
	prices := model.PricesInArbGas()
	return prices[:]
}

// Get the rollup's speed limit, pool size, and tx gas limit
func (con *ArbGasInfo) GetGasAccountingParams(c ctx) []huge {
	_, accounting := con.snapshot()
	return accounting.Words()
}

func (con *ArbGasInfo) GetMinimumGasPrice(c ctx) huge {
	model, _ := con.snapshot()
	return new(uint256.Int).Set(model.Components.L2BaseFee)
}

// Mainnet reports the L1 price through getPricesInWei, not here
func (con *ArbGasInfo) GetL1BaseFeeEstimate(c ctx) huge {
	return new(uint256.Int)
}

func (con *ArbGasInfo) GetL1BaseFeeEstimateInertia(c ctx) huge {
	model, _ := con.snapshot()
	return uint256.NewInt(model.Fees.Inertia)
}

func (con *ArbGasInfo) GetL1GasPriceEstimate(c ctx) huge {
	model, _ := con.snapshot()
	return new(uint256.Int).Set(model.L1BaseFee)
}

func (con *ArbGasInfo) GetL1BlobBaseFeeEstimate(c ctx) huge {
	model, _ := con.snapshot()
	return new(uint256.Int).Set(model.Fees.L1BlobBaseFee)
}

// Get the fee paid to the aggregator for posting this tx
func (con *ArbGasInfo) GetCurrentTxL1GasFees(c ctx, calldata []byte) huge {
	model, _ := con.snapshot()
	return model.CurrentTxL1GasFees(calldata)
}

func (con *ArbGasInfo) GetL2BaseFeeEstimate(c ctx) huge {
	model, _ := con.snapshot()
	return new(uint256.Int).Set(model.Components.L2BaseFee)
}

func (con *ArbGasInfo) GetAmortizedCostCapBips(c ctx) huge {
	_, accounting := con.snapshot()
	return uint256.NewInt(accounting.AmortizedCostCapBips)
}

// The emulated chain is never congested
func (con *ArbGasInfo) GetGasBacklog(c ctx) huge {
	return new(uint256.Int)
}

func (con *ArbGasInfo) GetPricingInertia(c ctx) huge {
	_, accounting := con.snapshot()
	return uint256.NewInt(accounting.PricingInertia)
}

func (con *ArbGasInfo) GetGasBacklogTolerance(c ctx) huge {
	_, accounting := con.snapshot()
	return uint256.NewInt(accounting.BacklogTolerance)
}
