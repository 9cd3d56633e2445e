// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	flag "github.com/spf13/pflag"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l1pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l2pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

const ArbitrumOneChainID = 42161
const DefaultArbOSVersion = 20

// Config is the flag and file form of the precompile configuration.
// Wei amounts are decimal strings since they may exceed 64 bits.
type Config struct {
	Enable         bool                          `koanf:"enable"`
	ChainID        uint64                        `koanf:"chain-id"`
	ArbOSVersion   uint64                        `koanf:"arbos-version"`
	L1BaseFee      string                        `koanf:"l1-base-fee"`
	L2BaseFee      string                        `koanf:"l2-base-fee"`
	L1CalldataCost string                        `koanf:"l1-calldata-cost"`
	L1StorageCost  string                        `koanf:"l1-storage-cost"`
	CongestionFee  string                        `koanf:"congestion-fee"`
	L1BlobBaseFee  string                        `koanf:"l1-blob-base-fee"`
	Accounting     l2pricing.GasAccountingParams `koanf:"accounting"`
	GasConfigFile  string                        `koanf:"gas-config-file"`
}

var DefaultConfig = Config{
	Enable:         true,
	ChainID:        ArbitrumOneChainID,
	ArbOSVersion:   DefaultArbOSVersion,
	L1BaseFee:      arbmath.U256ToDecimal(l1pricing.InitialL1BaseFeeWei),
	L2BaseFee:      arbmath.U256ToDecimal(l1pricing.InitialL2BaseFeeWei),
	L1CalldataCost: fmt.Sprint(l1pricing.InitialL1CalldataCost),
	L1StorageCost:  "0",
	CongestionFee:  "0",
	L1BlobBaseFee:  arbmath.U256ToDecimal(l1pricing.InitialL1BlobBaseFeeWei),
	Accounting:     l2pricing.DefaultGasAccountingParams,
}

func ConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".enable", DefaultConfig.Enable, "emulate the ArbSys and ArbGasInfo precompiles")
	f.Uint64(prefix+".chain-id", DefaultConfig.ChainID, "chain id reported when the host does not supply one")
	f.Uint64(prefix+".arbos-version", DefaultConfig.ArbOSVersion, "ArbOS version reported by ArbSys")
	f.String(prefix+".l1-base-fee", DefaultConfig.L1BaseFee, "L1 base fee in wei")
	f.String(prefix+".l2-base-fee", DefaultConfig.L2BaseFee, "L2 base fee in wei")
	f.String(prefix+".l1-calldata-cost", DefaultConfig.L1CalldataCost, "L1 gas charged per non-zero calldata byte")
	f.String(prefix+".l1-storage-cost", DefaultConfig.L1StorageCost, "L2 gas charged per storage slot")
	f.String(prefix+".congestion-fee", DefaultConfig.CongestionFee, "congestion component of the L2 gas price in wei")
	f.String(prefix+".l1-blob-base-fee", DefaultConfig.L1BlobBaseFee, "L1 blob base fee in wei")
	l2pricing.GasAccountingParamsAddOptions(prefix+".accounting", f)
	f.String(prefix+".gas-config-file", DefaultConfig.GasConfigFile, "json file with gas.pricesInWei and gas.accounting overrides, read at startup and on reload")
}

func (c *Config) Validate() error {
	_, err := c.PrecompileConfig()
	return err
}

// PrecompileConfig parses the string amounts. The gas config file is not read here.
func (c *Config) PrecompileConfig() (*PrecompileConfig, error) {
	result := &PrecompileConfig{
		Enable:        c.Enable,
		ChainID:       uint256.NewInt(c.ChainID),
		ArbOSVersion:  c.ArbOSVersion,
		Accounting:    c.Accounting,
		GasConfigFile: c.GasConfigFile,
		L1Fees:        l1pricing.DefaultFeeParams(),
	}
	amounts := []struct {
		name  string
		value string
		dest  **uint256.Int
	}{
		{"l1-base-fee", c.L1BaseFee, &result.L1BaseFee},
		{"l2-base-fee", c.L2BaseFee, &result.GasPriceComponents.L2BaseFee},
		{"l1-calldata-cost", c.L1CalldataCost, &result.GasPriceComponents.L1CalldataCost},
		{"l1-storage-cost", c.L1StorageCost, &result.GasPriceComponents.L1StorageCost},
		{"congestion-fee", c.CongestionFee, &result.GasPriceComponents.CongestionFee},
		{"l1-blob-base-fee", c.L1BlobBaseFee, &result.L1Fees.L1BlobBaseFee},
	}
	for _, amount := range amounts {
		value, ok := arbmath.U256FromDecimal(amount.value)
		if !ok {
			return nil, fmt.Errorf("%s must be a decimal integer below 2^256, got %q", amount.name, amount.value)
		}
		*amount.dest = value
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// PrecompileConfig is one immutable configuration snapshot
type PrecompileConfig struct {
	Enable             bool
	ChainID            *uint256.Int
	ArbOSVersion       uint64
	L1BaseFee          *uint256.Int
	GasPriceComponents l1pricing.GasPriceComponents
	L1Fees             l1pricing.FeeParams
	Accounting         l2pricing.GasAccountingParams
	GasConfigFile      string
}

// DefaultPrecompileConfig approximates Arbitrum One
func DefaultPrecompileConfig() *PrecompileConfig {
	return &PrecompileConfig{
		Enable:             true,
		ChainID:            uint256.NewInt(ArbitrumOneChainID),
		ArbOSVersion:       DefaultArbOSVersion,
		L1BaseFee:          new(uint256.Int).Set(l1pricing.InitialL1BaseFeeWei),
		GasPriceComponents: l1pricing.DefaultGasPriceComponents(),
		L1Fees:             l1pricing.DefaultFeeParams(),
		Accounting:         l2pricing.DefaultGasAccountingParams,
	}
}

func (c *PrecompileConfig) Copy() *PrecompileConfig {
	result := *c
	result.ChainID = arbmath.U256Clone(c.ChainID)
	result.L1BaseFee = arbmath.U256Clone(c.L1BaseFee)
	result.GasPriceComponents = c.GasPriceComponents.Copy()
	result.L1Fees = c.L1Fees.Copy()
	return &result
}

func (c *PrecompileConfig) Validate() error {
	if c.ChainID == nil {
		return errors.New("chain id must be set")
	}
	if err := c.L1Model().Validate(); err != nil {
		return err
	}
	return c.Accounting.Validate()
}

func (c *PrecompileConfig) L1Model() *l1pricing.Model {
	return l1pricing.NewModel(c.L1BaseFee, c.GasPriceComponents, c.L1Fees)
}

// applyGasFile overlays the gas.pricesInWei and gas.accounting sections of path.
// Nothing is changed when the file cannot be applied in full.
func applyGasFile(config *PrecompileConfig, path string) error {
	gasFile, err := l1pricing.ReadGasFile(path)
	if err != nil {
		return err
	}
	l1BaseFee, components := config.L1BaseFee, config.GasPriceComponents
	if gasFile.Prices != nil {
		l1BaseFee, components = gasFile.Prices.Apply(config.GasPriceComponents)
	}
	accounting := config.Accounting
	if gasFile.Accounting != nil {
		if err := accounting.ApplyOverrides(gasFile.Accounting); err != nil {
			return fmt.Errorf("error applying %s: %w", path, err)
		}
	}
	config.L1BaseFee = l1BaseFee
	config.GasPriceComponents = components
	config.Accounting = accounting
	return nil
}
