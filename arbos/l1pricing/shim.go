// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package l1pricing

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/holiman/uint256"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l2pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

// Slots of the shim-order gas tuple shared with storage-based shims
const (
	ShimL2BaseFee = iota
	ShimL1BaseFeeEstimate
	ShimL1CalldataCost
	ShimL1StorageCost
	ShimCongestionFee
	ShimAux
	NumShimSlots
)

const pricesKey = "gas.pricesInWei"
const accountingKey = "gas.accounting"

var ErrShimLength = fmt.Errorf("%s must hold exactly %d values", pricesKey, NumShimSlots)

// ShimPrices is the gas tuple in shim order:
// [l2BaseFee, l1BaseFeeEstimate, l1CalldataCost, l1StorageCost, congestionFee, aux]
type ShimPrices [NumShimSlots]*uint256.Int

func (m *Model) ShimPrices() ShimPrices {
	return ShimPrices{
		ShimL2BaseFee:         arbmath.U256Clone(m.Components.L2BaseFee),
		ShimL1BaseFeeEstimate: arbmath.U256Clone(m.L1BaseFee),
		ShimL1CalldataCost:    arbmath.U256Clone(m.Components.L1CalldataCost),
		ShimL1StorageCost:     arbmath.U256Clone(m.Components.L1StorageCost),
		ShimCongestionFee:     arbmath.U256Clone(m.Components.CongestionFee),
		ShimAux:               new(uint256.Int),
	}
}

// Apply returns the L1 base fee and components described by the tuple.
// The aux slot carries no pricing input.
func (p ShimPrices) Apply(components GasPriceComponents) (*uint256.Int, GasPriceComponents) {
	updated := components.Copy()
	updated.L2BaseFee = arbmath.U256Clone(p[ShimL2BaseFee])
	updated.L1CalldataCost = arbmath.U256Clone(p[ShimL1CalldataCost])
	updated.L1StorageCost = arbmath.U256Clone(p[ShimL1StorageCost])
	updated.CongestionFee = arbmath.U256Clone(p[ShimCongestionFee])
	return arbmath.U256Clone(p[ShimL1BaseFeeEstimate]), updated
}

func (p ShimPrices) Decimals() []string {
	result := make([]string, NumShimSlots)
	for i, value := range p {
		result[i] = arbmath.U256ToDecimal(arbmath.U256Clone(value))
	}
	return result
}

func ShimPricesFromDecimals(values []string) (ShimPrices, error) {
	var prices ShimPrices
	if len(values) != NumShimSlots {
		return prices, fmt.Errorf("%w, found %d", ErrShimLength, len(values))
	}
	for i, text := range values {
		value, ok := arbmath.U256FromDecimal(text)
		if !ok {
			return prices, fmt.Errorf("%s[%d] is not a decimal uint256: %q", pricesKey, i, text)
		}
		prices[i] = value
	}
	return prices, nil
}

// NormalizeArbGasInfoPrices maps the getPricesInWei tuple of a live chain into shim order.
// The chain reports per-byte L1 prices, so the L1 base fee estimate is recovered by
// dividing by the per-byte gas cost.
func NormalizeArbGasInfoPrices(native PricesInWei) ShimPrices {
	l2BaseFee := arbmath.U256Clone(native[PerArbGasBaseSlot])
	calldataCost := uint256.NewInt(InitialL1CalldataCost)
	return ShimPrices{
		ShimL2BaseFee:         l2BaseFee,
		ShimL1BaseFeeEstimate: arbmath.U256DivOrZero(arbmath.U256Clone(native[WeiForL1CalldataSlot]), calldataCost),
		ShimL1CalldataCost:    calldataCost,
		ShimL1StorageCost:     arbmath.U256DivOrZero(arbmath.U256Clone(native[WeiForL2StorageSlot]), l2BaseFee),
		ShimCongestionFee:     arbmath.U256Clone(native[PerArbGasCongestionSlot]),
		ShimAux:               arbmath.U256Clone(native[PerL2TxSlot]),
	}
}

// GasFile is the json document {"gas": {"pricesInWei": [...], "accounting": {...}}}.
// Either section may be absent.
type GasFile struct {
	Prices     *ShimPrices
	Accounting map[string]uint64
}

func ReadGasFile(path string) (*GasFile, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("error loading gas config %s: %w", path, err)
	}
	result := &GasFile{}
	if k.Exists(pricesKey) {
		prices, err := ShimPricesFromDecimals(k.Strings(pricesKey))
		if err != nil {
			return nil, err
		}
		result.Prices = &prices
	}
	if k.Exists(accountingKey) {
		result.Accounting = make(map[string]uint64)
		for name := range k.Cut(accountingKey).All() {
			value, err := accountingValue(k.Get(accountingKey + "." + name))
			if err != nil {
				return nil, fmt.Errorf("%s.%s %w", accountingKey, name, err)
			}
			result.Accounting[name] = value
		}
	}
	if result.Prices == nil && result.Accounting == nil {
		return nil, errors.New("gas config has neither prices nor accounting section")
	}
	return result, nil
}

// accountingValue accepts whole non-negative numbers only
func accountingValue(raw interface{}) (uint64, error) {
	switch value := raw.(type) {
	case float64:
		if value < 0 || value != math.Trunc(value) || value >= math.MaxUint64 {
			return 0, fmt.Errorf("must be a non-negative integer, got %v", value)
		}
		return uint64(value), nil
	case int:
		if value < 0 {
			return 0, fmt.Errorf("must be a non-negative integer, got %v", value)
		}
		return uint64(value), nil
	case int64:
		if value < 0 {
			return 0, fmt.Errorf("must be a non-negative integer, got %v", value)
		}
		return uint64(value), nil
	case uint64:
		return value, nil
	default:
		return 0, fmt.Errorf("must be a non-negative integer, got %T %v", raw, raw)
	}
}

// WriteGasFile writes prices, and accounting when non-nil, in the format ReadGasFile accepts
func WriteGasFile(path string, prices ShimPrices, accounting *l2pricing.GasAccountingParams) error {
	gas := map[string]interface{}{
		"pricesInWei": prices.Decimals(),
	}
	if accounting != nil {
		gas["accounting"] = accounting.Overrides()
	}
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]interface{}{"gas": gas}, ""), nil); err != nil {
		return err
	}
	contents, err := k.Marshal(json.Parser())
	if err != nil {
		return fmt.Errorf("unable to marshal gas config: %w", err)
	}
	return os.WriteFile(path, contents, 0o644)
}
