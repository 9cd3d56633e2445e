// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package l1pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l2pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/testhelpers"
)

var u256Comparer = cmp.Comparer(func(a, b *uint256.Int) bool { return arbmath.U256Equals(a, b) })

func defaultModel() *Model {
	return NewModel(InitialL1BaseFeeWei, DefaultGasPriceComponents(), DefaultFeeParams())
}

func TestCurrentTxL1GasFees(t *testing.T) {
	model := defaultModel()
	gwei20 := uint256.NewInt(20_000_000_000)

	// floor(4*4*0.9) = 14 units
	zeros := model.CurrentTxL1GasFees([]byte{0, 0, 0, 0})
	expected := new(uint256.Int).Mul(uint256.NewInt(14), gwei20)
	if !zeros.Eq(expected) {
		Fail(t, "zero-byte fee", zeros, "expected", expected)
	}

	// floor(4*16*0.9) = 57 units
	nonZeros := model.CurrentTxL1GasFees([]byte{1, 2, 3, 4})
	expected = new(uint256.Int).Mul(uint256.NewInt(57), gwei20)
	if !nonZeros.Eq(expected) {
		Fail(t, "non-zero-byte fee", nonZeros, "expected", expected)
	}

	// floor((2*16 + 2*4)*0.9) = 36 units
	mixed := model.CurrentTxL1GasFees([]byte{0, 9, 0, 9})
	expected = new(uint256.Int).Mul(uint256.NewInt(36), gwei20)
	if !mixed.Eq(expected) {
		Fail(t, "mixed fee", mixed, "expected", expected)
	}

	if !model.CurrentTxL1GasFees(nil).IsZero() {
		Fail(t, "empty calldata should cost nothing")
	}
}

func TestFeesDoNotWrap(t *testing.T) {
	model := defaultModel()
	model.L1BaseFee = arbmath.MaxU256()
	fee := model.CurrentTxL1GasFees([]byte{1, 1, 1})
	if !fee.Eq(arbmath.MaxU256()) {
		Fail(t, "fee should saturate, got", fee)
	}
	prices := model.PricesInWei()
	if !prices[PerL2TxSlot].Eq(arbmath.MaxU256()) {
		Fail(t, "per-tx price should saturate")
	}
}

func TestPricesInWeiSlots(t *testing.T) {
	components := DefaultGasPriceComponents()
	components.L2BaseFee = uint256.NewInt(100_000_000)
	components.L1StorageCost = uint256.NewInt(3)
	components.CongestionFee = uint256.NewInt(7)
	model := NewModel(uint256.NewInt(30_000_000_000), components, DefaultFeeParams())

	perByte := uint256.NewInt(30_000_000_000 * 16)
	expected := PricesInWei{
		new(uint256.Int).Mul(perByte, uint256.NewInt(TxFixedCost)),
		perByte,
		uint256.NewInt(300_000_000),
		uint256.NewInt(100_000_000),
		uint256.NewInt(7),
		uint256.NewInt(100_000_007),
	}
	if diff := cmp.Diff(expected, model.PricesInWei(), u256Comparer); diff != "" {
		Fail(t, "prices mismatch (-want +got):\n", diff)
	}

	arbGas := model.PricesInArbGas()
	require.Equal(t, uint64(480_000), arbGas[0].Uint64())
	require.Equal(t, uint64(4_800), arbGas[1].Uint64())
	require.Equal(t, uint64(3), arbGas[2].Uint64())

	model.Components.L2BaseFee = new(uint256.Int)
	arbGas = model.PricesInArbGas()
	require.True(t, arbGas[0].IsZero())
	require.True(t, arbGas[1].IsZero())
}

func TestPosterDataCost(t *testing.T) {
	model := defaultModel()
	cost, units, err := model.PosterDataCost(make([]byte, 2048))
	Require(t, err)
	if units == 0 || units > 16*(TxFixedCost+64)*21/20 {
		Fail(t, "zeros should compress to a handful of bytes, charged", units, "units")
	}
	expected := new(uint256.Int).Mul(uint256.NewInt(units), InitialL1BaseFeeWei)
	if !cost.Eq(expected) {
		Fail(t, "cost", cost, "expected", expected)
	}

	random := testhelpers.RandomSlice(2048)
	_, randomUnits, err := model.PosterDataCost(random)
	Require(t, err)
	if randomUnits <= units {
		Fail(t, "incompressible data should cost more")
	}
}

func TestShimRoundTrip(t *testing.T) {
	model := defaultModel()
	shim := model.ShimPrices()
	require.Equal(t, []string{"1000000000", "20000000000", "16", "0", "0", "0"}, shim.Decimals())

	l1BaseFee, components := shim.Apply(GasPriceComponents{})
	require.True(t, l1BaseFee.Eq(InitialL1BaseFeeWei))
	if diff := cmp.Diff(DefaultGasPriceComponents(), components, u256Comparer); diff != "" {
		Fail(t, "components mismatch (-want +got):\n", diff)
	}

	_, err := ShimPricesFromDecimals([]string{"1", "2"})
	require.ErrorIs(t, err, ErrShimLength)
	_, err = ShimPricesFromDecimals([]string{"1", "2", "3", "4", "5", "-6"})
	require.Error(t, err)
}

func TestNormalizeArbGasInfoPrices(t *testing.T) {
	components := DefaultGasPriceComponents()
	components.L2BaseFee = uint256.NewInt(10_000_000)
	components.L1StorageCost = uint256.NewInt(2)
	components.CongestionFee = uint256.NewInt(5)
	live := NewModel(uint256.NewInt(8_000_000_000), components, DefaultFeeParams())

	shim := NormalizeArbGasInfoPrices(live.PricesInWei())
	require.Equal(t, []string{"10000000", "8000000000", "16", "2", "5", "12800000000000"}, shim.Decimals())

	l1BaseFee, applied := shim.Apply(DefaultGasPriceComponents())
	require.True(t, l1BaseFee.Eq(live.L1BaseFee))
	if diff := cmp.Diff(components, applied, u256Comparer); diff != "" {
		Fail(t, "normalized components mismatch (-want +got):\n", diff)
	}
}

func TestGasFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gas.json")
	accounting := l2pricing.DefaultGasAccountingParams
	accounting.GasPoolMax = 64_000_000
	prices := defaultModel().ShimPrices()
	prices[ShimL1BaseFeeEstimate] = arbmath.Gwei(35)

	Require(t, WriteGasFile(path, prices, &accounting))
	loaded, err := ReadGasFile(path)
	Require(t, err)
	require.NotNil(t, loaded.Prices)
	if diff := cmp.Diff(prices, *loaded.Prices, u256Comparer); diff != "" {
		Fail(t, "prices mismatch (-want +got):\n", diff)
	}
	require.Equal(t, uint64(64_000_000), loaded.Accounting["gasPoolMax"])

	pricesOnly := filepath.Join(dir, "prices.json")
	contents := `{"gas": {"pricesInWei": ["1", "2", "3", "4", "5", "6"]}}`
	Require(t, os.WriteFile(pricesOnly, []byte(contents), 0o600))
	loaded, err = ReadGasFile(pricesOnly)
	Require(t, err)
	require.Nil(t, loaded.Accounting)
	require.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, loaded.Prices.Decimals())

	badLength := filepath.Join(dir, "bad.json")
	Require(t, os.WriteFile(badLength, []byte(`{"gas": {"pricesInWei": ["1"]}}`), 0o600))
	_, err = ReadGasFile(badLength)
	require.ErrorIs(t, err, ErrShimLength)

	_, err = ReadGasFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestGasFileRejectsNonIntegerAccounting(t *testing.T) {
	dir := t.TempDir()
	for name, accounting := range map[string]string{
		"string":   `{"amortizedCostCapBips": "lots"}`,
		"bool":     `{"backlogTolerance": true}`,
		"negative": `{"pricingInertia": -3}`,
		"fraction": `{"gasPoolMax": 1.5}`,
		"null":     `{"speedLimitPerSecond": null}`,
		"object":   `{"maxTxGasLimit": {"value": "x"}}`,
	} {
		path := filepath.Join(dir, name+".json")
		Require(t, os.WriteFile(path, []byte(`{"gas": {"accounting": `+accounting+`}}`), 0o600))
		_, err := ReadGasFile(path)
		require.Error(t, err, name)
		require.Contains(t, err.Error(), "non-negative integer", name)
	}

	path := filepath.Join(dir, "whole.json")
	Require(t, os.WriteFile(path, []byte(`{"gas": {"accounting": {"pricingInertia": 55, "backlogTolerance": 0}}}`), 0o600))
	loaded, err := ReadGasFile(path)
	Require(t, err)
	require.Equal(t, map[string]uint64{"pricingInertia": 55, "backlogTolerance": 0}, loaded.Accounting)
}

func Require(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	testhelpers.RequireImpl(t, err, printables...)
}

func Fail(t *testing.T, printables ...interface{}) {
	t.Helper()
	testhelpers.FailImpl(t, printables...)
}
