// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package l1pricing

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

const TxFixedCost = 100 // assumed size in bytes of a typical RLP-encoded tx, not including its calldata

const InitialL1CalldataCost = 16 // gas per non-zero calldata byte
const InitialCostPerZeroByte = 4
const InitialDiscountBips arbmath.Bips = 9000
const InitialInertia = 10

var InitialL1BaseFeeWei = arbmath.Gwei(20)
var InitialL2BaseFeeWei = arbmath.Gwei(1)
var InitialL1BlobBaseFeeWei = uint256.NewInt(1)

// GasPriceComponents are the independently configurable parts of the L2 price
type GasPriceComponents struct {
	L2BaseFee      *uint256.Int
	L1CalldataCost *uint256.Int
	L1StorageCost  *uint256.Int
	CongestionFee  *uint256.Int
}

func DefaultGasPriceComponents() GasPriceComponents {
	return GasPriceComponents{
		L2BaseFee:      new(uint256.Int).Set(InitialL2BaseFeeWei),
		L1CalldataCost: uint256.NewInt(InitialL1CalldataCost),
		L1StorageCost:  new(uint256.Int),
		CongestionFee:  new(uint256.Int),
	}
}

func (c GasPriceComponents) Copy() GasPriceComponents {
	return GasPriceComponents{
		L2BaseFee:      arbmath.U256Clone(c.L2BaseFee),
		L1CalldataCost: arbmath.U256Clone(c.L1CalldataCost),
		L1StorageCost:  arbmath.U256Clone(c.L1StorageCost),
		CongestionFee:  arbmath.U256Clone(c.CongestionFee),
	}
}

// FeeParams shape the calldata fee estimate
type FeeParams struct {
	CostPerZeroByte uint64
	DiscountBips    arbmath.Bips
	L1BlobBaseFee   *uint256.Int
	Inertia         uint64
}

func DefaultFeeParams() FeeParams {
	return FeeParams{
		CostPerZeroByte: InitialCostPerZeroByte,
		DiscountBips:    InitialDiscountBips,
		L1BlobBaseFee:   new(uint256.Int).Set(InitialL1BlobBaseFeeWei),
		Inertia:         InitialInertia,
	}
}

func (p FeeParams) Copy() FeeParams {
	p.L1BlobBaseFee = arbmath.U256Clone(p.L1BlobBaseFee)
	return p
}

// Model is a read-only view of the L1 pricing inputs
type Model struct {
	L1BaseFee  *uint256.Int
	Components GasPriceComponents
	Fees       FeeParams
}

func NewModel(l1BaseFee *uint256.Int, components GasPriceComponents, fees FeeParams) *Model {
	return &Model{
		L1BaseFee:  arbmath.U256Clone(l1BaseFee),
		Components: components.Copy(),
		Fees:       fees.Copy(),
	}
}

func (m *Model) Validate() error {
	if m.L1BaseFee == nil || m.Components.L2BaseFee == nil || m.Components.L1CalldataCost == nil ||
		m.Components.L1StorageCost == nil || m.Components.CongestionFee == nil {
		return errors.New("gas price components must all be set")
	}
	if m.Fees.DiscountBips > arbmath.OneInBips {
		return errors.New("calldata discount cannot exceed 100%")
	}
	return nil
}

// CalldataUnits counts zero and non-zero bytes
func CalldataUnits(calldata []byte) (zero uint64, nonZero uint64) {
	for _, b := range calldata {
		if b == 0 {
			zero++
		} else {
			nonZero++
		}
	}
	return zero, nonZero
}

// CurrentTxL1GasFees computes floor((nonZero*l1CalldataCost + zero*costPerZero) * discount) * l1BaseFee
func (m *Model) CurrentTxL1GasFees(calldata []byte) *uint256.Int {
	zero, nonZero := CalldataUnits(calldata)
	units := arbmath.SaturatingU256Add(
		arbmath.SaturatingU256Mul(uint256.NewInt(nonZero), m.Components.L1CalldataCost),
		arbmath.SaturatingU256Mul(uint256.NewInt(zero), uint256.NewInt(m.Fees.CostPerZeroByte)),
	)
	discounted := arbmath.U256MulByBips(units, m.Fees.DiscountBips)
	return arbmath.SaturatingU256Mul(discounted, m.L1BaseFee)
}

// WeiForL1Calldata is the price of one byte of L1 calldata
func (m *Model) WeiForL1Calldata() *uint256.Int {
	return arbmath.SaturatingU256Mul(m.L1BaseFee, m.Components.L1CalldataCost)
}

// Slots of getPricesInWei, in ABI order
const (
	PerL2TxSlot = iota
	WeiForL1CalldataSlot
	WeiForL2StorageSlot
	PerArbGasBaseSlot
	PerArbGasCongestionSlot
	PerArbGasTotalSlot
	NumPriceSlots
)

type PricesInWei [NumPriceSlots]*uint256.Int

func (m *Model) PricesInWei() PricesInWei {
	c := m.Components
	weiForL1Calldata := m.WeiForL1Calldata()
	return PricesInWei{
		PerL2TxSlot:             arbmath.SaturatingU256Mul(weiForL1Calldata, uint256.NewInt(TxFixedCost)),
		WeiForL1CalldataSlot:    weiForL1Calldata,
		WeiForL2StorageSlot:     arbmath.SaturatingU256Mul(c.L2BaseFee, c.L1StorageCost),
		PerArbGasBaseSlot:       arbmath.U256Clone(c.L2BaseFee),
		PerArbGasCongestionSlot: arbmath.U256Clone(c.CongestionFee),
		PerArbGasTotalSlot:      arbmath.SaturatingU256Add(c.L2BaseFee, c.CongestionFee),
	}
}

// PricesInArbGas converts the per-tx and per-byte prices into L2 gas at the current base fee
func (m *Model) PricesInArbGas() [3]*uint256.Int {
	prices := m.PricesInWei()
	l2BaseFee := m.Components.L2BaseFee
	return [3]*uint256.Int{
		arbmath.U256DivOrZero(prices[PerL2TxSlot], l2BaseFee),
		arbmath.U256DivOrZero(prices[WeiForL1CalldataSlot], l2BaseFee),
		arbmath.U256Clone(m.Components.L1StorageCost),
	}
}
