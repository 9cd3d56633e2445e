// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package l1pricing

import (
	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbcompress"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

// PosterDataCost estimates what a batch poster would pay to publish data on L1.
// Data is charged per compressed byte, plus TxFixedCost, and padded by 5%.
// Returns the cost in wei and the L1 gas units it was derived from.
func (m *Model) PosterDataCost(data []byte) (*uint256.Int, uint64, error) {
	compressed, err := arbcompress.CompressWell(data)
	if err != nil {
		return nil, 0, err
	}
	bytesToCharge := uint64(len(compressed) + TxFixedCost)
	perByte := m.Components.L1CalldataCost
	if !perByte.IsUint64() {
		return arbmath.MaxU256(), ^uint64(0), nil
	}
	units := arbmath.SaturatingUMul(perByte.Uint64(), bytesToCharge)

	// add 5% to protect the poster from bad price fluctuation luck
	units = arbmath.SaturatingUMul(units, 21) / 20

	return arbmath.SaturatingU256Mul(uint256.NewInt(units), m.L1BaseFee), units, nil
}
