// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/holiman/uint256"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

var u256Comparer = cmp.Comparer(func(a, b *uint256.Int) bool { return arbmath.U256Equals(a, b) })

func TestDefaultConfigMatchesDefaultPrecompileConfig(t *testing.T) {
	config := DefaultConfig
	parsed, err := config.PrecompileConfig()
	Require(t, err)
	if diff := cmp.Diff(DefaultPrecompileConfig(), parsed, u256Comparer); diff != "" {
		Fail(t, "default configs disagree (-want +got):\n", diff)
	}
}

func TestConfigRejectsBadAmounts(t *testing.T) {
	config := DefaultConfig
	config.L2BaseFee = "-1"
	require.ErrorContains(t, config.Validate(), "l2-base-fee")

	config = DefaultConfig
	config.L1BaseFee = "115792089237316195423570985008687907853269984665640564039457584007913129639936"
	require.ErrorContains(t, config.Validate(), "l1-base-fee")

	config = DefaultConfig
	config.CongestionFee = "0x10"
	require.Error(t, config.Validate())

	config = DefaultConfig
	config.L1BaseFee = "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	Require(t, config.Validate())
}

func TestConfigAddOptions(t *testing.T) {
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	ConfigAddOptions("precompiles", f)
	Require(t, f.Parse([]string{"--precompiles.l1-base-fee", "7", "--precompiles.accounting.pricing-inertia", "5"}))

	value, err := f.GetString("precompiles.l1-base-fee")
	Require(t, err)
	require.Equal(t, "7", value)
	inertia, err := f.GetUint64("precompiles.accounting.pricing-inertia")
	Require(t, err)
	require.Equal(t, uint64(5), inertia)
	enabled, err := f.GetBool("precompiles.enable")
	Require(t, err)
	require.True(t, enabled)
}

func TestPrecompileConfigCopyIsDeep(t *testing.T) {
	original := DefaultPrecompileConfig()
	copied := original.Copy()
	copied.L1BaseFee.SetUint64(1)
	copied.GasPriceComponents.L2BaseFee.SetUint64(1)
	copied.L1Fees.L1BlobBaseFee.SetUint64(9)
	require.True(t, original.L1BaseFee.Eq(arbmath.Gwei(20)))
	require.True(t, original.GasPriceComponents.L2BaseFee.Eq(arbmath.Gwei(1)))
	require.True(t, original.L1Fees.L1BlobBaseFee.Eq(uint256.NewInt(1)))
}
