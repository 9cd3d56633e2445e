// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package l2pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/holiman/uint256"
	flag "github.com/spf13/pflag"
)

const InitialSpeedLimitPerSecond uint64 = 120_000_000
const InitialGasPoolMax uint64 = 32_000_000
const InitialPerTxGasLimit uint64 = 32_000_000
const InitialAmortizedCostCapBips uint64 = 10_000
const InitialPricingInertia uint64 = 102
const InitialBacklogTolerance uint64 = 10

// GasAccountingParams is the L2 accounting record exposed by ArbGasInfo
type GasAccountingParams struct {
	SpeedLimitPerSecond  uint64 `koanf:"speed-limit-per-second"`
	GasPoolMax           uint64 `koanf:"gas-pool-max"`
	MaxTxGasLimit        uint64 `koanf:"max-tx-gas-limit"`
	AmortizedCostCapBips uint64 `koanf:"amortized-cost-cap-bips"`
	PricingInertia       uint64 `koanf:"pricing-inertia"`
	BacklogTolerance     uint64 `koanf:"backlog-tolerance"`
}

var DefaultGasAccountingParams = GasAccountingParams{
	SpeedLimitPerSecond:  InitialSpeedLimitPerSecond,
	GasPoolMax:           InitialGasPoolMax,
	MaxTxGasLimit:        InitialPerTxGasLimit,
	AmortizedCostCapBips: InitialAmortizedCostCapBips,
	PricingInertia:       InitialPricingInertia,
	BacklogTolerance:     InitialBacklogTolerance,
}

func GasAccountingParamsAddOptions(prefix string, f *flag.FlagSet) {
	f.Uint64(prefix+".speed-limit-per-second", DefaultGasAccountingParams.SpeedLimitPerSecond, "gas per second the chain is assumed to sustain")
	f.Uint64(prefix+".gas-pool-max", DefaultGasAccountingParams.GasPoolMax, "maximum size of the gas pool")
	f.Uint64(prefix+".max-tx-gas-limit", DefaultGasAccountingParams.MaxTxGasLimit, "maximum gas a single transaction may use")
	f.Uint64(prefix+".amortized-cost-cap-bips", DefaultGasAccountingParams.AmortizedCostCapBips, "cap on the amortized L1 cost, in basis points")
	f.Uint64(prefix+".pricing-inertia", DefaultGasAccountingParams.PricingInertia, "inertia of the L2 base fee")
	f.Uint64(prefix+".backlog-tolerance", DefaultGasAccountingParams.BacklogTolerance, "backlog tolerance of the L2 base fee")
}

func (p *GasAccountingParams) Validate() error {
	if p.SpeedLimitPerSecond == 0 {
		return errors.New("speed limit per second must be positive")
	}
	if p.GasPoolMax == 0 {
		return errors.New("gas pool max must be positive")
	}
	if p.MaxTxGasLimit == 0 {
		return errors.New("max tx gas limit must be positive")
	}
	if p.PricingInertia == 0 {
		return errors.New("pricing inertia must be positive")
	}
	return nil
}

// Words returns the getGasAccountingParams tuple
func (p *GasAccountingParams) Words() []*uint256.Int {
	return []*uint256.Int{
		uint256.NewInt(p.SpeedLimitPerSecond),
		uint256.NewInt(p.GasPoolMax),
		uint256.NewInt(p.MaxTxGasLimit),
	}
}

// fields addressable from the json gas file, keyed by their camelCase names
func (p *GasAccountingParams) fields() map[string]*uint64 {
	return map[string]*uint64{
		"speedLimitPerSecond":  &p.SpeedLimitPerSecond,
		"gasPoolMax":           &p.GasPoolMax,
		"maxTxGasLimit":        &p.MaxTxGasLimit,
		"amortizedCostCapBips": &p.AmortizedCostCapBips,
		"pricingInertia":       &p.PricingInertia,
		"backlogTolerance":     &p.BacklogTolerance,
	}
}

// ApplyOverrides sets the named fields; unknown names are rejected and nothing is changed
func (p *GasAccountingParams) ApplyOverrides(overrides map[string]uint64) error {
	updated := *p
	fields := updated.fields()
	var unknown []string
	for name, value := range overrides {
		field, ok := fields[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		*field = value
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown accounting parameters: %s", strings.Join(unknown, ", "))
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*p = updated
	return nil
}

// Overrides is the inverse of ApplyOverrides, used when writing gas files
func (p *GasAccountingParams) Overrides() map[string]uint64 {
	result := make(map[string]uint64)
	for name, field := range p.fields() {
		result[name] = *field
	}
	return result
}
