// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/r3labs/diff/v3"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l2pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

// snapshot is a registry fully built from one configuration
type snapshot struct {
	config   *PrecompileConfig
	registry *Registry
}

// BuildRegistry creates the handlers for config. The gas config file, when set,
// is applied on top of config. A disabled config yields an empty registry.
func BuildRegistry(config *PrecompileConfig, outbox *Outbox) (*Registry, error) {
	registry := NewRegistry()
	if !config.Enable {
		return registry, nil
	}
	effective := config.Copy()
	if effective.GasConfigFile != "" {
		if err := applyGasFile(effective, effective.GasConfigFile); err != nil {
			return nil, err
		}
	}
	if err := effective.Validate(); err != nil {
		return nil, err
	}
	for _, handler := range []Handler{NewArbSys(effective, outbox), NewArbGasInfo(effective)} {
		if err := registry.Register(handler); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Emulator owns the live registry. Calls read the current snapshot without
// locking; reconfiguration builds a new snapshot and swaps it in whole, so
// calls already running finish against the configuration they started with.
type Emulator struct {
	writeMutex sync.Mutex
	current    atomic.Pointer[snapshot]
	outbox     *Outbox
}

func NewEmulator(config *PrecompileConfig) (*Emulator, error) {
	e := &Emulator{outbox: NewOutbox()}
	if err := e.install(config.Copy()); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Emulator) install(config *PrecompileConfig) error {
	registry, err := BuildRegistry(config, e.outbox)
	if err != nil {
		return err
	}
	e.current.Store(&snapshot{config: config, registry: registry})
	return nil
}

func (e *Emulator) Registry() *Registry {
	return e.current.Load().registry
}

// Config returns a copy of the active configuration
func (e *Emulator) Config() *PrecompileConfig {
	return e.current.Load().config.Copy()
}

func (e *Emulator) Outbox() *Outbox {
	return e.outbox
}

func (e *Emulator) HandleCall(address common.Address, calldata []byte, c ExecutionContext) PrecompileResult {
	return e.Registry().HandleCall(address, calldata, c)
}

// UpdateConfig replaces the configuration and rebuilds every handler.
// On error the previous snapshot stays active.
func (e *Emulator) UpdateConfig(config *PrecompileConfig) error {
	e.writeMutex.Lock()
	defer e.writeMutex.Unlock()
	return e.replace(config.Copy())
}

// SetEnabled(false) drops all handlers; SetEnabled(true) rebuilds them from scratch
func (e *Emulator) SetEnabled(enabled bool) error {
	e.writeMutex.Lock()
	defer e.writeMutex.Unlock()
	config := e.current.Load().config.Copy()
	config.Enable = enabled
	return e.replace(config)
}

// ReloadGasConfig re-reads the configured gas config file into a new snapshot
func (e *Emulator) ReloadGasConfig() error {
	e.writeMutex.Lock()
	defer e.writeMutex.Unlock()
	config := e.current.Load().config.Copy()
	if config.GasConfigFile == "" {
		return errors.New("no gas config file configured")
	}
	// folded into the base config so later updates keep the reloaded prices
	if err := applyGasFile(config, config.GasConfigFile); err != nil {
		return err
	}
	return e.replace(config)
}

func (e *Emulator) replace(config *PrecompileConfig) error {
	previous := e.current.Load().config
	if err := e.install(config); err != nil {
		log.Warn("rejected precompile config", "err", err)
		return err
	}
	logConfigChanges(previous, config)
	return nil
}

type configSummary struct {
	Enable          bool   `diff:"enable"`
	ChainID         string `diff:"chainId"`
	ArbOSVersion    uint64 `diff:"arbosVersion"`
	L1BaseFee       string `diff:"l1BaseFee"`
	L2BaseFee       string `diff:"l2BaseFee"`
	L1CalldataCost  string `diff:"l1CalldataCost"`
	L1StorageCost   string `diff:"l1StorageCost"`
	CongestionFee   string `diff:"congestionFee"`
	CostPerZeroByte uint64 `diff:"costPerZeroByte"`
	DiscountBips    uint64 `diff:"discountBips"`
	L1BlobBaseFee   string `diff:"l1BlobBaseFee"`
	Accounting      l2pricing.GasAccountingParams
	GasConfigFile   string `diff:"gasConfigFile"`
}

func summarize(config *PrecompileConfig) configSummary {
	decimal := func(value huge) string {
		return arbmath.U256ToDecimal(arbmath.U256Clone(value))
	}
	return configSummary{
		Enable:          config.Enable,
		ChainID:         decimal(config.ChainID),
		ArbOSVersion:    config.ArbOSVersion,
		L1BaseFee:       decimal(config.L1BaseFee),
		L2BaseFee:       decimal(config.GasPriceComponents.L2BaseFee),
		L1CalldataCost:  decimal(config.GasPriceComponents.L1CalldataCost),
		L1StorageCost:   decimal(config.GasPriceComponents.L1StorageCost),
		CongestionFee:   decimal(config.GasPriceComponents.CongestionFee),
		CostPerZeroByte: config.L1Fees.CostPerZeroByte,
		DiscountBips:    uint64(config.L1Fees.DiscountBips),
		L1BlobBaseFee:   decimal(config.L1Fees.L1BlobBaseFee),
		Accounting:      config.Accounting,
		GasConfigFile:   config.GasConfigFile,
	}
}

// ConfigChanges lists the fields that differ between two configurations
func ConfigChanges(from, to *PrecompileConfig) (diff.Changelog, error) {
	return diff.Diff(summarize(from), summarize(to))
}

func logConfigChanges(from, to *PrecompileConfig) {
	changes, err := ConfigChanges(from, to)
	if err != nil {
		log.Warn("unable to diff precompile config", "err", err)
		return
	}
	if len(changes) == 0 {
		log.Info("precompile config reapplied without changes")
		return
	}
	for _, change := range changes {
		log.Info("precompile config changed", "field", strings.Join(change.Path, "."), "from", change.From, "to", change.To)
	}
}
