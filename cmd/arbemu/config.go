// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf"
	flag "github.com/spf13/pflag"

	"github.com/Supercoolkayy/Ox-rollup-sub000/cmd/genericconf"
	"github.com/Supercoolkayy/Ox-rollup-sub000/cmd/util/confighelpers"
	"github.com/Supercoolkayy/Ox-rollup-sub000/execution/tx7eexec"
	"github.com/Supercoolkayy/Ox-rollup-sub000/precompiles"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/rpcclient"
)

type ArbEmuConfig struct {
	Conf          genericconf.ConfConfig          `koanf:"conf"`
	LogLevel      string                          `koanf:"log-level"`
	LogType       string                          `koanf:"log-type"`
	FileLogging   genericconf.FileLoggingConfig   `koanf:"file-logging"`
	Metrics       bool                            `koanf:"metrics"`
	MetricsServer genericconf.MetricsServerConfig `koanf:"metrics-server"`
	HTTP          genericconf.HTTPConfig          `koanf:"http"`
	Upstream      rpcclient.ClientConfig          `koanf:"upstream"`
	Deposits      DepositsConfig                  `koanf:"deposits"`
	Precompiles   precompiles.Config              `koanf:"precompiles"`
	Gas           GasConfig                       `koanf:"gas"`
}

type DepositsConfig struct {
	Enable    bool                       `koanf:"enable"`
	CacheSize int                        `koanf:"cache-size"`
	Provider  tx7eexec.RPCProviderConfig `koanf:"provider"`
}

var DefaultDepositsConfig = DepositsConfig{
	Enable:    true,
	CacheSize: 1024,
	Provider:  tx7eexec.DefaultRPCProviderConfig,
}

func DepositsConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".enable", DefaultDepositsConfig.Enable, "execute 0x7e deposit transactions submitted through eth_sendRawTransaction")
	f.Int(prefix+".cache-size", DefaultDepositsConfig.CacheSize, "number of deposit hashes remembered for receipt lookups")
	tx7eexec.RPCProviderConfigAddOptions(prefix+".provider", f)
}

func (c *DepositsConfig) Validate() error {
	if c.CacheSize <= 0 {
		return errors.New("deposit cache size must be positive")
	}
	return c.Provider.Validate()
}

// GasConfig seeds the emulated prices from a live Arbitrum chain
type GasConfig struct {
	RemoteURL string `koanf:"remote-url"`
	OutFile   string `koanf:"out-file"`
	FetchOnly bool   `koanf:"fetch-only"`
}

var DefaultGasConfig = GasConfig{
	RemoteURL: "",
	OutFile:   "arbemu-gas.json",
	FetchOnly: false,
}

func GasConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.String(prefix+".remote-url", DefaultGasConfig.RemoteURL, "RPC url of an Arbitrum chain whose ArbGasInfo prices seed the gas config file")
	f.String(prefix+".out-file", DefaultGasConfig.OutFile, "where fetched prices are written")
	f.Bool(prefix+".fetch-only", DefaultGasConfig.FetchOnly, "exit after writing the fetched prices")
}

func (c *GasConfig) Validate() error {
	if c.RemoteURL != "" && c.OutFile == "" {
		return errors.New("gas.out-file is required with gas.remote-url")
	}
	if c.FetchOnly && c.RemoteURL == "" {
		return errors.New("gas.fetch-only requires gas.remote-url")
	}
	return nil
}

var DefaultArbEmuConfig = ArbEmuConfig{
	Conf:          genericconf.ConfConfigDefault,
	LogLevel:      "INFO",
	LogType:       "plaintext",
	FileLogging:   genericconf.DefaultFileLoggingConfig,
	Metrics:       false,
	MetricsServer: genericconf.MetricsServerConfigDefault,
	HTTP:          genericconf.HTTPConfigDefault,
	Upstream:      rpcclient.DefaultClientConfig,
	Deposits:      DefaultDepositsConfig,
	Precompiles:   precompiles.DefaultConfig,
	Gas:           DefaultGasConfig,
}

func ArbEmuConfigAddOptions(f *flag.FlagSet) {
	genericconf.ConfConfigAddOptions("conf", f)
	f.String("log-level", DefaultArbEmuConfig.LogLevel, "log level, valid values are CRIT, ERROR, WARN, INFO, DEBUG, TRACE")
	f.String("log-type", DefaultArbEmuConfig.LogType, "log type (plaintext or json)")
	genericconf.FileLoggingConfigAddOptions("file-logging", f)
	f.Bool("metrics", DefaultArbEmuConfig.Metrics, "enable metrics")
	genericconf.MetricsServerAddOptions("metrics-server", f)
	genericconf.HTTPConfigAddOptions("http", f)
	rpcclient.RPCClientAddOptions("upstream", f, &DefaultArbEmuConfig.Upstream)
	DepositsConfigAddOptions("deposits", f)
	precompiles.ConfigAddOptions("precompiles", f)
	GasConfigAddOptions("gas", f)
}

func (c *ArbEmuConfig) Validate() error {
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if err := c.Upstream.Validate(); err != nil {
		return fmt.Errorf("upstream: %w", err)
	}
	if err := c.Deposits.Validate(); err != nil {
		return err
	}
	if err := c.Precompiles.Validate(); err != nil {
		return err
	}
	return c.Gas.Validate()
}

func ParseArbEmu(args []string) (*ArbEmuConfig, *koanf.Koanf, error) {
	f := flag.NewFlagSet("", flag.ContinueOnError)

	ArbEmuConfigAddOptions(f)

	k, err := confighelpers.BeginCommonParse(f, args)
	if err != nil {
		return nil, nil, err
	}

	var config ArbEmuConfig
	if err := confighelpers.EndCommonParse(k, &config); err != nil {
		return nil, nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	return &config, k, nil
}

func printSampleUsage(progname string) {
	fmt.Printf("\n")
	fmt.Printf("Sample usage:                  %s --upstream.url http://127.0.0.1:8545 --http.port 8547\n", progname)
	fmt.Printf("Seed prices from Arbitrum One: %s --gas.remote-url https://arb1.arbitrum.io/rpc --gas.fetch-only\n", progname)
}

func dumpConfig(k *koanf.Koanf) {
	if err := confighelpers.DumpConfig(k, map[string]interface{}{
		"upstream.jwtsecret": "",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
