// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package confighelpers

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/colors"
)

// BeginCommonParse layers configuration sources in order of increasing priority:
// flag defaults, --conf.file, --conf.string, environment, explicitly set flags.
func BeginCommonParse(f *flag.FlagSet, args []string) (*koanf.Koanf, error) {
	if err := f.Parse(args); err != nil {
		return nil, err
	}
	if f.NArg() != 0 {
		// Unexpected positional parameter
		return nil, errors.New("unexpected parameter: " + f.Arg(0))
	}

	var k = koanf.New(".")

	// Load defaults from command line defaults, which will be overwritten by config file
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, errors.Wrap(err, "error loading flag defaults")
	}

	configFiles := k.Strings("conf.file")
	for _, configFile := range configFiles {
		if len(configFile) == 0 {
			continue
		}
		if err := k.Load(file.Provider(configFile), json.Parser()); err != nil {
			return nil, errors.Wrap(err, "error loading local config file "+configFile)
		}
	}

	if configString := k.String("conf.string"); configString != "" {
		if err := k.Load(rawbytes.Provider([]byte(configString)), json.Parser()); err != nil {
			return nil, errors.Wrap(err, "error loading config string")
		}
	}

	if err := loadEnvironmentVariables(k); err != nil {
		return nil, errors.Wrap(err, "error loading environment variables")
	}

	// Any settings explicitly set on the command line override everything else
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, errors.Wrap(err, "error loading command line parameters")
	}

	return k, nil
}

// loadEnvironmentVariables maps PREFIX_GAS_OUT__FILE to gas.out-file
func loadEnvironmentVariables(k *koanf.Koanf) error {
	envPrefix := k.String("conf.env-prefix")
	if len(envPrefix) == 0 {
		return nil
	}
	prefix := envPrefix + "_"
	return k.Load(env.Provider(prefix, ".", func(s string) string {
		// FOO__BAR -> foo-bar to handle dash in config names
		s = strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, prefix)), "__", "-")
		return strings.ReplaceAll(s, "_", ".")
	}), nil)
}

// EndCommonParse decodes the layered configuration into config, rejecting unknown keys
func EndCommonParse(k *koanf.Koanf, config interface{}) error {
	decoderConfig := mapstructure.DecoderConfig{
		ErrorUnused: true,

		// Default values
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(",")),
		Metadata:         nil,
		Result:           config,
		WeaklyTypedInput: true,
	}
	err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{DecoderConfig: &decoderConfig})
	if err != nil {
		return err
	}

	return nil
}

// DumpConfig overrides the given keys, typically secrets or the dump flag itself, before printing
func DumpConfig(k *koanf.Koanf, extraOverrideFields map[string]interface{}) error {
	overrideFields := map[string]interface{}{"conf.dump": false}
	for key, value := range extraOverrideFields {
		overrideFields[key] = value
	}
	if err := k.Load(confmap.Provider(overrideFields, "."), nil); err != nil {
		return errors.Wrap(err, "error removing extra parameters before dump")
	}

	c, err := k.Marshal(json.Parser())
	if err != nil {
		return errors.Wrap(err, "unable to marshal config file to JSON")
	}

	fmt.Println(string(c))
	return nil
}

func PrintErrorAndExit(err error, usage func(string)) {
	if err != nil && errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	colors.Fprint(os.Stderr, colors.Red, err.Error(), "\n")
	usage(os.Args[0])
	os.Exit(1)
}
