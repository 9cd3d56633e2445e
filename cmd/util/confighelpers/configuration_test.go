// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package confighelpers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

type listenConfig struct {
	Addr string `koanf:"addr"`
	Port int    `koanf:"port"`
}

type testConfig struct {
	Conf struct {
		Dump      bool     `koanf:"dump"`
		EnvPrefix string   `koanf:"env-prefix"`
		File      []string `koanf:"file"`
		String    string   `koanf:"string"`
	} `koanf:"conf"`
	Listen  listenConfig  `koanf:"listen"`
	Timeout time.Duration `koanf:"timeout"`
	OutFile string        `koanf:"out-file"`
}

func testFlags() *flag.FlagSet {
	f := flag.NewFlagSet("", flag.ContinueOnError)
	f.Bool("conf.dump", false, "")
	f.String("conf.env-prefix", "ARBEMUTEST", "")
	f.StringSlice("conf.file", nil, "")
	f.String("conf.string", "", "")
	f.String("listen.addr", "127.0.0.1", "")
	f.Int("listen.port", 8547, "")
	f.Duration("timeout", time.Second, "")
	f.String("out-file", "", "")
	return f
}

func parse(t *testing.T, args ...string) (*testConfig, error) {
	t.Helper()
	k, err := BeginCommonParse(testFlags(), args)
	if err != nil {
		return nil, err
	}
	var config testConfig
	return &config, EndCommonParse(k, &config)
}

func TestDefaults(t *testing.T) {
	config, err := parse(t)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", config.Listen.Addr)
	require.Equal(t, 8547, config.Listen.Port)
	require.Equal(t, time.Second, config.Timeout)
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"listen":{"addr":"0.0.0.0","port":9000},"timeout":"5s"}`), 0o600))

	config, err := parse(t, "--conf.file", path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", config.Listen.Addr)
	require.Equal(t, 9000, config.Listen.Port)
	require.Equal(t, 5*time.Second, config.Timeout)

	t.Setenv("ARBEMUTEST_LISTEN_PORT", "9100")
	t.Setenv("ARBEMUTEST_OUT__FILE", "gas.json")
	config, err = parse(t, "--conf.file", path)
	require.NoError(t, err)
	require.Equal(t, 9100, config.Listen.Port)
	require.Equal(t, "gas.json", config.OutFile)

	config, err = parse(t, "--conf.file", path, "--listen.port", "9200", "--conf.string", `{"listen":{"addr":"localhost"}}`)
	require.NoError(t, err)
	require.Equal(t, 9200, config.Listen.Port)
	require.Equal(t, "localhost", config.Listen.Addr)
}

func TestRejectsUnknownKeys(t *testing.T) {
	_, err := parse(t, "--conf.string", `{"listen":{"host":"x"}}`)
	require.ErrorContains(t, err, "host")

	_, err = parse(t, "stray")
	require.EqualError(t, err, "unexpected parameter: stray")

	_, err = parse(t, "--conf.file", filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorContains(t, err, "error loading local config file")
}
