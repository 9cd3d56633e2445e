// Copyright 2021-2022, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package genericconf

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/ethereum/go-ethereum/log"
	flag "github.com/spf13/pflag"
)

type ConfConfig struct {
	Dump           bool          `koanf:"dump"`
	EnvPrefix      string        `koanf:"env-prefix"`
	File           []string      `koanf:"file"`
	String         string        `koanf:"string"`
	ReloadInterval time.Duration `koanf:"reload-interval" reload:"hot"`
}

func ConfConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".dump", ConfConfigDefault.Dump, "print out currently active configuration file")
	f.String(prefix+".env-prefix", ConfConfigDefault.EnvPrefix, "environment variables with given prefix will be loaded as configuration values")
	f.StringSlice(prefix+".file", ConfConfigDefault.File, "name of configuration file")
	f.String(prefix+".string", ConfConfigDefault.String, "configuration as JSON string")
	f.Duration(prefix+".reload-interval", ConfConfigDefault.ReloadInterval, "how often to reload the gas configuration file (0=disable periodic reloading)")
}

var ConfConfigDefault = ConfConfig{
	Dump:           false,
	EnvPrefix:      "ARBEMU",
	File:           nil,
	String:         "",
	ReloadInterval: 0,
}

func ParseLogType(logType string) (log.Format, error) {
	if logType == "plaintext" {
		return log.TerminalFormat(false), nil
	} else if logType == "json" {
		return log.JSONFormat(), nil
	}
	return nil, errors.New("invalid log type")
}

// ParseLogLevel accepts the level names used on the command line (CRIT..TRACE) or a numeric verbosity
func ParseLogLevel(level string) (log.Lvl, error) {
	if verbosity, err := strconv.Atoi(level); err == nil {
		if verbosity < int(log.LvlCrit) || verbosity > int(log.LvlTrace) {
			return 0, fmt.Errorf("log verbosity %d out of range", verbosity)
		}
		return log.Lvl(verbosity), nil
	}
	return log.LvlFromString(strings.ToLower(level))
}

type FileLoggingConfig struct {
	Enable     bool   `koanf:"enable"`
	File       string `koanf:"file"`
	MaxSize    int    `koanf:"max-size"`
	MaxAge     int    `koanf:"max-age"`
	MaxBackups int    `koanf:"max-backups"`
	LocalTime  bool   `koanf:"local-time"`
	Compress   bool   `koanf:"compress"`
	BufSize    int    `koanf:"buf-size"`
}

var DefaultFileLoggingConfig = FileLoggingConfig{
	Enable:     false,
	File:       "arbemu.log",
	MaxSize:    5,     // 5Mb
	MaxAge:     0,     // don't remove old files based on age
	MaxBackups: 20,    // keep 20 files
	LocalTime:  false, // use UTC time
	Compress:   true,
	BufSize:    512,
}

func FileLoggingConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".enable", DefaultFileLoggingConfig.Enable, "enable logging to file")
	f.String(prefix+".file", DefaultFileLoggingConfig.File, "path to log file")
	f.Int(prefix+".max-size", DefaultFileLoggingConfig.MaxSize, "log file size in Mb that will trigger log file rotation (0 = trigger disabled)")
	f.Int(prefix+".max-age", DefaultFileLoggingConfig.MaxAge, "maximum number of days to retain old log files based on the timestamp encoded in their filename (0 = no limit)")
	f.Int(prefix+".max-backups", DefaultFileLoggingConfig.MaxBackups, "maximum number of old log files to retain (0 = no limit)")
	f.Bool(prefix+".local-time", DefaultFileLoggingConfig.LocalTime, "if true: local time will be used in old log filename timestamps")
	f.Bool(prefix+".compress", DefaultFileLoggingConfig.Compress, "enable compression of old log files")
	f.Int(prefix+".buf-size", DefaultFileLoggingConfig.BufSize, "size of intermediate log records buffer")
}

type HTTPServerTimeoutConfig struct {
	ReadTimeout       time.Duration `koanf:"read-timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read-header-timeout"`
	WriteTimeout      time.Duration `koanf:"write-timeout"`
	IdleTimeout       time.Duration `koanf:"idle-timeout"`
}

var HTTPServerTimeoutConfigDefault = HTTPServerTimeoutConfig{
	ReadTimeout:       30 * time.Second,
	ReadHeaderTimeout: 30 * time.Second,
	WriteTimeout:      30 * time.Second,
	IdleTimeout:       120 * time.Second,
}

func HTTPServerTimeoutConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Duration(prefix+".read-timeout", HTTPServerTimeoutConfigDefault.ReadTimeout, "the maximum duration for reading the entire request (http.Server.ReadTimeout)")
	f.Duration(prefix+".read-header-timeout", HTTPServerTimeoutConfigDefault.ReadHeaderTimeout, "the amount of time allowed to read the request headers (http.Server.ReadHeaderTimeout)")
	f.Duration(prefix+".write-timeout", HTTPServerTimeoutConfigDefault.WriteTimeout, "the maximum duration before timing out writes of the response (http.Server.WriteTimeout)")
	f.Duration(prefix+".idle-timeout", HTTPServerTimeoutConfigDefault.IdleTimeout, "the maximum amount of time to wait for the next request when keep-alives are enabled (http.Server.IdleTimeout)")
}

type HTTPConfig struct {
	Addr           string                  `koanf:"addr"`
	Port           int                     `koanf:"port"`
	RPCPrefix      string                  `koanf:"rpcprefix"`
	MaxBodySize    int64                   `koanf:"max-body-size"`
	ServerTimeouts HTTPServerTimeoutConfig `koanf:"server-timeouts"`
}

var HTTPConfigDefault = HTTPConfig{
	Addr:           "127.0.0.1",
	Port:           8547,
	RPCPrefix:      "/",
	MaxBodySize:    5 * 1024 * 1024,
	ServerTimeouts: HTTPServerTimeoutConfigDefault,
}

func HTTPConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.String(prefix+".addr", HTTPConfigDefault.Addr, "HTTP-RPC server listening interface")
	f.Int(prefix+".port", HTTPConfigDefault.Port, "HTTP-RPC server listening port")
	f.String(prefix+".rpcprefix", HTTPConfigDefault.RPCPrefix, "HTTP path prefix on which JSON-RPC is served. Use '/' to serve on all paths")
	f.Int64(prefix+".max-body-size", HTTPConfigDefault.MaxBodySize, "maximum size in bytes of a JSON-RPC request body")
	HTTPServerTimeoutConfigAddOptions(prefix+".server-timeouts", f)
}

func (c *HTTPConfig) Validate() error {
	if _, err := safecast.ToUint16(c.Port); err != nil {
		return fmt.Errorf("invalid http port %d: %w", c.Port, err)
	}
	if c.MaxBodySize <= 0 {
		return errors.New("http max body size must be positive")
	}
	if !strings.HasPrefix(c.RPCPrefix, "/") {
		return fmt.Errorf("http rpc prefix %q must start with /", c.RPCPrefix)
	}
	return nil
}

func (c *HTTPConfig) ListenAddress() string {
	return net.JoinHostPort(c.Addr, strconv.Itoa(c.Port))
}

type MetricsServerConfig struct {
	Addr           string        `koanf:"addr"`
	Port           int           `koanf:"port"`
	UpdateInterval time.Duration `koanf:"update-interval"`
}

var MetricsServerConfigDefault = MetricsServerConfig{
	Addr:           "127.0.0.1",
	Port:           6070,
	UpdateInterval: 3 * time.Second,
}

func MetricsServerAddOptions(prefix string, f *flag.FlagSet) {
	f.String(prefix+".addr", MetricsServerConfigDefault.Addr, "metrics server address")
	f.Int(prefix+".port", MetricsServerConfigDefault.Port, "metrics server port")
	f.Duration(prefix+".update-interval", MetricsServerConfigDefault.UpdateInterval, "metrics server update interval")
}
