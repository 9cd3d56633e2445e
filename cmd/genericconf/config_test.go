// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package genericconf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	for input, expected := range map[string]log.Lvl{
		"INFO":  log.LvlInfo,
		"debug": log.LvlDebug,
		"WARN":  log.LvlWarn,
		"TRACE": log.LvlTrace,
		"2":     log.LvlWarn,
	} {
		level, err := ParseLogLevel(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, level, input)
	}
	_, err := ParseLogLevel("loud")
	require.Error(t, err)
	_, err = ParseLogLevel("9")
	require.Error(t, err)
}

func TestParseLogType(t *testing.T) {
	_, err := ParseLogType("plaintext")
	require.NoError(t, err)
	_, err = ParseLogType("json")
	require.NoError(t, err)
	_, err = ParseLogType("xml")
	require.EqualError(t, err, "invalid log type")
}

func TestHTTPConfig(t *testing.T) {
	config := HTTPConfigDefault
	require.NoError(t, config.Validate())
	require.Equal(t, "127.0.0.1:8547", config.ListenAddress())

	config.Port = 70000
	require.Error(t, config.Validate())
	config = HTTPConfigDefault
	config.RPCPrefix = "rpc"
	require.Error(t, config.Validate())
}

func TestInitLogToFile(t *testing.T) {
	dir := t.TempDir()
	fileConfig := DefaultFileLoggingConfig
	fileConfig.Enable = true
	fileConfig.File = "emulator.log"
	require.NoError(t, InitLog("plaintext", "INFO", &fileConfig, DefaultPathResolver(dir)))
	defer func() {
		activeFileLogMutex.Lock()
		defer activeFileLogMutex.Unlock()
		if activeFileLog != nil {
			require.NoError(t, activeFileLog.close())
			activeFileLog = nil
		}
		log.Root().SetHandler(log.DiscardHandler())
	}()
	log.Info("written to the rotating log file")

	require.Eventually(t, func() bool {
		contents, err := os.ReadFile(filepath.Join(dir, "emulator.log"))
		return err == nil && strings.Contains(string(contents), "written to the rotating log file")
	}, time.Second, 10*time.Millisecond)

	require.Error(t, InitLog("yaml", "INFO", &fileConfig, DefaultPathResolver(dir)))
}

func TestFileLogWriterFlushesOnClose(t *testing.T) {
	dir := t.TempDir()
	fileConfig := DefaultFileLoggingConfig
	fileConfig.BufSize = 64
	writer := newFileLogWriter(&fileConfig, filepath.Join(dir, "flush.log"))
	for i := 0; i < 10; i++ {
		_, err := writer.Write([]byte("record\n"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.close())
	require.True(t, writer.Stopped())

	contents, err := os.ReadFile(filepath.Join(dir, "flush.log"))
	require.NoError(t, err)
	require.Equal(t, 10, strings.Count(string(contents), "record\n"))

	// writes after close are dropped and a second close is harmless
	n, err := writer.Write([]byte("late\n"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.NoError(t, writer.close())
}

func TestInitLogReplacesFileSink(t *testing.T) {
	dir := t.TempDir()
	fileConfig := DefaultFileLoggingConfig
	fileConfig.Enable = true
	fileConfig.File = "first.log"
	require.NoError(t, InitLog("plaintext", "INFO", &fileConfig, DefaultPathResolver(dir)))
	activeFileLogMutex.Lock()
	first := activeFileLog
	activeFileLogMutex.Unlock()

	fileConfig.Enable = false
	require.NoError(t, InitLog("plaintext", "INFO", &fileConfig, DefaultPathResolver(dir)))
	defer log.Root().SetHandler(log.DiscardHandler())
	require.True(t, first.Stopped())
	activeFileLogMutex.Lock()
	require.Nil(t, activeFileLog)
	activeFileLogMutex.Unlock()
}

func TestDefaultPathResolver(t *testing.T) {
	resolve := DefaultPathResolver("/var/lib/arbemu")
	require.Equal(t, "/var/lib/arbemu/gas.json", resolve("gas.json"))
	require.Equal(t, "/etc/gas.json", resolve("/etc/gas.json"))
}
