// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package testhelpers

import (
	"crypto/rand"
	"fmt"
	"os"
	"regexp"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/log"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/colors"
)

// Fail a test should an error occur
func RequireImpl(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatal(colors.Red, printables, err, colors.Clear)
	}
}

func FailImpl(t *testing.T, printables ...interface{}) {
	t.Helper()
	t.Fatal(colors.Red, printables, colors.Clear)
}

// RandomSlice is for inputs whose content does not matter; use
// PseudoRandomDataSource when a failure must be reproducible.
func RandomSlice(size uint64) []byte {
	slice := make([]byte, size)
	if _, err := rand.Read(slice); err != nil {
		panic(err)
	}
	return slice
}

// LogHandler records every message that passes the test verbosity
type LogHandler struct {
	mutex         sync.Mutex
	t             *testing.T
	records       []log.Record
	streamHandler log.Handler
}

func (h *LogHandler) Log(record *log.Record) error {
	if err := h.streamHandler.Log(record); err != nil {
		return err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.records = append(h.records, *record)
	return nil
}

func (h *LogHandler) matching(pattern string) []log.Record {
	re, err := regexp.Compile(pattern)
	RequireImpl(h.t, err)
	h.mutex.Lock()
	defer h.mutex.Unlock()
	var found []log.Record
	for _, record := range h.records {
		if re.MatchString(record.Msg) {
			found = append(found, record)
		}
	}
	return found
}

// Reports whether any record's message matches the pattern
func (h *LogHandler) WasLogged(pattern string) bool {
	return len(h.matching(pattern)) > 0
}

// WasLoggedWith also requires the record to carry key with a value printing as value
func (h *LogHandler) WasLoggedWith(pattern string, key string, value interface{}) bool {
	want := fmt.Sprint(value)
	for _, record := range h.matching(pattern) {
		for i := 0; i+1 < len(record.Ctx); i += 2 {
			if record.Ctx[i] == key && fmt.Sprint(record.Ctx[i+1]) == want {
				return true
			}
		}
	}
	return false
}

// InitTestLog captures the root logger for the duration of the test
func InitTestLog(t *testing.T, level log.Lvl) *LogHandler {
	handler := &LogHandler{
		t:             t,
		streamHandler: log.StreamHandler(os.Stderr, log.TerminalFormat(false)),
	}
	glogger := log.NewGlogHandler(handler)
	glogger.Verbosity(level)
	previous := log.Root().GetHandler()
	log.Root().SetHandler(glogger)
	t.Cleanup(func() { log.Root().SetHandler(previous) })
	return handler
}
