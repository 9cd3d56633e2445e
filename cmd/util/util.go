// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package util

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/metrics/exp"

	"github.com/Supercoolkayy/Ox-rollup-sub000/cmd/genericconf"
)

// StartMetrics serves the registered counters and timers over expvar when enabled.
// Metrics collection itself has to be switched on with --metrics before any meter is registered.
func StartMetrics(enable bool, config *genericconf.MetricsServerConfig) error {
	if !enable {
		return nil
	}
	if !metrics.Enabled {
		return errors.New("metrics must be enabled via command line by adding --metrics, json config has no effect")
	}
	go metrics.CollectProcessMetrics(config.UpdateInterval)
	exp.Setup(fmt.Sprintf("%v:%v", config.Addr, config.Port))
	return nil
}
