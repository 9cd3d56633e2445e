// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package main

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/Supercoolkayy/Ox-rollup-sub000/precompiles"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/stopwaiter"
)

// gasConfigReloader re-reads the emulator's gas config file on an interval
type gasConfigReloader struct {
	stopwaiter.StopWaiter
	emulator *precompiles.Emulator
	interval time.Duration
}

func newGasConfigReloader(emulator *precompiles.Emulator, interval time.Duration) *gasConfigReloader {
	return &gasConfigReloader{
		emulator: emulator,
		interval: interval,
	}
}

func (r *gasConfigReloader) Start(ctx context.Context) {
	r.StopWaiter.Start(ctx, r)
	r.CallIteratively(r.reload)
}

func (r *gasConfigReloader) reload(ctx context.Context) time.Duration {
	if err := r.emulator.ReloadGasConfig(); err != nil {
		log.Warn("error reloading gas config", "file", r.emulator.Config().GasConfigFile, "err", err)
	}
	return r.interval
}
