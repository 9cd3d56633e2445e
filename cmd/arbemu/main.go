// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"

	"github.com/Supercoolkayy/Ox-rollup-sub000/cmd/genericconf"
	"github.com/Supercoolkayy/Ox-rollup-sub000/cmd/util"
	"github.com/Supercoolkayy/Ox-rollup-sub000/cmd/util/confighelpers"
	"github.com/Supercoolkayy/Ox-rollup-sub000/execution/tx7eexec"
	"github.com/Supercoolkayy/Ox-rollup-sub000/precompiles"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/rpcclient"
)

func main() {
	os.Exit(mainImpl())
}

func mainImpl() int {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	config, k, err := ParseArbEmu(os.Args[1:])
	if err != nil {
		confighelpers.PrintErrorAndExit(err, printSampleUsage)
	}
	if config.Conf.Dump {
		dumpConfig(k)
	}

	pathResolver := genericconf.DefaultPathResolver("")
	err = genericconf.InitLog(config.LogType, config.LogLevel, &config.FileLogging, pathResolver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error initializing logging: %v\n", err)
		return 1
	}
	if err := util.StartMetrics(config.Metrics, &config.MetricsServer); err != nil {
		log.Error("error starting metrics", "err", err)
		return 1
	}

	if config.Gas.RemoteURL != "" {
		outFile := pathResolver(config.Gas.OutFile)
		if err := seedGasFile(ctx, config.Gas.RemoteURL, outFile, config.Precompiles.Accounting); err != nil {
			log.Error("error fetching remote gas prices", "err", err)
			return 1
		}
		if config.Gas.FetchOnly {
			return 0
		}
		if config.Precompiles.GasConfigFile == "" {
			config.Precompiles.GasConfigFile = outFile
		}
	}

	precompileConfig, err := config.Precompiles.PrecompileConfig()
	if err != nil {
		log.Error("invalid precompile config", "err", err)
		return 1
	}
	emulator, err := precompiles.NewEmulator(precompileConfig)
	if err != nil {
		log.Error("error creating precompile emulator", "err", err)
		return 1
	}
	log.Info("emulating precompiles", "addresses", emulator.Registry().Addresses(), "chainId", precompileConfig.ChainID)

	upstream := rpcclient.NewRpcClient(func() *rpcclient.ClientConfig { return &config.Upstream })
	if err := upstream.Start(ctx); err != nil {
		log.Error("error connecting to upstream node", "url", config.Upstream.URL, "err", err)
		return 1
	}
	defer upstream.Close()

	provider := tx7eexec.NewRPCProvider(upstream, func() *tx7eexec.RPCProviderConfig { return &config.Deposits.Provider })
	proxy, err := NewProxy(emulator, upstream, config.Upstream.URL, ethclient.NewClient(upstream.Client()), provider, &config.Deposits, config.HTTP.MaxBodySize)
	if err != nil {
		log.Error("error creating proxy", "err", err)
		return 1
	}

	mux := http.NewServeMux()
	mux.Handle(config.HTTP.RPCPrefix, proxy)
	server := &http.Server{
		Addr:              config.HTTP.ListenAddress(),
		Handler:           mux,
		ReadTimeout:       config.HTTP.ServerTimeouts.ReadTimeout,
		ReadHeaderTimeout: config.HTTP.ServerTimeouts.ReadHeaderTimeout,
		WriteTimeout:      config.HTTP.ServerTimeouts.WriteTimeout,
		IdleTimeout:       config.HTTP.ServerTimeouts.IdleTimeout,
	}
	serverErr := make(chan error, 1)
	go func() {
		log.Info("serving JSON-RPC", "addr", server.Addr, "upstream", config.Upstream.URL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if config.Conf.ReloadInterval > 0 && precompileConfig.GasConfigFile != "" {
		reloader := newGasConfigReloader(emulator, config.Conf.ReloadInterval)
		reloader.Start(ctx)
		defer reloader.StopAndWait()
	}

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-sigint:
		log.Info("shutting down because of sigint")
	case err := <-serverErr:
		log.Error("JSON-RPC server failed", "err", err)
		exitCode = 1
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("error shutting down JSON-RPC server", "err", err)
	}
	return exitCode
}
