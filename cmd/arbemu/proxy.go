// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l1pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/tx7e"
	"github.com/Supercoolkayy/Ox-rollup-sub000/execution"
	"github.com/Supercoolkayy/Ox-rollup-sub000/execution/tx7eexec"
	"github.com/Supercoolkayy/Ox-rollup-sub000/precompiles"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/containers"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/rpcclient"
)

// HeadSource reports the upstream chain head the emulated precompiles observe
type HeadSource interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Proxy answers precompile calls and deposit submissions itself and
// forwards every other JSON-RPC request to the upstream node.
type Proxy struct {
	emulator    *precompiles.Emulator
	upstream    *rpcclient.RpcClient
	heads       HeadSource
	interceptor *tx7eexec.Interceptor // nil when deposits are disabled
	deposits    *containers.LruCache[common.Hash, common.Hash]
	forward     *httputil.ReverseProxy
	maxBodySize int64
}

func NewProxy(
	emulator *precompiles.Emulator,
	upstream *rpcclient.RpcClient,
	upstreamURL string,
	heads HeadSource,
	provider execution.Provider,
	depositsConfig *DepositsConfig,
	maxBodySize int64,
) (*Proxy, error) {
	target, err := url.Parse(upstreamURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url: %w", err)
	}
	forward := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
		},
	}
	p := &Proxy{
		emulator:    emulator,
		upstream:    upstream,
		heads:       heads,
		deposits:    containers.NewLruCache[common.Hash, common.Hash](depositsConfig.CacheSize),
		forward:     forward,
		maxBodySize: maxBodySize,
	}
	if depositsConfig.Enable {
		pricing := func() *l1pricing.Model {
			return emulator.Config().L1Model()
		}
		p.interceptor = tx7eexec.NewInterceptor(provider, tx7eexec.NewProcessor(provider, pricing), p.recordDeposit)
	}
	return p, nil
}

func (p *Proxy) recordDeposit(result *tx7eexec.ProcessingResult) {
	if !result.Success {
		return
	}
	p.deposits.Add(result.DepositHash, result.TxHash)
	log.Debug("recorded deposit", "deposit", result.DepositHash, "execution", result.TxHash, "l1Cost", result.L1Cost)
}

// ExecutionHash maps a deposit hash to the hash of the transaction that executed it
func (p *Proxy) ExecutionHash(depositHash common.Hash) (common.Hash, bool) {
	return p.deposits.Get(depositHash)
}

func (p *Proxy) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(rw, r.Body, p.maxBodySize))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(rw, err.Error(), status)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		// batches and anything else we cannot read go upstream untouched
		p.forward.ServeHTTP(rw, r)
		return
	}
	response := p.handle(r.Context(), &req)
	if response == nil {
		p.forward.ServeHTTP(rw, r)
		return
	}
	encoded, err := json.Marshal(response)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write(encoded)
}

// handle returns nil for requests that should be forwarded
func (p *Proxy) handle(ctx context.Context, req *rpcRequest) *rpcResponse {
	switch req.Method {
	case "eth_call", "eth_estimateGas":
		return p.handleCall(ctx, req)
	case "eth_sendRawTransaction":
		return p.handleRawTransaction(ctx, req)
	case "eth_getTransactionReceipt", "eth_getTransactionByHash":
		return p.handleDepositLookup(ctx, req)
	case "arbemu_outboxMessages":
		return newResult(req, p.emulator.Outbox().Messages())
	case "arbemu_reloadGasConfig":
		if err := p.emulator.ReloadGasConfig(); err != nil {
			return newError(req, errCodeInternal, err.Error())
		}
		return newResult(req, true)
	case "arbemu_setPrecompilesEnabled":
		var enabled bool
		if err := json.Unmarshal(req.Params, &[]interface{}{&enabled}); err != nil {
			return newError(req, errCodeInvalidParams, err.Error())
		}
		if err := p.emulator.SetEnabled(enabled); err != nil {
			return newError(req, errCodeInternal, err.Error())
		}
		return newResult(req, enabled)
	}
	return nil
}

func (p *Proxy) handleCall(ctx context.Context, req *rpcRequest) *rpcResponse {
	var args callArgs
	if err := json.Unmarshal(req.Params, &[]interface{}{&args}); err != nil || args.To == nil {
		return nil
	}
	if _, ok := p.emulator.Registry().GetHandler(*args.To); !ok {
		return nil
	}
	result := p.emulator.HandleCall(*args.To, args.data(), p.executionContext(ctx, &args))
	if !result.Success {
		log.Debug("emulated precompile call reverted", "to", *args.To, "err", result.Error)
		return newError(req, errCodeExecutionRevert, "execution reverted: "+result.Error)
	}
	if req.Method == "eth_estimateGas" {
		return newResult(req, hexutil.Uint64(params.TxGas+result.GasUsed))
	}
	return newResult(req, hexutil.Bytes(result.Output))
}

func (p *Proxy) executionContext(ctx context.Context, args *callArgs) precompiles.ExecutionContext {
	caller := args.from()
	c := precompiles.ExecutionContext{
		Caller:    caller,
		CallStack: []common.Address{caller},
		CallValue: bigToU256(args.Value),
		GasPrice:  bigToU256(args.GasPrice),
	}
	header, err := p.heads.HeaderByNumber(ctx, nil)
	if err != nil {
		log.Warn("unable to read upstream head, using block zero", "err", err)
		return c
	}
	if header.Number != nil {
		c.BlockNumber = header.Number.Uint64()
	}
	c.Timestamp = header.Time
	return c
}

func (p *Proxy) handleRawTransaction(ctx context.Context, req *rpcRequest) *rpcResponse {
	if p.interceptor == nil {
		return nil
	}
	var raw hexutil.Bytes
	if err := json.Unmarshal(req.Params, &[]interface{}{&raw}); err != nil {
		return newError(req, errCodeInvalidParams, err.Error())
	}
	if !tx7e.IsDepositTransaction(raw) {
		return nil
	}
	hash, err := p.interceptor.SendRawTransaction(ctx, raw)
	if err != nil {
		return newError(req, errCodeInternal, err.Error())
	}
	return newResult(req, hash)
}

func (p *Proxy) handleDepositLookup(ctx context.Context, req *rpcRequest) *rpcResponse {
	var hash common.Hash
	if err := json.Unmarshal(req.Params, &[]interface{}{&hash}); err != nil {
		return nil
	}
	executionHash, ok := p.deposits.Get(hash)
	if !ok {
		return nil
	}
	var result json.RawMessage
	if err := p.upstream.CallContext(ctx, &result, req.Method, executionHash); err != nil {
		return newError(req, errCodeInternal, err.Error())
	}
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: result}
}
