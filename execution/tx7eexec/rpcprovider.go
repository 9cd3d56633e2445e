// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package tx7eexec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	flag "github.com/spf13/pflag"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/tx7e"
	"github.com/Supercoolkayy/Ox-rollup-sub000/execution"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/rpcclient"
)

type RPCProviderConfig struct {
	ReceiptPollInterval time.Duration `koanf:"receipt-poll-interval"`
	ReceiptTimeout      time.Duration `koanf:"receipt-timeout"`
}

var DefaultRPCProviderConfig = RPCProviderConfig{
	ReceiptPollInterval: 100 * time.Millisecond,
	ReceiptTimeout:      time.Minute,
}

func RPCProviderConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Duration(prefix+".receipt-poll-interval", DefaultRPCProviderConfig.ReceiptPollInterval, "how often to poll for the receipt of a forwarded deposit")
	f.Duration(prefix+".receipt-timeout", DefaultRPCProviderConfig.ReceiptTimeout, "how long to wait for the receipt of a forwarded deposit")
}

func (c *RPCProviderConfig) Validate() error {
	if c.ReceiptPollInterval <= 0 {
		return errors.New("receipt poll interval must be positive")
	}
	return nil
}

type RPCProviderConfigFetcher func() *RPCProviderConfig

// RPCProvider executes requests on a node through the standard eth namespace.
// The node must manage the keys of the deposit senders.
type RPCProvider struct {
	client *rpcclient.RpcClient
	config RPCProviderConfigFetcher
}

func NewRPCProvider(client *rpcclient.RpcClient, config RPCProviderConfigFetcher) *RPCProvider {
	return &RPCProvider{
		client: client,
		config: config,
	}
}

type rpcReceipt struct {
	TransactionHash common.Hash    `json:"transactionHash"`
	GasUsed         hexutil.Uint64 `json:"gasUsed"`
	Status          hexutil.Uint64 `json:"status"`
}

func (p *RPCProvider) SendTransaction(ctx context.Context, request *tx7e.TransactionRequest) (*execution.Submission, error) {
	var hash common.Hash
	if err := p.client.CallContext(ctx, &hash, "eth_sendTransaction", request.RPCArgs()); err != nil {
		return nil, err
	}
	receipt, err := p.waitForReceipt(ctx, hash)
	if err != nil {
		return nil, err
	}
	submission := &execution.Submission{
		Hash:    hash,
		GasUsed: uint64(receipt.GasUsed),
		Status:  uint64(receipt.Status),
	}
	if receipt.Status == 0 {
		return submission, fmt.Errorf("%w: %v", execution.ErrTransactionReverted, hash)
	}
	return submission, nil
}

func (p *RPCProvider) waitForReceipt(ctx context.Context, hash common.Hash) (*rpcReceipt, error) {
	config := p.config()
	if config.ReceiptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ReceiptTimeout)
		defer cancel()
	}
	ticker := time.NewTicker(config.ReceiptPollInterval)
	defer ticker.Stop()
	for {
		var receipt *rpcReceipt
		if err := p.client.CallContext(ctx, &receipt, "eth_getTransactionReceipt", hash); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("no receipt for %v: %w", hash, ctx.Err())
			}
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("no receipt for %v: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (p *RPCProvider) EstimateGas(ctx context.Context, request *tx7e.TransactionRequest) (uint64, error) {
	var gas hexutil.Uint64
	if err := p.client.CallContext(ctx, &gas, "eth_estimateGas", request.RPCArgs()); err != nil {
		return 0, err
	}
	return uint64(gas), nil
}

func (p *RPCProvider) Call(ctx context.Context, request *tx7e.TransactionRequest) ([]byte, error) {
	var output hexutil.Bytes
	if err := p.client.CallContext(ctx, &output, "eth_call", request.RPCArgs(), "latest"); err != nil {
		return nil, err
	}
	return output, nil
}

func (p *RPCProvider) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	err := p.client.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Bytes(raw))
	return hash, err
}
