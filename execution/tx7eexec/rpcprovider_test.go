// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package tx7eexec

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"

	"github.com/Supercoolkayy/Ox-rollup-sub000/execution"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/rpcclient"
)

type ethCallArgs struct {
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to"`
	Gas      hexutil.Uint64  `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Nonce    hexutil.Uint64  `json:"nonce"`
	Data     hexutil.Bytes   `json:"data"`
}

type fakeEthAPI struct {
	mutex        sync.Mutex
	sent         []ethCallArgs
	raw          [][]byte
	receiptPolls map[common.Hash]int
	receiptDelay time.Duration
	status       uint64
}

func (a *fakeEthAPI) SendTransaction(args ethCallArgs) (common.Hash, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if args.Gas == 0 {
		return common.Hash{}, errors.New("intrinsic gas too low")
	}
	a.sent = append(a.sent, args)
	hash := crypto.Keccak256Hash(args.Data, nonceWord(uint64(args.Nonce)))
	// the receipt shows up on the second poll
	a.receiptPolls[hash] = 1
	return hash, nil
}

func (a *fakeEthAPI) GetTransactionReceipt(ctx context.Context, hash common.Hash) (map[string]interface{}, error) {
	a.mutex.Lock()
	delay := a.receiptDelay
	a.mutex.Unlock()
	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()
	remaining, known := a.receiptPolls[hash]
	if !known {
		return nil, nil
	}
	if remaining > 0 {
		a.receiptPolls[hash] = remaining - 1
		return nil, nil
	}
	return map[string]interface{}{
		"transactionHash": hash,
		"gasUsed":         hexutil.Uint64(43_210),
		"status":          hexutil.Uint64(a.status),
	}, nil
}

func (a *fakeEthAPI) EstimateGas(args ethCallArgs) (hexutil.Uint64, error) {
	return hexutil.Uint64(21_000 + 16*len(args.Data)), nil
}

func (a *fakeEthAPI) Call(args ethCallArgs, block string) (hexutil.Bytes, error) {
	if block != "latest" {
		return nil, errors.New("unexpected block tag " + block)
	}
	return append(hexutil.Bytes{0x01}, args.Data...), nil
}

func (a *fakeEthAPI) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.raw = append(a.raw, raw)
	return crypto.Keccak256Hash(raw), nil
}

func newTestRPCProvider(t *testing.T, status uint64) (*RPCProvider, *fakeEthAPI) {
	t.Helper()
	api := &fakeEthAPI{receiptPolls: make(map[common.Hash]int), status: status}
	server := rpc.NewServer()
	Require(t, server.RegisterName("eth", api))
	clientConfig := rpcclient.TestClientConfig
	client := rpcclient.NewRpcClientFromClient(func() *rpcclient.ClientConfig { return &clientConfig }, rpc.DialInProc(server))
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	config := RPCProviderConfig{
		ReceiptPollInterval: 5 * time.Millisecond,
		ReceiptTimeout:      5 * time.Second,
	}
	return NewRPCProvider(client, func() *RPCProviderConfig { return &config }), api
}

func TestRPCProviderSendTransaction(t *testing.T) {
	provider, api := newTestRPCProvider(t, 1)
	ctx := context.Background()
	tx, _, err := NewProcessor(provider, nil).ValidateTransaction(encodeDeposit(t, depositArgs(6)))
	Require(t, err)

	submission, err := provider.SendTransaction(ctx, tx.ToEthereumTransaction())
	Require(t, err)
	require.Equal(t, crypto.Keccak256Hash([]byte{0x12, 0x34}, nonceWord(6)), submission.Hash)
	require.Equal(t, uint64(43_210), submission.GasUsed)
	require.Equal(t, uint64(1), submission.Status)

	require.Len(t, api.sent, 1)
	sent := api.sent[0]
	require.Equal(t, tx.From, sent.From)
	require.NotNil(t, sent.To)
	require.Equal(t, tx.To, *sent.To)
	require.Equal(t, uint64(50_000), uint64(sent.Gas))
	require.Equal(t, int64(7), sent.Value.ToInt().Int64())
	require.Equal(t, int64(1_000_000_000), sent.GasPrice.ToInt().Int64())
}

func TestRPCProviderReverted(t *testing.T) {
	provider, _ := newTestRPCProvider(t, 0)
	tx, _, err := NewProcessor(provider, nil).ValidateTransaction(encodeDeposit(t, depositArgs(2)))
	Require(t, err)

	submission, err := provider.SendTransaction(context.Background(), tx.ToEthereumTransaction())
	require.ErrorIs(t, err, execution.ErrTransactionReverted)
	require.NotNil(t, submission)
	require.Equal(t, uint64(0), submission.Status)
}

func TestRPCProviderReceiptTimeout(t *testing.T) {
	provider, api := newTestRPCProvider(t, 1)
	provider.config = func() *RPCProviderConfig {
		return &RPCProviderConfig{ReceiptPollInterval: time.Millisecond, ReceiptTimeout: 20 * time.Millisecond}
	}
	hash := crypto.Keccak256Hash([]byte{0x12, 0x34}, nonceWord(8))
	api.mutex.Lock()
	api.receiptPolls[hash] = 1 << 30
	api.mutex.Unlock()

	_, err := provider.waitForReceipt(context.Background(), hash)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRPCProviderReceiptTimeoutDuringCall(t *testing.T) {
	provider, api := newTestRPCProvider(t, 1)
	provider.config = func() *RPCProviderConfig {
		return &RPCProviderConfig{ReceiptPollInterval: time.Millisecond, ReceiptTimeout: 20 * time.Millisecond}
	}
	hash := crypto.Keccak256Hash([]byte{0x56, 0x78}, nonceWord(9))
	api.mutex.Lock()
	api.receiptPolls[hash] = 0
	api.receiptDelay = 500 * time.Millisecond
	api.mutex.Unlock()

	start := time.Now()
	_, err := provider.waitForReceipt(context.Background(), hash)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Contains(t, err.Error(), hash.String())
	require.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestRPCProviderQueries(t *testing.T) {
	provider, api := newTestRPCProvider(t, 1)
	ctx := context.Background()
	tx, _, err := NewProcessor(provider, nil).ValidateTransaction(encodeDeposit(t, depositArgs(1)))
	Require(t, err)
	request := tx.ToEthereumTransaction()

	gas, err := provider.EstimateGas(ctx, request)
	Require(t, err)
	require.Equal(t, uint64(21_032), gas)

	output, err := provider.Call(ctx, request)
	Require(t, err)
	require.Equal(t, []byte{0x01, 0x12, 0x34}, output)

	raw := []byte{0x02, 0xc0}
	hash, err := provider.SendRawTransaction(ctx, raw)
	Require(t, err)
	require.Equal(t, crypto.Keccak256Hash(raw), hash)
	require.Len(t, api.raw, 1)
	require.Empty(t, api.sent)

	request.Gas = 0
	_, err = provider.SendTransaction(ctx, request)
	require.ErrorContains(t, err, "intrinsic gas too low")
}

func TestRPCProviderConfigValidate(t *testing.T) {
	config := DefaultRPCProviderConfig
	Require(t, config.Validate())
	config.ReceiptPollInterval = 0
	if config.Validate() == nil {
		Fail(t, "expected a zero poll interval to be rejected")
	}
}
