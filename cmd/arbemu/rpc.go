// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package main

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

const (
	errCodeInvalidParams   = -32602
	errCodeInternal        = -32000
	errCodeExecutionRevert = 3
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return e.Message
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

func newResult(req *rpcRequest, result interface{}) *rpcResponse {
	encoded, err := json.Marshal(result)
	if err != nil {
		return newError(req, errCodeInternal, err.Error())
	}
	return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: encoded}
}

func newError(req *rpcRequest, code int, message string) *rpcResponse {
	return &rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: code, Message: message}}
}

// callArgs is the subset of eth_call / eth_estimateGas arguments a precompile can observe
type callArgs struct {
	From     *common.Address `json:"from"`
	To       *common.Address `json:"to"`
	Gas      *hexutil.Uint64 `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Data     *hexutil.Bytes  `json:"data"`
	Input    *hexutil.Bytes  `json:"input"`
}

func (args *callArgs) data() []byte {
	if args.Input != nil {
		return *args.Input
	}
	if args.Data != nil {
		return *args.Data
	}
	return nil
}

func (args *callArgs) from() common.Address {
	if args.From == nil {
		return common.Address{}
	}
	return *args.From
}

func bigToU256(value *hexutil.Big) *uint256.Int {
	if value == nil {
		return new(uint256.Int)
	}
	result, overflow := uint256.FromBig(value.ToInt())
	if overflow {
		return new(uint256.Int).SetAllOne()
	}
	return result
}
