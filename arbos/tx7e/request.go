// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package tx7e

import (
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

// TransactionRequest is an ordinary call or transaction; the deposit's type and signature do not survive
type TransactionRequest struct {
	From     common.Address
	To       *common.Address // nil for contract creation
	Value    *uint256.Int
	Gas      uint64
	GasPrice *uint256.Int
	Nonce    uint64
	Data     []byte
}

func (tx *DepositTransaction) ToEthereumTransaction() *TransactionRequest {
	request := &TransactionRequest{
		From:     tx.From,
		Value:    arbmath.U256Clone(tx.Value),
		Gas:      tx.GasLimit,
		GasPrice: arbmath.U256Clone(tx.GasPrice),
		Nonce:    tx.Nonce,
		Data:     common.CopyBytes(tx.Data),
	}
	if !tx.IsCreation {
		to := tx.To
		request.To = &to
	}
	return request
}

func (r *TransactionRequest) CallMsg() ethereum.CallMsg {
	return ethereum.CallMsg{
		From:     r.From,
		To:       r.To,
		Gas:      r.Gas,
		GasPrice: arbmath.U256Clone(r.GasPrice).ToBig(),
		Value:    arbmath.U256Clone(r.Value).ToBig(),
		Data:     r.Data,
	}
}

// LegacyTx is the unsigned legacy transaction a host can sign and submit itself
func (r *TransactionRequest) LegacyTx() *types.LegacyTx {
	return &types.LegacyTx{
		Nonce:    r.Nonce,
		GasPrice: arbmath.U256Clone(r.GasPrice).ToBig(),
		Gas:      r.Gas,
		To:       r.To,
		Value:    arbmath.U256Clone(r.Value).ToBig(),
		Data:     r.Data,
	}
}

// RPCArgs renders the request as eth_sendTransaction / eth_call arguments
func (r *TransactionRequest) RPCArgs() map[string]interface{} {
	args := map[string]interface{}{
		"from":     r.From,
		"gas":      hexutil.Uint64(r.Gas),
		"gasPrice": (*hexutil.Big)(arbmath.U256Clone(r.GasPrice).ToBig()),
		"value":    (*hexutil.Big)(arbmath.U256Clone(r.Value).ToBig()),
		"nonce":    hexutil.Uint64(r.Nonce),
		"data":     hexutil.Bytes(r.Data),
	}
	if r.To != nil {
		args["to"] = *r.To
	}
	return args
}
