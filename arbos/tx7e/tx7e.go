// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

// Package tx7e implements the 0x7e deposit transaction envelope:
//
//	0x7e ++ rlp([nonce, gasPrice, gasLimit, to, value, data, v, r, s])
//
// The source hash, creation flag and sender are derived from the decoded fields
// and never read from the wire.
package tx7e

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

const DepositTxType byte = 0x7e

type DepositTransaction struct {
	Type       byte
	SourceHash common.Hash
	From       common.Address
	To         common.Address // zero for contract creation
	Mint       *uint256.Int
	Value      *uint256.Int
	GasLimit   uint64
	IsCreation bool
	Data       []byte
	Nonce      uint64
	GasPrice   *uint256.Int
	V          uint64
	R          []byte
	S          []byte
}

// DepositTxArgs are the fields carried on the wire
type DepositTxArgs struct {
	Nonce    uint64
	GasPrice *uint256.Int
	GasLimit uint64
	To       common.Address
	Value    *uint256.Int
	Data     []byte
	V        uint64
	R        []byte
	S        []byte
}

func nilIfEmpty(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	return common.CopyBytes(data)
}

// NewDepositTransaction builds a transaction from wire fields and derives the rest
func NewDepositTransaction(args DepositTxArgs) *DepositTransaction {
	tx := &DepositTransaction{
		Type:     DepositTxType,
		Mint:     new(uint256.Int),
		Value:    arbmath.U256Clone(args.Value),
		GasLimit: args.GasLimit,
		To:       args.To,
		Data:     nilIfEmpty(args.Data),
		Nonce:    args.Nonce,
		GasPrice: arbmath.U256Clone(args.GasPrice),
		V:        args.V,
		R:        nilIfEmpty(args.R),
		S:        nilIfEmpty(args.S),
	}
	tx.deriveFields()
	return tx
}

func (tx *DepositTransaction) deriveFields() {
	tx.IsCreation = tx.To == (common.Address{}) && len(tx.Data) > 0
	tx.SourceHash = SourceHash(tx)
	tx.From = recoverSender(tx)
}

var sourceHashArguments abi.Arguments

func init() {
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	addressType, err := abi.NewType("address", "", nil)
	if err != nil {
		panic(err)
	}
	bytesType, err := abi.NewType("bytes", "", nil)
	if err != nil {
		panic(err)
	}
	sourceHashArguments = abi.Arguments{
		{Name: "nonce", Type: uint256Type},
		{Name: "gasPrice", Type: uint256Type},
		{Name: "gasLimit", Type: uint256Type},
		{Name: "to", Type: addressType},
		{Name: "value", Type: uint256Type},
		{Name: "data", Type: bytesType},
	}
}

// SourceHash is keccak256(abi.encode(nonce, gasPrice, gasLimit, to, value, data))
func SourceHash(tx *DepositTransaction) common.Hash {
	data := tx.Data
	if data == nil {
		data = []byte{}
	}
	packed, err := sourceHashArguments.Pack(
		new(big.Int).SetUint64(tx.Nonce),
		arbmath.U256Clone(tx.GasPrice).ToBig(),
		new(big.Int).SetUint64(tx.GasLimit),
		tx.To,
		arbmath.U256Clone(tx.Value).ToBig(),
		data,
	)
	if err != nil {
		// static types that always pack
		panic(err)
	}
	return crypto.Keccak256Hash(packed)
}

// SigningHash is keccak256(0x7e ++ rlp([nonce, gasPrice, gasLimit, to, value, data]))
func SigningHash(tx *DepositTransaction) common.Hash {
	payload, err := rlp.EncodeToBytes(tx.wireFields()[:6])
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash([]byte{DepositTxType}, payload)
}

func recoverSender(tx *DepositTransaction) common.Address {
	if (tx.V != 27 && tx.V != 28) || len(tx.R) != 32 || len(tx.S) != 32 {
		return common.Address{}
	}
	recoveryId := byte(tx.V - 27)
	r := new(big.Int).SetBytes(tx.R)
	s := new(big.Int).SetBytes(tx.S)
	if !crypto.ValidateSignatureValues(recoveryId, r, s, true) {
		return common.Address{}
	}
	signature := make([]byte, 0, crypto.SignatureLength)
	signature = append(signature, tx.R...)
	signature = append(signature, tx.S...)
	signature = append(signature, recoveryId)
	hash := SigningHash(tx)
	pub, err := crypto.SigToPub(hash[:], signature)
	if err != nil {
		return common.Address{}
	}
	return crypto.PubkeyToAddress(*pub)
}

// Sign returns a copy of tx signed by key, with From set to the key's address
func Sign(tx *DepositTransaction, key *ecdsa.PrivateKey) (*DepositTransaction, error) {
	signed := tx.Copy()
	hash := SigningHash(signed)
	signature, err := crypto.Sign(hash[:], key)
	if err != nil {
		return nil, err
	}
	signed.R = common.CopyBytes(signature[:32])
	signed.S = common.CopyBytes(signature[32:64])
	signed.V = uint64(signature[64]) + 27
	signed.deriveFields()
	return signed, nil
}

func (tx *DepositTransaction) Copy() *DepositTransaction {
	cpy := *tx
	cpy.Mint = arbmath.U256Clone(tx.Mint)
	cpy.Value = arbmath.U256Clone(tx.Value)
	cpy.GasPrice = arbmath.U256Clone(tx.GasPrice)
	cpy.Data = nilIfEmpty(tx.Data)
	cpy.R = nilIfEmpty(tx.R)
	cpy.S = nilIfEmpty(tx.S)
	return &cpy
}
