// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package tx7e

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

const numFields = 9

var (
	ErrNotDepositTransaction = errors.New("not a deposit transaction")
	ErrMalformedRLP          = errors.New("malformed RLP")
	ErrInsufficientFields    = errors.New("insufficient RLP fields")
	ErrTooManyFields         = errors.New("too many RLP fields")
	ErrInvalidField          = errors.New("invalid field")
)

var fieldNames = [numFields]string{"nonce", "gasPrice", "gasLimit", "to", "value", "data", "v", "r", "s"}

func IsDepositTransaction(raw []byte) bool {
	return len(raw) > 0 && raw[0] == DepositTxType
}

func (tx *DepositTransaction) wireFields() []interface{} {
	return []interface{}{
		tx.Nonce,
		arbmath.U256Clone(tx.GasPrice).Bytes(),
		tx.GasLimit,
		tx.To.Bytes(),
		arbmath.U256Clone(tx.Value).Bytes(),
		tx.Data,
		tx.V,
		tx.R,
		tx.S,
	}
}

// Encode serializes the type byte followed by the nine wire fields
func Encode(tx *DepositTransaction) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(tx.wireFields())
	if err != nil {
		return nil, err
	}
	return append([]byte{DepositTxType}, payload...), nil
}

// Hash is keccak256 of the encoded transaction
func Hash(tx *DepositTransaction) (common.Hash, error) {
	encoded, err := Encode(tx)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}

func splitFields(payload []byte) ([][]byte, error) {
	var elements []rlp.RawValue
	if err := rlp.DecodeBytes(payload, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRLP, err)
	}
	if len(elements) < numFields {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInsufficientFields, numFields, len(elements))
	}
	if len(elements) > numFields {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrTooManyFields, numFields, len(elements))
	}
	fields := make([][]byte, numFields)
	for i, element := range elements {
		kind, content, _, err := rlp.Split(element)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRLP, fieldNames[i], err)
		}
		// single bytes below 0x80 are their own encoding
		if kind != rlp.String && kind != rlp.Byte {
			return nil, fmt.Errorf("%w: %s must be a byte string", ErrInvalidField, fieldNames[i])
		}
		fields[i] = content
	}
	return fields, nil
}

func decodeInteger(name string, content []byte, maxBytes int) ([]byte, error) {
	if len(content) > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidField, name, maxBytes)
	}
	if len(content) > 0 && content[0] == 0 {
		return nil, fmt.Errorf("%w: %s has leading zero bytes", ErrInvalidField, name)
	}
	return content, nil
}

func decodeUint64(name string, content []byte) (uint64, error) {
	integer, err := decodeInteger(name, content, 8)
	if err != nil {
		return 0, err
	}
	return new(uint256.Int).SetBytes(integer).Uint64(), nil
}

func decodeU256(name string, content []byte) (*uint256.Int, error) {
	integer, err := decodeInteger(name, content, 32)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(integer), nil
}

// Parse decodes a raw 0x7e transaction. No partial transaction is returned on error.
func Parse(raw []byte) (*DepositTransaction, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrNotDepositTransaction)
	}
	if raw[0] != DepositTxType {
		return nil, fmt.Errorf("%w: type byte 0x%02x", ErrNotDepositTransaction, raw[0])
	}
	fields, err := splitFields(raw[1:])
	if err != nil {
		return nil, err
	}

	args := DepositTxArgs{}
	if args.Nonce, err = decodeUint64("nonce", fields[0]); err != nil {
		return nil, err
	}
	if args.GasPrice, err = decodeU256("gasPrice", fields[1]); err != nil {
		return nil, err
	}
	if args.GasLimit, err = decodeUint64("gasLimit", fields[2]); err != nil {
		return nil, err
	}
	switch len(fields[3]) {
	case 0:
	case common.AddressLength:
		args.To = common.BytesToAddress(fields[3])
	default:
		return nil, fmt.Errorf("%w: to must be empty or %d bytes, got %d", ErrInvalidField, common.AddressLength, len(fields[3]))
	}
	if args.Value, err = decodeU256("value", fields[4]); err != nil {
		return nil, err
	}
	args.Data = fields[5]
	if args.V, err = decodeUint64("v", fields[6]); err != nil {
		return nil, err
	}
	args.R = fields[7]
	args.S = fields[8]
	return NewDepositTransaction(args), nil
}
