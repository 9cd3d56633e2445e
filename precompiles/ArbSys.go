//
// Copyright 2021, Offchain Labs, Inc. All rights reserved.
//

package precompiles

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/util"
	"github.com/Supercoolkayy/Ox-rollup-sub000/arbutil"
)

const arbSysGasCost = 3

// ArbSys provides system-level functionality for interacting with L1 and understanding the call stack.
type ArbSys struct {
	chainID      huge
	arbOSVersion uint64
	outbox       *Outbox
	methods      *methodTable
}

var sendTxToL1Arguments abi.Arguments

func init() {
	addressType, err := abi.NewType("address", "", nil)
	if err != nil {
		panic(err)
	}
	bytesType, err := abi.NewType("bytes", "", nil)
	if err != nil {
		panic(err)
	}
	sendTxToL1Arguments = abi.Arguments{
		{Name: "destination", Type: addressType},
		{Name: "data", Type: bytesType},
	}
}

// NewArbSys shares outbox with any earlier instance so message ids never repeat
func NewArbSys(config *PrecompileConfig, outbox *Outbox) *ArbSys {
	if outbox == nil {
		outbox = NewOutbox()
	}
	con := &ArbSys{
		chainID:      new(uint256.Int).Set(config.ChainID),
		arbOSVersion: config.ArbOSVersion,
		outbox:       outbox,
	}
	word := arbutil.WordSize
	con.methods = newMethodTable("ArbSys",
		method{"arbChainID", "arbChainID()", arbSysGasCost, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.ArbChainID(c))
		}},
		method{"arbBlockNumber", "arbBlockNumber()", arbSysGasCost, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.ArbBlockNumber(c))
		}},
		method{"arbOSVersion", "arbOSVersion()", arbSysGasCost, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.ArbOSVersion(c))
		}},
		method{"arbBlockHash", "arbBlockHash(uint256)", arbSysGasCost, word, func(c ctx, args []byte) ([]byte, error) {
			number := new(uint256.Int).SetBytes(args[:word])
			hash := con.ArbBlockHash(c, number)
			return hash[:], nil
		}},
		method{"sendTxToL1", "sendTxToL1(address,bytes)", arbSysGasCost, 2 * word, func(c ctx, args []byte) ([]byte, error) {
			values, err := sendTxToL1Arguments.Unpack(args)
			if err != nil {
				return nil, fmt.Errorf("%w for sendTxToL1: %v", ErrInvalidCalldataLength, err)
			}
			destination, _ := values[0].(common.Address)
			data, _ := values[1].([]byte)
			return wordOutput(con.SendTxToL1(c, destination, data))
		}},
		method{"mapL1SenderContractAddressToL2Alias", "mapL1SenderContractAddressToL2Alias(address,address)", arbSysGasCost, word,
			func(c ctx, args []byte) ([]byte, error) {
				sender, err := addressArg("mapL1SenderContractAddressToL2Alias", args, 0)
				if err != nil {
					return nil, err
				}
				return addressOutput(con.MapL1SenderContractAddressToL2Alias(c, sender))
			}},
		method{"withdrawEth", "withdrawEth(address)", arbSysGasCost, word, func(c ctx, args []byte) ([]byte, error) {
			destination, err := addressArg("withdrawEth", args, 0)
			if err != nil {
				return nil, err
			}
			return wordOutput(con.WithdrawEth(c, destination))
		}},
		method{"isTopLevelCall", "isTopLevelCall()", arbSysGasCost, 0, func(c ctx, _ []byte) ([]byte, error) {
			return boolOutput(con.IsTopLevelCall(c))
		}},
		method{"wasMyCallersAddressAliased", "wasMyCallersAddressAliased()", arbSysGasCost, 0, func(c ctx, _ []byte) ([]byte, error) {
			return boolOutput(con.WasMyCallersAddressAliased(c))
		}},
		method{"myCallersAddressWithoutAliasing", "myCallersAddressWithoutAliasing()", arbSysGasCost, 0, func(c ctx, _ []byte) ([]byte, error) {
			return addressOutput(con.MyCallersAddressWithoutAliasing(c))
		}},
		method{"getStorageGasAvailable", "getStorageGasAvailable()", arbSysGasCost, 0, func(c ctx, _ []byte) ([]byte, error) {
			return wordOutput(con.GetStorageGasAvailable(c))
		}},
	)
	return con
}

func (con *ArbSys) Address() addr {
	return ArbSysAddress
}

func (con *ArbSys) Name() string {
	return "ArbSys"
}

func (con *ArbSys) Run(input []byte, c ctx) ([]byte, error) {
	return con.methods.dispatch(input, c)
}

func (con *ArbSys) GasCost(input []byte) uint64 {
	return con.methods.gasCost(input)
}

func (con *ArbSys) Outbox() *Outbox {
	return con.outbox
}

// ArbChainID prefers the host's chain id over the configured one
func (con *ArbSys) ArbChainID(c ctx) huge {
	if c.ChainID != nil && !c.ChainID.IsZero() {
		return new(uint256.Int).Set(c.ChainID)
	}
	return new(uint256.Int).Set(con.chainID)
}

func (con *ArbSys) ArbBlockNumber(c ctx) huge {
	return uint256.NewInt(c.BlockNumber)
}

func (con *ArbSys) ArbOSVersion(c ctx) huge {
	return uint256.NewInt(con.arbOSVersion)
}

// ArbBlockHash is a stand-in: there is no block history, so any number gets a
// hash derived from the chain id and the number itself.
func (con *ArbSys) ArbBlockHash(c ctx, arbBlockNum huge) common.Hash {
	return crypto.Keccak256Hash(arbutil.EncodeWord(con.ArbChainID(c)), arbutil.EncodeWord(arbBlockNum))
}

// SendTxToL1 queues a message in the outbox and returns its id
func (con *ArbSys) SendTxToL1(c ctx, destination addr, calldataForL1 []byte) huge {
	msg := con.outbox.Send(c.Caller, destination, c.CallValue, c.BlockNumber, c.Timestamp, calldataForL1)
	log.Debug("queued L2 to L1 message", "id", msg.ID, "sender", c.Caller, "destination", destination, "hash", msg.Hash)
	return uint256.NewInt(msg.ID)
}

func (con *ArbSys) WithdrawEth(c ctx, destination addr) huge {
	return con.SendTxToL1(c, destination, nil)
}

// MapL1SenderContractAddressToL2Alias aliases sender; the second argument is unused
func (con *ArbSys) MapL1SenderContractAddressToL2Alias(c ctx, sender addr) addr {
	return util.RemapL1Address(sender)
}

func (con *ArbSys) IsTopLevelCall(c ctx) bool {
	return len(c.CallStack) <= 1
}

// The emulator delivers no L1 messages, so callers are never aliased
func (con *ArbSys) WasMyCallersAddressAliased(c ctx) bool {
	return false
}

func (con *ArbSys) MyCallersAddressWithoutAliasing(c ctx) addr {
	return c.Caller
}

// Nitro has no concept of storage gas
func (con *ArbSys) GetStorageGasAvailable(c ctx) huge {
	return new(uint256.Int)
}
