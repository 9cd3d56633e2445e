// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbutil"
	"github.com/Supercoolkayy/Ox-rollup-sub000/util/arbmath"
)

// L2ToL1Message is a message queued by sendTxToL1. Nothing is ever sent to L1;
// tests inspect the queue instead.
type L2ToL1Message struct {
	ID          uint64
	Sender      common.Address
	Destination common.Address
	CallValue   *uint256.Int
	ArbBlockNum uint64
	Timestamp   uint64
	Data        []byte
	Hash        common.Hash
}

// Outbox assigns message ids. Ids keep increasing when the queue is cleared.
type Outbox struct {
	mutex    sync.Mutex
	nextID   uint64
	messages []L2ToL1Message
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Send(sender, destination common.Address, value *uint256.Int, blockNum, timestamp uint64, data []byte) L2ToL1Message {
	value = arbmath.U256Clone(value)
	msg := L2ToL1Message{
		Sender:      sender,
		Destination: destination,
		CallValue:   value,
		ArbBlockNum: blockNum,
		Timestamp:   timestamp,
		Data:        common.CopyBytes(data),
	}
	msg.Hash = arbutil.PaddedKeccak256(
		sender.Bytes(),
		destination.Bytes(),
		arbutil.EncodeUint64Word(blockNum),
		arbutil.EncodeUint64Word(timestamp),
		arbutil.EncodeWord(value),
		crypto.Keccak256(data),
	)

	o.mutex.Lock()
	defer o.mutex.Unlock()
	msg.ID = o.nextID
	o.nextID++
	o.messages = append(o.messages, msg)
	return msg
}

// Messages returns a copy of the queue, oldest first
func (o *Outbox) Messages() []L2ToL1Message {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return append([]L2ToL1Message(nil), o.messages...)
}

func (o *Outbox) Len() int {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return len(o.messages)
}

func (o *Outbox) Clear() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.messages = nil
}
