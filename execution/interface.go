package execution

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/tx7e"
)

// Submission is what the execution side reports for an accepted transaction
type Submission struct {
	Hash    common.Hash
	GasUsed uint64
	Status  uint64
}

var ErrTransactionReverted = errors.New("transaction reverted")

// Provider is the host node that actually executes transactions.
// It knows nothing of deposit transactions.
type Provider interface {
	SendTransaction(ctx context.Context, request *tx7e.TransactionRequest) (*Submission, error)
	EstimateGas(ctx context.Context, request *tx7e.TransactionRequest) (uint64, error)
	// side-effect free
	Call(ctx context.Context, request *tx7e.TransactionRequest) ([]byte, error)
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
}
