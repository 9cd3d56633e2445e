// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

// Package tx7eexec runs deposit transactions against a host provider that only
// understands ordinary transactions.
package tx7eexec

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/holiman/uint256"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/l1pricing"
	"github.com/Supercoolkayy/Ox-rollup-sub000/arbos/tx7e"
	"github.com/Supercoolkayy/Ox-rollup-sub000/execution"
)

var (
	depositsProcessedCounter = metrics.NewRegisteredCounter("arb/deposits/processed", nil)
	depositsRejectedCounter  = metrics.NewRegisteredCounter("arb/deposits/rejected", nil)
	depositsFailedCounter    = metrics.NewRegisteredCounter("arb/deposits/failed", nil)
)

type FailureKind uint8

const (
	NoFailure FailureKind = iota
	ParseFailure
	ValidationFailure
	ExecutionFailure
	EstimationFailure
	SimulationFailure
)

func (k FailureKind) String() string {
	switch k {
	case NoFailure:
		return "none"
	case ParseFailure:
		return "Parsing failed"
	case ValidationFailure:
		return "Validation failed"
	case ExecutionFailure:
		return "Execution failed"
	case EstimationFailure:
		return "Gas estimation failed"
	case SimulationFailure:
		return "Simulation failed"
	default:
		return fmt.Sprintf("FailureKind(%d)", uint8(k))
	}
}

// ProcessingError tags an error with the stage that produced it
type ProcessingError struct {
	Kind FailureKind
	Err  error
}

func (e *ProcessingError) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func failed(kind FailureKind, err error) *ProcessingError {
	return &ProcessingError{Kind: kind, Err: err}
}

func validationError(result tx7e.ValidationResult) error {
	return errors.New(strings.Join(result.Errors, "; "))
}

type ProcessingResult struct {
	Success     bool
	Kind        FailureKind
	Error       string
	Transaction *tx7e.DepositTransaction // nil when parsing failed
	DepositHash common.Hash
	TxHash      common.Hash
	GasUsed     uint64
	L1Cost      *uint256.Int // nil without a pricing source
	Warnings    []string

	err error
}

// Err is nil for successful results
func (r *ProcessingResult) Err() error {
	return r.err
}

func (r *ProcessingResult) fail(err *ProcessingError) *ProcessingResult {
	r.Success = false
	r.Kind = err.Kind
	r.Error = err.Error()
	r.err = err
	return r
}

// PricingSource supplies the L1 price used to estimate what posting a deposit would cost
type PricingSource func() *l1pricing.Model

type Processor struct {
	provider execution.Provider
	pricing  PricingSource
}

func NewProcessor(provider execution.Provider, pricing PricingSource) *Processor {
	return &Processor{
		provider: provider,
		pricing:  pricing,
	}
}

// prepare parses and validates raw, returning the projected request
func (p *Processor) prepare(raw []byte, kind FailureKind) (*tx7e.DepositTransaction, tx7e.ValidationResult, *ProcessingError) {
	tx, err := tx7e.Parse(raw)
	if err != nil {
		if kind == NoFailure {
			kind = ParseFailure
		}
		return nil, tx7e.ValidationResult{}, failed(kind, err)
	}
	validation := tx7e.Validate(tx)
	if !validation.Valid {
		if kind == NoFailure {
			kind = ValidationFailure
		}
		return tx, validation, failed(kind, validationError(validation))
	}
	return tx, validation, nil
}

// ProcessTransaction parses, validates and executes one deposit.
// Failures are reported in the result, never returned.
func (p *Processor) ProcessTransaction(ctx context.Context, raw []byte) *ProcessingResult {
	result := &ProcessingResult{}
	tx, validation, perr := p.prepare(raw, NoFailure)
	result.Transaction = tx
	result.Warnings = validation.Warnings
	if perr != nil {
		depositsRejectedCounter.Inc(1)
		log.Warn("rejected deposit transaction", "err", perr)
		return result.fail(perr)
	}
	depositHash, err := tx7e.Hash(tx)
	if err != nil {
		depositsRejectedCounter.Inc(1)
		return result.fail(failed(ParseFailure, err))
	}
	result.DepositHash = depositHash
	for _, warning := range validation.Warnings {
		log.Warn("deposit transaction warning", "hash", depositHash, "warning", warning)
	}
	if p.pricing != nil {
		cost, _, err := p.pricing().PosterDataCost(raw)
		if err != nil {
			log.Warn("unable to estimate deposit L1 cost", "hash", depositHash, "err", err)
		} else {
			result.L1Cost = cost
		}
	}

	submission, err := p.provider.SendTransaction(ctx, tx.ToEthereumTransaction())
	if err != nil {
		depositsFailedCounter.Inc(1)
		log.Warn("deposit transaction execution failed", "hash", depositHash, "err", err)
		return result.fail(failed(ExecutionFailure, err))
	}
	depositsProcessedCounter.Inc(1)
	result.Success = true
	result.TxHash = submission.Hash
	result.GasUsed = submission.GasUsed
	log.Info("executed deposit transaction", "hash", depositHash, "txHash", submission.Hash, "gasUsed", submission.GasUsed)
	return result
}

func (p *Processor) EstimateGas(ctx context.Context, raw []byte) (uint64, error) {
	tx, _, perr := p.prepare(raw, EstimationFailure)
	if perr != nil {
		return 0, perr
	}
	gas, err := p.provider.EstimateGas(ctx, tx.ToEthereumTransaction())
	if err != nil {
		return 0, failed(EstimationFailure, err)
	}
	return gas, nil
}

// CallStatic simulates the deposit without changing any state
func (p *Processor) CallStatic(ctx context.Context, raw []byte) ([]byte, error) {
	tx, _, perr := p.prepare(raw, SimulationFailure)
	if perr != nil {
		return nil, perr
	}
	output, err := p.provider.Call(ctx, tx.ToEthereumTransaction())
	if err != nil {
		return nil, failed(SimulationFailure, err)
	}
	return output, nil
}

// ValidateTransaction inspects raw without executing it. The error is only set when parsing fails.
func (p *Processor) ValidateTransaction(raw []byte) (*tx7e.DepositTransaction, tx7e.ValidationResult, error) {
	tx, err := tx7e.Parse(raw)
	if err != nil {
		return nil, tx7e.ValidationResult{}, failed(ParseFailure, err)
	}
	return tx, tx7e.Validate(tx), nil
}

// ProcessBatch processes each deposit in order; a failure does not stop the batch
func (p *Processor) ProcessBatch(ctx context.Context, raws [][]byte) []*ProcessingResult {
	results := make([]*ProcessingResult, len(raws))
	for i, raw := range raws {
		results[i] = p.ProcessTransaction(ctx, raw)
	}
	return results
}
