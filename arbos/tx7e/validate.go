// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package tx7e

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

const MinGasLimit uint64 = 21_000
const MaxGasLimit uint64 = 30_000_000

// Thresholds past which a fixture is accepted but flagged
const HighGasLimitWarning uint64 = 1_000_000
const LargeDataWarning = 500

type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks every rule and reports all violations, not just the first
func Validate(tx *DepositTransaction) ValidationResult {
	var errs, warnings []string
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if tx.Type != DepositTxType {
		fail("invalid transaction type 0x%02x, expected 0x%02x", tx.Type, DepositTxType)
	}
	if tx.GasLimit < MinGasLimit {
		fail("gas limit %d is below the minimum of %d", tx.GasLimit, MinGasLimit)
	}
	if tx.GasLimit > MaxGasLimit {
		fail("gas limit %d exceeds the maximum of %d", tx.GasLimit, MaxGasLimit)
	}
	// uint256 values cannot be negative, only absent
	if tx.Value == nil {
		fail("value is missing")
	}
	if tx.Mint == nil {
		fail("mint is missing")
	}
	if tx.V != 27 && tx.V != 28 {
		fail("invalid signature v value %d, expected 27 or 28", tx.V)
	}
	if len(tx.R) != 32 {
		fail("signature r must be 32 bytes, got %d", len(tx.R))
	}
	if len(tx.S) != 32 {
		fail("signature s must be 32 bytes, got %d", len(tx.S))
	}
	if tx.IsCreation && tx.To != (common.Address{}) {
		fail("creation transaction must not have a recipient, got %v", tx.To)
	}

	if tx.GasLimit > HighGasLimitWarning {
		warnings = append(warnings, fmt.Sprintf("gas limit %d is unusually high", tx.GasLimit))
	}
	if len(tx.Data) > LargeDataWarning {
		warnings = append(warnings, fmt.Sprintf("calldata of %d bytes is unusually large", len(tx.Data)))
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}
