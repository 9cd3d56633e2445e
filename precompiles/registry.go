// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
)

var (
	ErrNoHandler         = errors.New("no handler registered")
	ErrAlreadyRegistered = errors.New("handler already registered")
)

var (
	precompileCallCounter    = metrics.NewRegisteredCounter("arb/precompiles/calls", nil)
	precompileFailureCounter = metrics.NewRegisteredCounter("arb/precompiles/failures", nil)
	precompileCallTimer      = metrics.NewRegisteredTimer("arb/precompiles/duration", nil)
)

// Registry binds each precompile address to exactly one handler
type Registry struct {
	mutex    sync.RWMutex
	handlers map[common.Address]Handler
	order    []Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[common.Address]Handler),
	}
}

// Register fails when the address is taken, keeping the existing binding
func (r *Registry) Register(handler Handler) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	address := handler.Address()
	if existing, ok := r.handlers[address]; ok {
		return fmt.Errorf("%w at %s: %s", ErrAlreadyRegistered, strings.ToLower(address.Hex()), existing.Name())
	}
	r.handlers[address] = handler
	r.order = append(r.order, handler)
	return nil
}

func (r *Registry) GetHandler(address common.Address) (Handler, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	handler, ok := r.handlers[address]
	return handler, ok
}

// List returns handlers in registration order
func (r *Registry) List() []Handler {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return append([]Handler(nil), r.order...)
}

func (r *Registry) Addresses() []common.Address {
	handlers := r.List()
	addresses := make([]common.Address, len(handlers))
	for i, handler := range handlers {
		addresses[i] = handler.Address()
	}
	return addresses
}

func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.order)
}

// HandleCall dispatches one message call. Errors and panics become failed results with zero gas.
func (r *Registry) HandleCall(address common.Address, calldata []byte, c ExecutionContext) PrecompileResult {
	handler, ok := r.GetHandler(address)
	if !ok {
		precompileFailureCounter.Inc(1)
		return failure(fmt.Errorf("%w for %s", ErrNoHandler, strings.ToLower(address.Hex())))
	}
	defer precompileCallTimer.UpdateSince(time.Now())
	precompileCallCounter.Inc(1)

	output, err := runHandler(handler, calldata, c)
	if err != nil {
		precompileFailureCounter.Inc(1)
		log.Debug("precompile call failed", "precompile", handler.Name(), "caller", c.Caller, "err", err)
		return failure(err)
	}
	return PrecompileResult{
		Success: true,
		Output:  output,
		GasUsed: handler.GasCost(calldata),
	}
}

func runHandler(handler Handler, calldata []byte, c ExecutionContext) (output []byte, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error("precompile panicked", "precompile", handler.Name(), "panic", recovered)
			output, err = nil, fmt.Errorf("%s panicked: %v", handler.Name(), recovered)
		}
	}()
	return handler.Run(calldata, c)
}
