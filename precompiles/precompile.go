// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package precompiles

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Supercoolkayy/Ox-rollup-sub000/arbutil"
)

var (
	ArbSysAddress     = common.HexToAddress("0x64")
	ArbGasInfoAddress = common.HexToAddress("0x6c")
)

var (
	ErrCalldataTooShort      = errors.New("calldata too short")
	ErrUnknownSelector       = errors.New("unknown function selector")
	ErrInvalidCalldataLength = errors.New("invalid calldata length")
)

// Handler is a natively implemented contract living at a fixed address
type Handler interface {
	Address() common.Address
	Name() string
	Run(input []byte, c ExecutionContext) ([]byte, error)
	GasCost(input []byte) uint64
}

type method struct {
	name      string
	signature string
	gasCost   uint64
	argsSize  int // minimum bytes after the selector
	run       func(c ctx, args []byte) ([]byte, error)
}

// methodTable maps selectors to methods. It is built once and read concurrently.
type methodTable struct {
	precompile string
	methods    map[[4]byte]*method
	order      []*method
}

// newMethodTable computes each selector from its canonical signature
func newMethodTable(precompile string, methods ...method) *methodTable {
	table := &methodTable{
		precompile: precompile,
		methods:    make(map[[4]byte]*method, len(methods)),
	}
	for i := range methods {
		m := &methods[i]
		selector := arbutil.Selector(m.signature)
		if existing, ok := table.methods[selector]; ok {
			panic(fmt.Sprintf("%s: selector 0x%x of %s collides with %s", precompile, selector, m.signature, existing.signature))
		}
		table.methods[selector] = m
		table.order = append(table.order, m)
	}
	return table
}

func (t *methodTable) lookup(input []byte) (*method, error) {
	if len(input) < 4 {
		return nil, fmt.Errorf("%w for function selector: %d bytes", ErrCalldataTooShort, len(input))
	}
	selector := [4]byte(input[:4])
	m, ok := t.methods[selector]
	if !ok {
		return nil, fmt.Errorf("%w 0x%x", ErrUnknownSelector, selector)
	}
	return m, nil
}

func (t *methodTable) dispatch(input []byte, c ctx) ([]byte, error) {
	m, err := t.lookup(input)
	if err != nil {
		return nil, err
	}
	args := input[4:]
	if len(args) < m.argsSize {
		return nil, fmt.Errorf("%w for %s", ErrInvalidCalldataLength, m.name)
	}
	return m.run(c, args)
}

// gasCost is 0 for input that does not name a known method
func (t *methodTable) gasCost(input []byte) uint64 {
	m, err := t.lookup(input)
	if err != nil {
		return 0
	}
	return m.gasCost
}

func (t *methodTable) signatures() []string {
	result := make([]string, len(t.order))
	for i, m := range t.order {
		result[i] = m.signature
	}
	return result
}

// helpers used by the method tables to encode results

func wordOutput(value huge) ([]byte, error) {
	return arbutil.EncodeWord(value), nil
}

func wordsOutput(values ...huge) ([]byte, error) {
	return arbutil.EncodeWords(values...), nil
}

func addressOutput(address addr) ([]byte, error) {
	return arbutil.AddressToWord(address), nil
}

func boolOutput(value bool) ([]byte, error) {
	return arbutil.EncodeBoolWord(value), nil
}

func addressArg(name string, args []byte, index int) (addr, error) {
	word := args[index*arbutil.WordSize : (index+1)*arbutil.WordSize]
	address, err := arbutil.WordToAddress(word)
	if err != nil {
		return addr{}, fmt.Errorf("%w for %s: %v", ErrInvalidCalldataLength, name, err)
	}
	return address, nil
}
