package arbutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/holiman/uint256"
)

func TestWordEncoding(t *testing.T) {
	for _, tc := range []struct {
		desc  string
		value *uint256.Int
		want  []byte
	}{
		{
			desc:  "zero",
			value: new(uint256.Int),
			want:  make([]byte, 32),
		},
		{
			desc:  "chain id",
			value: uint256.NewInt(42161),
			want:  common.HexToHash("0xa4b1").Bytes(),
		},
		{
			desc:  "above 64 bits",
			value: new(uint256.Int).Lsh(uint256.NewInt(1), 200),
			want:  common.HexToHash("0x0000000000000100000000000000000000000000000000000000000000000000").Bytes(),
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			got := EncodeWord(tc.value)
			if !bytes.Equal(got, tc.want) {
				t.Errorf("EncodeWord(%v) = %x, want %x", tc.value, got, tc.want)
			}
			back, err := DecodeWord(got)
			if err != nil {
				t.Fatal(err)
			}
			if !back.Eq(tc.value) {
				t.Errorf("DecodeWord(%x) = %v, want %v", got, back, tc.value)
			}
		})
	}
}

func TestDecodeWordLength(t *testing.T) {
	if _, err := DecodeWord(make([]byte, 31)); !errors.Is(err, ErrWordLength) {
		t.Errorf("expected word length error, got %v", err)
	}
}

func TestWords(t *testing.T) {
	values := []*uint256.Int{uint256.NewInt(1), uint256.NewInt(2), new(uint256.Int).SetAllOne()}
	encoded := EncodeWords(values...)
	if len(encoded) != 96 {
		t.Fatalf("unexpected tuple length %d", len(encoded))
	}
	decoded, err := DecodeWords(encoded, 3)
	if err != nil {
		t.Fatal(err)
	}
	diff := cmp.Diff(values, decoded, cmp.Comparer(func(a, b *uint256.Int) bool { return a.Eq(b) }))
	if diff != "" {
		t.Errorf("tuple round trip mismatch (-want +got):\n%s", diff)
	}
	if _, err := DecodeWords(encoded, 4); err == nil {
		t.Error("decoded more words than present")
	}
}

func TestAddressWords(t *testing.T) {
	address := common.HexToAddress("0xC1b634853Cb333D3aD8663715b08f41A3Aec47cc")
	word := AddressToWord(address)
	got, err := WordToAddress(word)
	if err != nil {
		t.Fatal(err)
	}
	if got != address {
		t.Errorf("WordToAddress = %v, want %v", got, address)
	}
	word[0] = 1
	if _, err := WordToAddress(word); !errors.Is(err, ErrDirtyAddress) {
		t.Errorf("expected dirty address error, got %v", err)
	}
}

func TestSelector(t *testing.T) {
	for _, tc := range []struct {
		signature string
		want      string
	}{
		{"arbChainID()", "d127f54a"},
		{"arbBlockNumber()", "a3b1b31d"},
		{"transfer(address,uint256)", "a9059cbb"},
	} {
		selector := Selector(tc.signature)
		if got := common.Bytes2Hex(selector[:]); got != tc.want {
			t.Errorf("Selector(%q) = %s, want %s", tc.signature, got, tc.want)
		}
	}
	data := Calldata("transfer(address,uint256)", AddressToWord(common.Address{}), EncodeUint64Word(5))
	if len(data) != 4+64 {
		t.Errorf("unexpected calldata length %d", len(data))
	}
}
