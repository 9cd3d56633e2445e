// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package arbcompress

import (
	"bytes"
	"testing"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/testhelpers"
)

func testDecompress(t *testing.T, compressed, decompressed []byte) {
	t.Helper()
	res, err := Decompress(compressed, len(decompressed)*2+64)
	Require(t, err)
	if !bytes.Equal(res, decompressed) {
		Fail(t, "round trip mismatch")
	}
}

func TestCompressDecompress(t *testing.T) {
	source := testhelpers.NewPseudoRandomDataSource(t, 0)
	inputs := [][]byte{
		{},
		make([]byte, 1024),
		source.GetData(777),
		bytes.Repeat([]byte("deposit"), 300),
	}
	for _, input := range inputs {
		for _, level := range []int{LEVEL_FAST, LEVEL_WELL} {
			compressed, err := CompressLevel(input, level)
			Require(t, err)
			testDecompress(t, compressed, input)
		}
	}

	zeros, err := CompressWell(make([]byte, 4096))
	Require(t, err)
	if len(zeros) >= 64 {
		Fail(t, "zeros should compress well, got", len(zeros), "bytes")
	}
}

func TestDecompressLimit(t *testing.T) {
	compressed, err := CompressWell(make([]byte, 1000))
	Require(t, err)
	if _, err := Decompress(compressed, 999); err == nil {
		Fail(t, "decompression above the limit should fail")
	}
}

func Require(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	testhelpers.RequireImpl(t, err, printables...)
}

func Fail(t *testing.T, printables ...interface{}) {
	t.Helper()
	testhelpers.FailImpl(t, printables...)
}
