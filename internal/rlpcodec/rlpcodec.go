// Package rlpcodec is a thin wrapper around go-ethereum's rlp package,
// exposing exactly the two primitives the mpt package's node encoding needs:
// RLP strings and RLP lists of already-encoded items.
package rlpcodec

import "github.com/ethereum/go-ethereum/rlp"

// EncodeString RLP-encodes b as a byte string.
func EncodeString(b []byte) []byte {
	enc, err := rlp.EncodeToBytes(b)
	if err != nil {
		// rlp.EncodeToBytes on a []byte cannot fail.
		panic(err)
	}
	return enc
}

// DecodeString decodes an RLP byte string.
func DecodeString(data []byte) ([]byte, error) {
	var b []byte
	if err := rlp.DecodeBytes(data, &b); err != nil {
		return nil, err
	}
	return b, nil
}

// EncodeList RLP-encodes items, each of which must already be a complete RLP
// encoding, as a single RLP list.
func EncodeList(items ...[]byte) []byte {
	raws := make([]rlp.RawValue, len(items))
	for i, it := range items {
		raws[i] = rlp.RawValue(it)
	}
	enc, err := rlp.EncodeToBytes(raws)
	if err != nil {
		panic(err)
	}
	return enc
}

// DecodeList decodes an RLP list into its element encodings, each still
// RLP-encoded.
func DecodeList(data []byte) ([][]byte, error) {
	var raws []rlp.RawValue
	if err := rlp.DecodeBytes(data, &raws); err != nil {
		return nil, err
	}
	out := make([][]byte, len(raws))
	for i, r := range raws {
		out[i] = []byte(r)
	}
	return out, nil
}
