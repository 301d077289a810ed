package mpt

import (
	"fmt"

	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/internal/rlpcodec"
)

// encodeRef RLP-encodes a single child reference. hashAndStore (trie.go)
// collapses every child too large to inline down to a hashNode before
// encodeNode is called; a child small enough to inline (its own RLP
// encoding under 32 bytes) instead arrives here still as a *fullNode or
// *shortNode, and is embedded as a raw RLP list rather than as a string
// reference, matching go-ethereum's shortNode/fullNode collapse rules.
func encodeRef(n node) []byte {
	switch v := n.(type) {
	case nil:
		return rlpcodec.EncodeString(nil)
	case hashNode:
		h := common.NodeHash(v)
		return rlpcodec.EncodeString(h[:])
	case valueNode:
		return rlpcodec.EncodeString(v)
	case *shortNode, *fullNode:
		return encodeNode(v)
	default:
		panic(fmt.Sprintf("mpt: cannot encode node reference of type %T", n))
	}
}

// encodeNode produces the canonical RLP encoding of a fullNode or shortNode.
func encodeNode(n node) []byte {
	switch v := n.(type) {
	case *shortNode:
		key := rlpcodec.EncodeString(hexPrefixEncode(v.Key))
		return rlpcodec.EncodeList(key, encodeRef(v.Val))
	case *fullNode:
		parts := make([][]byte, 17)
		for i := 0; i < 17; i++ {
			parts[i] = encodeRef(v.Children[i])
		}
		return rlpcodec.EncodeList(parts...)
	default:
		panic(fmt.Sprintf("mpt: cannot encode node of type %T", n))
	}
}

// decodeNode parses the RLP encoding produced by encodeNode back into a
// fullNode or shortNode whose children are either nil, a hashNode, a
// valueNode, or an inlined *fullNode/*shortNode (see decodeRef).
func decodeNode(data []byte) (node, error) {
	items, err := rlpcodec.DecodeList(data)
	if err != nil {
		return nil, err
	}
	switch len(items) {
	case 2:
		rawKey, err := rlpcodec.DecodeString(items[0])
		if err != nil {
			return nil, err
		}
		nibbles := hexPrefixDecode(rawKey)
		val, err := decodeRef(items[1], hasTerm(nibbles))
		if err != nil {
			return nil, err
		}
		return &shortNode{Key: nibbles, Val: val}, nil
	case 17:
		fn := &fullNode{}
		for i := 0; i < 16; i++ {
			child, err := decodeRef(items[i], false)
			if err != nil {
				return nil, err
			}
			fn.Children[i] = child
		}
		value, err := decodeRef(items[16], true)
		if err != nil {
			return nil, err
		}
		fn.Children[16] = value
		return fn, nil
	default:
		return nil, fmt.Errorf("mpt: malformed node encoding: %d items", len(items))
	}
}

// decodeRef decodes a single RLP-encoded child reference. asValue controls
// how a non-empty, non-32-byte string is interpreted: the value slot of a
// fullNode and the Val of a leaf shortNode always hold raw values, while a
// branch child or extension Val always holds either a 32-byte hash or, if it
// was small enough to be inlined by the encoder, the child node's own RLP
// list embedded in place of a string reference (never true for asValue
// slots, which never hold a sub-node).
func decodeRef(item []byte, asValue bool) (node, error) {
	if !asValue && len(item) > 0 && item[0] >= 0xc0 {
		return decodeNode(item)
	}
	raw, err := rlpcodec.DecodeString(item)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if asValue {
		return valueNode(raw), nil
	}
	h, ok := common.HashFromBytes(raw)
	if !ok {
		return nil, fmt.Errorf("mpt: child reference is not a 32-byte hash")
	}
	return hashNode(h), nil
}
