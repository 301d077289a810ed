package mpt

import "github.com/parallelchain-io/pchain-world-state/common"

// node is the internal representation of one trie node. It is one of:
//
//   - nil:        the empty subtree.
//   - *fullNode:  a branch with up to 16 nibble-indexed children plus an
//     optional value at index 16.
//   - *shortNode: a compressed path segment; its Val is either another node
//     (an "extension") or a valueNode (a "leaf").
//   - hashNode:   a reference to a node that has been committed and is only
//     known by its hash; it must be resolved through the Db before it can be
//     read or mutated further.
//   - valueNode:  a raw leaf value.
//
// This mirrors go-ethereum's trie node model, including its inlining rule:
// a child whose RLP encoding is shorter than 32 bytes is embedded directly
// in its parent's encoding instead of being hashed and stored as its own Db
// entry (encode.go, hashAndStore in trie.go). The root is always hashed and
// stored regardless of size, since it is the one node address callers see.
type node interface{}

type fullNode struct {
	Children [17]node // index 0-15: nibble children; 16: value at this path
}

type shortNode struct {
	Key []nibble // path segment, raw nibbles; ends with terminator iff Val is a leaf value
	Val node
}

type hashNode common.NodeHash

type valueNode []byte

func (n *fullNode) copy() *fullNode {
	cp := *n
	return &cp
}

func (n *shortNode) copy() *shortNode {
	cp := *n
	cp.Key = append([]nibble(nil), n.Key...)
	return &cp
}
