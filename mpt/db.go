// Package mpt implements an Ethereum-flavor Merkle-Patricia-Trie: hex-nibble
// paths, Keccak-256 node hashing, RLP node encoding. It is the C2 "MPT engine
// adapter" layer: a Trie is opened against a caller-supplied, read-only Db and
// produces, on Commit, a new root plus the set of node inserts and deletes the
// caller must apply to keep that Db in sync.
package mpt

//go:generate mockgen -source db.go -destination db_mock.go -package mpt

import "github.com/parallelchain-io/pchain-world-state/common"

// Db is the read-only backing store a Trie is opened against. It is the one
// capability this entire module consumes from the outside world: a
// content-addressed lookup from a 32-byte node hash to the node's encoded
// bytes. Implementations may be queried concurrently from multiple Trie
// instances but a single Trie is not safe for concurrent use.
//
// A missing node is not an error at the Db level (Get returns ok=false); it
// becomes pwserr.ErrNodeMissing only when the Trie actually needs to
// traverse through it.
type Db interface {
	Get(hash common.NodeHash) ([]byte, bool)
}

// EmptyRoot is the well-known root hash of a trie with no entries: the
// Keccak-256 hash of the RLP encoding of an empty byte string.
var EmptyRoot = emptyRoot()
