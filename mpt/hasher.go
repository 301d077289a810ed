package mpt

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/internal/rlpcodec"
)

// hashBytes computes the Keccak-256 digest of data. go-ethereum's crypto
// package is pure Go (no cgo) for this hash, which is why it is used here in
// preference to a cgo-backed implementation.
func hashBytes(data []byte) common.Hash {
	var h common.Hash
	copy(h[:], crypto.Keccak256(data))
	return h
}

// emptyRoot is the hash of the RLP encoding of an empty byte string: the
// canonical root of a trie with no entries.
func emptyRoot() common.Hash {
	return hashBytes(rlpcodec.EncodeString(nil))
}
