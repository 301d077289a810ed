// Package common holds the small value types shared by every package in this
// module: addresses, hashes and the opaque byte types that flow between the
// trie engine and the world-state layer above it.
package common

// Address identifies an account. It is always exactly 32 bytes, matching the
// public-key/hash addressing scheme of the chain this library serves state
// for (not the 20-byte convention of Ethereum-style address spaces).
type Address [32]byte

// Hash is a 32-byte Keccak-256 digest. It is used both as a trie node hash
// (NodeHash) and as a generic fixed-size field value (e.g. StorageRoot).
type Hash [32]byte

// NodeHash is the content-addressed key under which a trie node's encoded
// bytes are stored in a Db. It is always a Hash.
type NodeHash = Hash

// AppKey is an arbitrary, caller-chosen key into a contract's storage trie.
type AppKey []byte

// Value is an opaque trie value. An empty Value is never stored; setting one
// is rejected at the API boundary rather than treated as a remove (see
// pwserr.ErrInvalidArgument) — callers that mean "remove" call Remove.
type Value []byte

// IsZero reports whether h is the all-zero hash. Note that an account with
// no storage has a storage root of mpt.EmptyRoot, not the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, len(a))
	copy(b, a[:])
	return b
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	b := make([]byte, len(h))
	copy(b, h[:])
	return b
}

// AddressFromBytes builds an Address from a slice, which must be exactly 32
// bytes long.
func AddressFromBytes(b []byte) (Address, bool) {
	var a Address
	if len(b) != len(a) {
		return a, false
	}
	copy(a[:], b)
	return a, true
}

// HashFromBytes builds a Hash from a slice, which must be exactly 32 bytes
// long.
func HashFromBytes(b []byte) (Hash, bool) {
	var h Hash
	if len(b) != len(h) {
		return h, false
	}
	copy(h[:], b)
	return h, true
}
