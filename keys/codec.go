// Package keys builds the raw trie keys and value encodings for every
// logical field this module exposes: account fields, storage entries, and
// network-account sub-fields (C3), across both the current (V2) and legacy
// (V1) wire layouts (C9).
package keys

import "github.com/parallelchain-io/pchain-world-state/common"

// Version identifies which wire layout a KeyCodec implements. It is this
// module's non-parametric stand-in for the zero-sized generic tag the
// reference implementation threads through its types: rather than
// parameterising every type by a tag, every versioned component simply holds
// a KeyCodec and asks it for keys.
type Version uint8

const (
	// V1 is the legacy layout: account keys carry the visibility byte before
	// the field suffix with Protected=0x01, and storage keys carry no
	// address prefix at all (each contract's storage lived in its own,
	// separately-addressed trie). V1 exists only so migration can read an
	// existing V1-encoded trie; nothing in this module ever writes V1 keys.
	V1 Version = 1

	// V2 is the current layout and is exactly invariant I1: every key begins
	// with the 32-byte address, followed by 0x00 (Protected, account field)
	// or 0x01 (Public, storage entry).
	V2 Version = 2
)

// AccountFieldSuffix names one of the five fixed account-field keys (spec
// §3's Account field table).
type AccountFieldSuffix byte

const (
	SuffixNonce       AccountFieldSuffix = 0x00
	SuffixBalance     AccountFieldSuffix = 0x01
	SuffixCode        AccountFieldSuffix = 0x02
	SuffixCBIVersion  AccountFieldSuffix = 0x03
	SuffixStorageRoot AccountFieldSuffix = 0x04
)

// KeyCodec builds raw trie keys for one wire layout. Account trie and
// storage trie callers never build keys by hand; they always go through a
// KeyCodec so that every key this module ever produces is normative for its
// Version.
type KeyCodec interface {
	Version() Version
	AccountKey(addr common.Address, suffix AccountFieldSuffix) []byte
	StorageKey(addr common.Address, appKey common.AppKey) []byte
}

// V2Codec implements the current, normative key layout (I1).
type V2Codec struct{}

func (V2Codec) Version() Version { return V2 }

func (V2Codec) AccountKey(addr common.Address, suffix AccountFieldSuffix) []byte {
	key := make([]byte, 0, len(addr)+2)
	key = append(key, addr[:]...)
	key = append(key, 0x00, byte(suffix))
	return key
}

func (V2Codec) StorageKey(addr common.Address, appKey common.AppKey) []byte {
	key := make([]byte, 0, len(addr)+1+len(appKey))
	key = append(key, addr[:]...)
	key = append(key, 0x01)
	key = append(key, appKey...)
	return key
}

// V1Codec implements the legacy layout this module only ever reads, during
// MigrateV1ToV2.
type V1Codec struct{}

func (V1Codec) Version() Version { return V1 }

const (
	v1Public    byte = 0x00
	v1Protected byte = 0x01
)

func (V1Codec) AccountKey(addr common.Address, suffix AccountFieldSuffix) []byte {
	key := make([]byte, 0, len(addr)+2)
	key = append(key, addr[:]...)
	key = append(key, v1Protected, byte(suffix))
	return key
}

// StorageKey ignores addr: in V1, a contract's storage entries live in a
// trie of their own, with no address namespacing inside that trie.
func (V1Codec) StorageKey(_ common.Address, appKey common.AppKey) []byte {
	key := make([]byte, 0, 1+len(appKey))
	key = append(key, v1Public)
	key = append(key, appKey...)
	return key
}

// NetworkFieldKey builds the storage key for appKey inside the network
// account's storage trie, under the given codec.
func NetworkFieldKey(codec KeyCodec, networkAddr common.Address, appKey common.AppKey) []byte {
	return codec.StorageKey(networkAddr, appKey)
}

// ParseV1AccountKey recovers the address and field suffix from a raw V1
// account-trie key, for migration's use. ok is false if key is not shaped
// like a V1 account key.
func ParseV1AccountKey(key []byte) (addr common.Address, suffix AccountFieldSuffix, ok bool) {
	if len(key) != len(common.Address{})+2 || key[len(addr)] != v1Protected {
		return addr, 0, false
	}
	addr, ok = common.AddressFromBytes(key[:len(addr)])
	if !ok {
		return addr, 0, false
	}
	return addr, AccountFieldSuffix(key[len(addr)+1]), true
}

// ParseV1StorageKey recovers the application key from a raw V1 storage-trie
// key (which, unlike V2, carries no address). ok is false if key does not
// carry the V1 Public visibility byte.
func ParseV1StorageKey(key []byte) (appKey common.AppKey, ok bool) {
	if len(key) < 1 || key[0] != v1Public {
		return nil, false
	}
	return common.AppKey(key[1:]), true
}
