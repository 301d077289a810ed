package worldstate

import (
	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/keys"
	"github.com/parallelchain-io/pchain-world-state/mpt"
)

// AccountTrie is the outer MPT keyed by account address (C5). It provides
// typed, immediate (non-cached) access to the five account fields; the
// cache/commit protocol above it is WorldState's responsibility.
type AccountTrie struct {
	codec keys.KeyCodec
	trie  *mpt.Trie
}

func newAccountTrie(db mpt.Db, codec keys.KeyCodec, root common.Hash) *AccountTrie {
	return &AccountTrie{codec: codec, trie: mpt.Open(db, root)}
}

func (a *AccountTrie) rawKey(addr common.Address, suffix keys.AccountFieldSuffix) []byte {
	return a.codec.AccountKey(addr, suffix)
}

func (a *AccountTrie) Nonce(addr common.Address) (uint64, error) {
	b, err := a.trie.Get(a.rawKey(addr, keys.SuffixNonce))
	if err != nil || b == nil {
		return 0, err
	}
	return keys.DecodeU64(b)
}

// SetNonce sets addr's nonce. A nonce of 0 removes the field (I3): absence
// and the logical default must be indistinguishable.
func (a *AccountTrie) SetNonce(addr common.Address, nonce uint64) error {
	key := a.rawKey(addr, keys.SuffixNonce)
	if nonce == 0 {
		return a.trie.Delete(key)
	}
	return a.trie.Put(key, keys.EncodeU64(nonce))
}

func (a *AccountTrie) Balance(addr common.Address) (uint64, error) {
	b, err := a.trie.Get(a.rawKey(addr, keys.SuffixBalance))
	if err != nil || b == nil {
		return 0, err
	}
	return keys.DecodeU64(b)
}

func (a *AccountTrie) SetBalance(addr common.Address, balance uint64) error {
	key := a.rawKey(addr, keys.SuffixBalance)
	if balance == 0 {
		return a.trie.Delete(key)
	}
	return a.trie.Put(key, keys.EncodeU64(balance))
}

func (a *AccountTrie) Code(addr common.Address) ([]byte, error) {
	return a.trie.Get(a.rawKey(addr, keys.SuffixCode))
}

func (a *AccountTrie) HasCode(addr common.Address) (bool, error) {
	return a.trie.Contains(a.rawKey(addr, keys.SuffixCode))
}

// SetCode sets addr's contract code. Empty code is treated as "remove code"
// (spec §9 Open Question 1, resolved in DESIGN.md): there is no separate
// representation for "code field present but empty".
func (a *AccountTrie) SetCode(addr common.Address, code []byte) error {
	key := a.rawKey(addr, keys.SuffixCode)
	if len(code) == 0 {
		return a.trie.Delete(key)
	}
	return a.trie.Put(key, code)
}

func (a *AccountTrie) CBIVersion(addr common.Address) (uint32, error) {
	b, err := a.trie.Get(a.rawKey(addr, keys.SuffixCBIVersion))
	if err != nil || b == nil {
		return 0, err
	}
	return keys.DecodeU32(b)
}

func (a *AccountTrie) SetCBIVersion(addr common.Address, version uint32) error {
	key := a.rawKey(addr, keys.SuffixCBIVersion)
	if version == 0 {
		return a.trie.Delete(key)
	}
	return a.trie.Put(key, keys.EncodeU32(version))
}

// StorageRoot returns addr's storage trie root, or mpt.EmptyRoot if the
// field is absent (I3: no storage is the logical default).
func (a *AccountTrie) StorageRoot(addr common.Address) (common.Hash, error) {
	b, err := a.trie.Get(a.rawKey(addr, keys.SuffixStorageRoot))
	if err != nil {
		return common.Hash{}, err
	}
	if b == nil {
		return mpt.EmptyRoot, nil
	}
	return keys.DecodeHash(b)
}

// SetStorageRoot writes addr's storage root. Writing mpt.EmptyRoot removes
// the field, preserving I3.
func (a *AccountTrie) SetStorageRoot(addr common.Address, root common.Hash) error {
	key := a.rawKey(addr, keys.SuffixStorageRoot)
	if root == mpt.EmptyRoot {
		return a.trie.Delete(key)
	}
	return a.trie.Put(key, root[:])
}

func (a *AccountTrie) Prove(addr common.Address, suffix keys.AccountFieldSuffix) (mpt.Proof, []byte, error) {
	return a.trie.Prove(a.rawKey(addr, suffix))
}

func (a *AccountTrie) Root() (common.Hash, error) {
	return a.trie.Hash()
}

func (a *AccountTrie) commit() (common.Hash, map[common.Hash][]byte, map[common.Hash]struct{}) {
	return a.trie.Commit()
}
