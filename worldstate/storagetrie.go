package worldstate

import (
	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/keys"
	"github.com/parallelchain-io/pchain-world-state/mpt"
	"github.com/parallelchain-io/pchain-world-state/pwserr"
)

// StorageTrie is one account's contract storage MPT (C4), keyed by
// application key under that account's address. Per invariant I1 every raw
// key still carries the owning address, even though the trie itself is
// already scoped to a single account: the prefix is redundant within the
// trie but normative across the module (see DESIGN.md).
type StorageTrie struct {
	codec keys.KeyCodec
	addr  common.Address
	trie  *mpt.Trie
}

func newStorageTrie(db mpt.Db, codec keys.KeyCodec, addr common.Address, root common.Hash) *StorageTrie {
	return &StorageTrie{codec: codec, addr: addr, trie: mpt.Open(db, root)}
}

func (s *StorageTrie) rawKey(appKey common.AppKey) []byte {
	return s.codec.StorageKey(s.addr, appKey)
}

func (s *StorageTrie) Get(appKey common.AppKey) (common.Value, error) {
	b, err := s.trie.Get(s.rawKey(appKey))
	if err != nil {
		return nil, err
	}
	return common.Value(b), nil
}

func (s *StorageTrie) Contains(appKey common.AppKey) (bool, error) {
	return s.trie.Contains(s.rawKey(appKey))
}

// Set writes appKey's value. An empty value is rejected: callers that mean
// "remove" must call Remove.
func (s *StorageTrie) Set(appKey common.AppKey, value common.Value) error {
	if len(value) == 0 {
		return pwserr.ErrInvalidArgument
	}
	return s.trie.Put(s.rawKey(appKey), value)
}

func (s *StorageTrie) Remove(appKey common.AppKey) error {
	return s.trie.Delete(s.rawKey(appKey))
}

func (s *StorageTrie) Root() (common.Hash, error) {
	return s.trie.Hash()
}

func (s *StorageTrie) Prove(appKey common.AppKey) (mpt.Proof, []byte, error) {
	return s.trie.Prove(s.rawKey(appKey))
}

// All walks every entry in this storage trie and strips the codec's
// address+visibility prefix back off each raw key, recovering the bare
// AppKey the caller originally set. Used by migration and by the wsdump
// inspection tool (spec §9); not on any hot path.
func (s *StorageTrie) All() (map[string]common.Value, error) {
	prefixLen := len(s.rawKey(nil))
	raw, err := s.trie.All()
	if err != nil {
		return nil, err
	}
	out := make(map[string]common.Value, len(raw))
	for k, v := range raw {
		if len(k) < prefixLen {
			return nil, &pwserr.DecodeError{Key: []byte(k), Cause: pwserr.ErrDecode}
		}
		out[k[prefixLen:]] = common.Value(v)
	}
	return out, nil
}

func (s *StorageTrie) commit() (common.Hash, map[common.Hash][]byte, map[common.Hash]struct{}) {
	return s.trie.Commit()
}
