package worldstate

import (
	"sort"

	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/keys"
	"github.com/parallelchain-io/pchain-world-state/mpt"
	"github.com/parallelchain-io/pchain-world-state/pwserr"
)

// MigrateV1ToV2 walks a V1-keyed account trie rooted at v1Root and
// re-materialises every account's fields and storage trie under V2 key
// rules, committing the result to a second trie sharing db. It never
// mutates anything reachable from v1Root (I4: migration is deterministic
// and side-effect-free on its input). Grounded on spec §4.9;
// original_source/src/version.rs supplies only the V1/V2 tag types, not a
// migration algorithm, so the walk-and-rewrite procedure here is this
// module's own.
func MigrateV1ToV2(db mpt.Db, v1Root common.Hash) (v2Root common.Hash, changes *WorldStateChanges, addressesMigrated int, bytesWritten int, err error) {
	v1Trie := mpt.Open(db, v1Root)
	entries, err := v1Trie.All()
	if err != nil {
		return common.Hash{}, nil, 0, 0, err
	}

	type account struct {
		fields map[keys.AccountFieldSuffix][]byte
	}
	byAddr := make(map[common.Address]*account)
	for rawKey, value := range entries {
		addr, suffix, ok := keys.ParseV1AccountKey([]byte(rawKey))
		if !ok {
			return common.Hash{}, nil, 0, 0, &pwserr.MigrationError{Cause: pwserr.ErrDecode}
		}
		a, found := byAddr[addr]
		if !found {
			a = &account{fields: make(map[keys.AccountFieldSuffix][]byte)}
			byAddr[addr] = a
		}
		a.fields[suffix] = value
	}

	addrs := make([]common.Address, 0, len(byAddr))
	for addr := range byAddr {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return string(addrs[i][:]) < string(addrs[j][:]) })

	changes = newWorldStateChanges()
	v2Codec := keys.V2Codec{}
	v2Accounts := mpt.New(db)

	for _, addr := range addrs {
		a := byAddr[addr]
		for suffix, value := range a.fields {
			if suffix == keys.SuffixStorageRoot {
				continue
			}
			k := v2Codec.AccountKey(addr, suffix)
			if err := v2Accounts.Put(k, value); err != nil {
				return common.Hash{}, nil, 0, 0, err
			}
			bytesWritten += len(value)
		}

		rootBytes, hadStorage := a.fields[keys.SuffixStorageRoot]
		if !hadStorage {
			addressesMigrated++
			continue
		}
		v1StorageRoot, decErr := keys.DecodeHash(rootBytes)
		if decErr != nil {
			return common.Hash{}, nil, 0, 0, &pwserr.MigrationError{Address: addr, Cause: decErr}
		}
		if v1StorageRoot == mpt.EmptyRoot {
			addressesMigrated++
			continue
		}

		v1Storage := mpt.Open(db, v1StorageRoot)
		storageEntries, err := v1Storage.All()
		if err != nil {
			return common.Hash{}, nil, 0, 0, &pwserr.MigrationError{Address: addr, Cause: err}
		}

		v2Storage := mpt.New(db)
		for rawKey, value := range storageEntries {
			appKey, ok := keys.ParseV1StorageKey([]byte(rawKey))
			if !ok {
				return common.Hash{}, nil, 0, 0, &pwserr.MigrationError{Address: addr, Cause: pwserr.ErrDecode}
			}
			if err := v2Storage.Put(v2Codec.StorageKey(addr, appKey), value); err != nil {
				return common.Hash{}, nil, 0, 0, &pwserr.MigrationError{Address: addr, Cause: err}
			}
			bytesWritten += len(value)
		}
		newStorageRoot, inserts, deletes := v2Storage.Commit()
		changes.merge(inserts, deletes)

		if newStorageRoot != mpt.EmptyRoot {
			if err := v2Accounts.Put(v2Codec.AccountKey(addr, keys.SuffixStorageRoot), newStorageRoot[:]); err != nil {
				return common.Hash{}, nil, 0, 0, err
			}
		}
		addressesMigrated++
	}

	newAccountRoot, inserts, deletes := v2Accounts.Commit()
	changes.merge(inserts, deletes)
	changes.NewStateHash = newAccountRoot

	return newAccountRoot, changes, addressesMigrated, bytesWritten, nil
}
