// Package worldstate composes the account trie, per-account storage tries,
// and the network account into the single entry point applications open: a
// WorldState at a given root (C6).
package worldstate

import (
	"sort"

	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/keys"
	"github.com/parallelchain-io/pchain-world-state/mpt"
	"github.com/parallelchain-io/pchain-world-state/pwserr"
)

// Config holds the tunables this module exposes. There is currently exactly
// one: which key layout new WorldStates are opened with. Migration always
// produces V2 regardless of Config.
type Config struct {
	Codec keys.KeyCodec
}

func DefaultConfig() Config {
	return Config{Codec: keys.V2Codec{}}
}

// WorldState is the versioned key/value view over one account trie plus its
// descendant storage tries. Every typed accessor is available in two
// flavours: a direct one (SetNonce) that mutates the underlying trie
// immediately, and a cached one (CachedSetNonce) that only stages the change
// into an in-memory overlay until Commit. Reads always check the overlay
// first, so the two flavours are interchangeable from the caller's point of
// view (spec P5): both converge on the same state hash.
type WorldState struct {
	db     mpt.Db
	codec  keys.KeyCodec
	closed bool

	accounts *AccountTrie

	// storageTries lazily holds one opened StorageTrie per address touched
	// this session, keyed by address.
	storageTries map[common.Address]*StorageTrie

	accountOverlay map[string]*overlayEntry
	storageOverlay map[common.Address]map[string]*overlayEntry
}

// Open opens a WorldState at root against db, using cfg's key codec.
func Open(db mpt.Db, root common.Hash, cfg Config) *WorldState {
	return &WorldState{
		db:             db,
		codec:          cfg.Codec,
		accounts:       newAccountTrie(db, cfg.Codec, root),
		storageTries:   make(map[common.Address]*StorageTrie),
		accountOverlay: make(map[string]*overlayEntry),
		storageOverlay: make(map[common.Address]map[string]*overlayEntry),
	}
}

// New opens an empty WorldState, suitable for building up genesis state.
func New(db mpt.Db, cfg Config) *WorldState {
	return Open(db, mpt.EmptyRoot, cfg)
}

func (w *WorldState) checkOpen() error {
	if w.closed {
		return pwserr.ErrClosed
	}
	return nil
}

func (w *WorldState) storageTrie(addr common.Address) (*StorageTrie, error) {
	if st, ok := w.storageTries[addr]; ok {
		return st, nil
	}
	root, err := w.accounts.StorageRoot(addr)
	if err != nil {
		return nil, err
	}
	st := newStorageTrie(w.db, w.codec, addr, root)
	w.storageTries[addr] = st
	return st, nil
}

// AllStorage returns every key/value pair currently stored under addr,
// bypassing the overlay (it only sees committed state, like Root).
func (w *WorldState) AllStorage(addr common.Address) (map[string]common.Value, error) {
	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	st, err := w.storageTrie(addr)
	if err != nil {
		return nil, err
	}
	return st.All()
}

// --- direct account field accessors -----------------------------------

func (w *WorldState) Nonce(addr common.Address) (uint64, error) {
	if err := w.checkOpen(); err != nil {
		return 0, err
	}
	if v, ok, isDelete := w.accountOverlayGet(addr, keys.SuffixNonce); ok {
		if isDelete {
			return 0, nil
		}
		return keys.DecodeU64(v)
	}
	return w.accounts.Nonce(addr)
}

func (w *WorldState) SetNonce(addr common.Address, nonce uint64) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	return w.accounts.SetNonce(addr, nonce)
}

func (w *WorldState) CachedSetNonce(addr common.Address, nonce uint64) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	w.stageAccount(addr, keys.SuffixNonce, keys.EncodeU64(nonce), nonce == 0)
	return nil
}

func (w *WorldState) Balance(addr common.Address) (uint64, error) {
	if err := w.checkOpen(); err != nil {
		return 0, err
	}
	if v, ok, isDelete := w.accountOverlayGet(addr, keys.SuffixBalance); ok {
		if isDelete {
			return 0, nil
		}
		return keys.DecodeU64(v)
	}
	return w.accounts.Balance(addr)
}

func (w *WorldState) SetBalance(addr common.Address, balance uint64) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	return w.accounts.SetBalance(addr, balance)
}

func (w *WorldState) CachedSetBalance(addr common.Address, balance uint64) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	w.stageAccount(addr, keys.SuffixBalance, keys.EncodeU64(balance), balance == 0)
	return nil
}

func (w *WorldState) Code(addr common.Address) ([]byte, error) {
	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	if v, ok, isDelete := w.accountOverlayGet(addr, keys.SuffixCode); ok {
		if isDelete {
			return nil, nil
		}
		return v, nil
	}
	return w.accounts.Code(addr)
}

func (w *WorldState) SetCode(addr common.Address, code []byte) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	return w.accounts.SetCode(addr, code)
}

func (w *WorldState) CachedSetCode(addr common.Address, code []byte) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	w.stageAccount(addr, keys.SuffixCode, code, len(code) == 0)
	return nil
}

func (w *WorldState) CBIVersion(addr common.Address) (uint32, error) {
	if err := w.checkOpen(); err != nil {
		return 0, err
	}
	if v, ok, isDelete := w.accountOverlayGet(addr, keys.SuffixCBIVersion); ok {
		if isDelete {
			return 0, nil
		}
		return keys.DecodeU32(v)
	}
	return w.accounts.CBIVersion(addr)
}

func (w *WorldState) SetCBIVersion(addr common.Address, version uint32) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	return w.accounts.SetCBIVersion(addr, version)
}

func (w *WorldState) CachedSetCBIVersion(addr common.Address, version uint32) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	w.stageAccount(addr, keys.SuffixCBIVersion, keys.EncodeU32(version), version == 0)
	return nil
}

// StorageRoot returns addr's storage trie root, or mpt.EmptyRoot if addr has
// no storage (I3). This is the read-only counterpart to Nonce/Balance/Code/
// CBIVersion for the fifth typed account field (spec §6's storage_hash);
// unlike those fields it has no Set/CachedSet pair here, since a storage
// root is only ever produced by writing through SetStorage/RemoveStorage
// (or their cached variants) and synced automatically (syncStorageRoot,
// Commit).
func (w *WorldState) StorageRoot(addr common.Address) (common.Hash, error) {
	if err := w.checkOpen(); err != nil {
		return common.Hash{}, err
	}
	if v, ok, isDelete := w.accountOverlayGet(addr, keys.SuffixStorageRoot); ok {
		if isDelete {
			return mpt.EmptyRoot, nil
		}
		return keys.DecodeHash(v)
	}
	return w.accounts.StorageRoot(addr)
}

// --- storage accessors --------------------------------------------------

func (w *WorldState) GetStorage(addr common.Address, appKey common.AppKey) (common.Value, error) {
	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	if v, ok, isDelete := w.storageOverlayGet(addr, appKey); ok {
		if isDelete {
			return nil, nil
		}
		return common.Value(v), nil
	}
	st, err := w.storageTrie(addr)
	if err != nil {
		return nil, err
	}
	return st.Get(appKey)
}

// HasStorageValue reports whether appKey has a value under addr, without
// materializing it. Overlay writes take precedence over committed state,
// same as GetStorage.
func (w *WorldState) HasStorageValue(addr common.Address, appKey common.AppKey) (bool, error) {
	if err := w.checkOpen(); err != nil {
		return false, err
	}
	if _, ok, isDelete := w.storageOverlayGet(addr, appKey); ok {
		return !isDelete, nil
	}
	st, err := w.storageTrie(addr)
	if err != nil {
		return false, err
	}
	return st.Contains(appKey)
}

func (w *WorldState) SetStorage(addr common.Address, appKey common.AppKey, value common.Value) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	st, err := w.storageTrie(addr)
	if err != nil {
		return err
	}
	if err := st.Set(appKey, value); err != nil {
		return err
	}
	return w.syncStorageRoot(addr, st)
}

func (w *WorldState) RemoveStorage(addr common.Address, appKey common.AppKey) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	st, err := w.storageTrie(addr)
	if err != nil {
		return err
	}
	return w.removeStorageDirect(addr, st, appKey)
}

func (w *WorldState) removeStorageDirect(addr common.Address, st *StorageTrie, appKey common.AppKey) error {
	if err := st.Remove(appKey); err != nil {
		return err
	}
	return w.syncStorageRoot(addr, st)
}

// syncStorageRoot pushes a storage trie's current root into the account
// trie immediately; only meaningful for the direct-mode setters, since
// cached-mode writes defer this to Commit.
func (w *WorldState) syncStorageRoot(addr common.Address, st *StorageTrie) error {
	root, err := st.Root()
	if err != nil {
		return err
	}
	return w.accounts.SetStorageRoot(addr, root)
}

func (w *WorldState) CachedSetStorage(addr common.Address, appKey common.AppKey, value common.Value) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if len(value) == 0 {
		return pwserr.ErrInvalidArgument
	}
	if _, err := w.storageTrie(addr); err != nil {
		return err
	}
	w.stageStorage(addr, appKey, value, false)
	return nil
}

func (w *WorldState) CachedRemoveStorage(addr common.Address, appKey common.AppKey) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if _, err := w.storageTrie(addr); err != nil {
		return err
	}
	w.stageStorage(addr, appKey, nil, true)
	return nil
}

// --- overlay plumbing ----------------------------------------------------

func (w *WorldState) stageAccount(addr common.Address, suffix keys.AccountFieldSuffix, value []byte, isDelete bool) {
	k := string(w.codec.AccountKey(addr, suffix))
	w.accountOverlay[k] = &overlayEntry{deleted: isDelete, value: value}
}

func (w *WorldState) accountOverlayGet(addr common.Address, suffix keys.AccountFieldSuffix) (value []byte, found, isDelete bool) {
	k := string(w.codec.AccountKey(addr, suffix))
	e, ok := w.accountOverlay[k]
	if !ok {
		return nil, false, false
	}
	return e.value, true, e.deleted
}

func (w *WorldState) stageStorage(addr common.Address, appKey common.AppKey, value []byte, isDelete bool) {
	m, ok := w.storageOverlay[addr]
	if !ok {
		m = make(map[string]*overlayEntry)
		w.storageOverlay[addr] = m
	}
	m[string(appKey)] = &overlayEntry{deleted: isDelete, value: value}
}

func (w *WorldState) storageOverlayGet(addr common.Address, appKey common.AppKey) (value []byte, found, isDelete bool) {
	m, ok := w.storageOverlay[addr]
	if !ok {
		return nil, false, false
	}
	e, ok := m[string(appKey)]
	if !ok {
		return nil, false, false
	}
	return e.value, true, e.deleted
}

// --- commit / discard / close --------------------------------------------

// Commit drains every cached write into its trie, then flushes every storage
// trie opened this session (by direct or cached writes) before the account
// trie (spec §4.6): a storage trie's new root must be written into the
// account trie before the account trie itself is hashed, or the account
// trie's flush would commit under a stale root.
func (w *WorldState) Commit() (*WorldStateChanges, error) {
	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	changes := newWorldStateChanges()

	touchedAddrs := make([]common.Address, 0, len(w.storageTries))
	for addr := range w.storageTries {
		touchedAddrs = append(touchedAddrs, addr)
	}
	sort.Slice(touchedAddrs, func(i, j int) bool {
		return string(touchedAddrs[i][:]) < string(touchedAddrs[j][:])
	})

	for _, addr := range touchedAddrs {
		st, err := w.storageTrie(addr)
		if err != nil {
			return nil, err
		}
		keysForAddr := make([]string, 0, len(w.storageOverlay[addr]))
		for k := range w.storageOverlay[addr] {
			keysForAddr = append(keysForAddr, k)
		}
		sort.Strings(keysForAddr)
		for _, k := range keysForAddr {
			e := w.storageOverlay[addr][k]
			if e.deleted {
				if err := st.Remove(common.AppKey(k)); err != nil {
					return nil, err
				}
			} else if err := st.Set(common.AppKey(k), common.Value(e.value)); err != nil {
				return nil, err
			}
		}
		root, inserts, deletes := st.commit()
		changes.merge(inserts, deletes)
		if err := w.accounts.SetStorageRoot(addr, root); err != nil {
			return nil, err
		}
	}
	w.storageOverlay = make(map[common.Address]map[string]*overlayEntry)

	accountKeys := make([]string, 0, len(w.accountOverlay))
	for k := range w.accountOverlay {
		accountKeys = append(accountKeys, k)
	}
	sort.Strings(accountKeys)
	for _, k := range accountKeys {
		e := w.accountOverlay[k]
		if e.deleted {
			if err := w.accounts.trie.Delete([]byte(k)); err != nil {
				return nil, err
			}
		} else if err := w.accounts.trie.Put([]byte(k), e.value); err != nil {
			return nil, err
		}
	}
	w.accountOverlay = make(map[string]*overlayEntry)

	root, inserts, deletes := w.accounts.commit()
	changes.merge(inserts, deletes)
	changes.NewStateHash = root
	return changes, nil
}

// Discard drops every pending cached write without touching the trie or
// producing a diff (spec §9). Writes already made through a direct setter
// are unaffected: Discard only clears the overlay.
func (w *WorldState) Discard() {
	w.accountOverlay = make(map[string]*overlayEntry)
	w.storageOverlay = make(map[common.Address]map[string]*overlayEntry)
}

// Close commits any pending cached writes and marks the WorldState unusable
// for further reads or writes.
func (w *WorldState) Close() (*WorldStateChanges, error) {
	changes, err := w.Commit()
	if err != nil {
		return nil, err
	}
	w.closed = true
	return changes, nil
}

func (w *WorldState) Root() (common.Hash, error) {
	if err := w.checkOpen(); err != nil {
		return common.Hash{}, err
	}
	return w.accounts.Root()
}

// ProveAccountField returns a Merkle proof for one account field against
// the current (committed) account root.
func (w *WorldState) ProveAccountField(addr common.Address, suffix keys.AccountFieldSuffix) (mpt.Proof, []byte, error) {
	if err := w.checkOpen(); err != nil {
		return nil, nil, err
	}
	return w.accounts.Prove(addr, suffix)
}

// ProveStorage returns a Merkle proof for one storage slot against addr's
// current (committed) storage root.
func (w *WorldState) ProveStorage(addr common.Address, appKey common.AppKey) (mpt.Proof, []byte, error) {
	if err := w.checkOpen(); err != nil {
		return nil, nil, err
	}
	st, err := w.storageTrie(addr)
	if err != nil {
		return nil, nil, err
	}
	return st.Prove(appKey)
}

// VerifyAccountFieldProof checks proof against root for addr's field,
// returning the value it proves (nil if it proves the field is absent).
func (w *WorldState) VerifyAccountFieldProof(root common.Hash, addr common.Address, suffix keys.AccountFieldSuffix, proof mpt.Proof) ([]byte, bool) {
	return mpt.VerifyProof(root, w.codec.AccountKey(addr, suffix), proof)
}

// VerifyStorageProof checks proof against a storage root for addr's slot
// appKey, returning the value it proves (nil if it proves the slot is
// absent).
func (w *WorldState) VerifyStorageProof(root common.Hash, addr common.Address, appKey common.AppKey, proof mpt.Proof) ([]byte, bool) {
	return mpt.VerifyProof(root, w.codec.StorageKey(addr, appKey), proof)
}
