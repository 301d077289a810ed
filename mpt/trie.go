package mpt

import (
	"fmt"

	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/pwserr"
)

// Trie is a single Merkle-Patricia-Trie opened against a Db. It is not safe
// for concurrent use; callers needing concurrent readers should open
// independent Tries against the same Db and root.
type Trie struct {
	db   Db
	root node // nil means the empty trie

	// deleted accumulates the hashes of every node that was resolved from the
	// Db and then structurally replaced since the last Commit. These are the
	// node-store entries Commit will report as deletions.
	deleted map[common.Hash]struct{}
}

// Open opens a Trie at root. No Db access happens until the first Get, Put
// or Delete that needs to resolve a node.
func Open(db Db, root common.Hash) *Trie {
	t := &Trie{db: db, deleted: map[common.Hash]struct{}{}}
	if root != EmptyRoot {
		t.root = hashNode(root)
	}
	return t
}

// New opens a Trie at the well-known empty root.
func New(db Db) *Trie {
	return Open(db, EmptyRoot)
}

// Get returns the value stored under key, or (nil, nil) if key is absent.
func (t *Trie) Get(key []byte) ([]byte, error) {
	v, err := t.get(t.root, keyToNibbles(key))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return []byte(v), nil
}

// Contains reports whether key is present, without allocating its value.
func (t *Trie) Contains(key []byte) (bool, error) {
	v, err := t.get(t.root, keyToNibbles(key))
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// Put sets key to value. value must be non-empty; storing an empty value is
// the caller's job to express as Delete instead (spec I3/§4.4).
func (t *Trie) Put(key, value []byte) error {
	if len(value) == 0 {
		return pwserr.ErrInvalidArgument
	}
	newRoot, err := t.insert(t.root, keyToNibbles(key), valueNode(value))
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (t *Trie) Delete(key []byte) error {
	newRoot, err := t.delete(t.root, keyToNibbles(key))
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

// Hash returns the current root hash without finalizing any pending node
// deletions. It may be called as often as needed; it recomputes the hash of
// every node touched since the last Commit each time.
func (t *Trie) Hash() (common.Hash, error) {
	scratch := make(map[common.Hash][]byte)
	newRoot, err := t.hashAndStore(t.root, scratch, true)
	if err != nil {
		return common.Hash{}, err
	}
	return rootHashOf(newRoot), nil
}

// Commit finalizes every pending mutation: every in-memory node is encoded
// and hashed, producing the new root plus the full set of node inserts this
// Trie instance is responsible for, and the set of now-orphaned node hashes
// that should be deleted from the backing store. A hash appearing in both
// sets (a node re-created with byte-identical content) is dropped from both,
// per spec §4.6.
func (t *Trie) Commit() (common.Hash, map[common.Hash][]byte, map[common.Hash]struct{}) {
	inserts := make(map[common.Hash][]byte)
	newRoot, err := t.hashAndStore(t.root, inserts, true)
	if err != nil {
		// hashAndStore never touches the Db and only rejects malformed
		// in-memory node shapes, which this package never constructs.
		panic(fmt.Sprintf("mpt: internal error hashing trie: %v", err))
	}
	t.root = newRoot

	deletes := t.deleted
	t.deleted = make(map[common.Hash]struct{})
	for h := range deletes {
		if _, ok := inserts[h]; ok {
			delete(inserts, h)
			delete(deletes, h)
		}
	}
	return rootHashOf(newRoot), inserts, deletes
}

// All walks the entire trie and returns every key/value pair it holds. It
// resolves every node reachable from the current root, so it is only
// suitable for inspection tools and migration, never a hot path.
func (t *Trie) All() (map[string][]byte, error) {
	out := make(map[string][]byte)
	if err := t.collect(t.root, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Trie) collect(n node, prefix []nibble, out map[string][]byte) error {
	switch nd := n.(type) {
	case nil:
		return nil
	case hashNode:
		resolved, err := t.resolve(nd)
		if err != nil {
			return err
		}
		return t.collect(resolved, prefix, out)
	case valueNode:
		if !hasTerm(prefix) {
			return fmt.Errorf("mpt: value found at non-terminated path")
		}
		out[string(nibblesToKey(prefix[:len(prefix)-1]))] = []byte(nd)
		return nil
	case *shortNode:
		return t.collect(nd.Val, append(append([]nibble(nil), prefix...), nd.Key...), out)
	case *fullNode:
		for i := 0; i < 17; i++ {
			if nd.Children[i] == nil {
				continue
			}
			if err := t.collect(nd.Children[i], append(append([]nibble(nil), prefix...), nibble(i)), out); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("mpt: unexpected node type %T during All", n)
	}
}

func rootHashOf(n node) common.Hash {
	if hn, ok := n.(hashNode); ok {
		return common.Hash(hn)
	}
	return EmptyRoot
}

// resolve loads the node a hashNode refers to, or returns n unchanged if it
// is not a hashNode.
func (t *Trie) resolve(n node) (node, error) {
	hn, ok := n.(hashNode)
	if !ok {
		return n, nil
	}
	data, ok := t.db.Get(common.Hash(hn))
	if !ok {
		return nil, pwserr.ErrNodeMissing
	}
	return decodeNode(data)
}

// resolveForMutation behaves like resolve but additionally records the
// hashNode's hash as orphaned, since the caller is about to replace the
// resolved subtree with a mutated copy.
func (t *Trie) resolveForMutation(n node) (node, error) {
	if hn, ok := n.(hashNode); ok {
		t.deleted[common.Hash(hn)] = struct{}{}
	}
	return t.resolve(n)
}

func (t *Trie) get(n node, key []nibble) (valueNode, error) {
	if len(key) == 0 {
		if v, ok := n.(valueNode); ok {
			return v, nil
		}
		return nil, nil
	}
	switch nd := n.(type) {
	case nil:
		return nil, nil
	case valueNode:
		return nil, nil
	case *shortNode:
		if len(key) < len(nd.Key) || commonPrefixLength(key, nd.Key) != len(nd.Key) {
			return nil, nil
		}
		return t.get(nd.Val, key[len(nd.Key):])
	case *fullNode:
		child, err := t.resolve(nd.Children[key[0]])
		if err != nil {
			return nil, err
		}
		return t.get(child, key[1:])
	case hashNode:
		resolved, err := t.resolve(nd)
		if err != nil {
			return nil, err
		}
		return t.get(resolved, key)
	default:
		return nil, fmt.Errorf("mpt: unexpected node type %T during get", n)
	}
}

func (t *Trie) insert(n node, key []nibble, value node) (node, error) {
	if len(key) == 0 {
		return value, nil
	}
	switch nd := n.(type) {
	case nil:
		return &shortNode{Key: append([]nibble(nil), key...), Val: value}, nil
	case *shortNode:
		matchlen := commonPrefixLength(key, nd.Key)
		if matchlen == len(nd.Key) {
			newVal, err := t.insert(nd.Val, key[matchlen:], value)
			if err != nil {
				return nil, err
			}
			return &shortNode{Key: nd.Key, Val: newVal}, nil
		}
		branch := &fullNode{}
		var err error
		branch.Children[nd.Key[matchlen]], err = t.insert(nil, nd.Key[matchlen+1:], nd.Val)
		if err != nil {
			return nil, err
		}
		branch.Children[key[matchlen]], err = t.insert(nil, key[matchlen+1:], value)
		if err != nil {
			return nil, err
		}
		if matchlen == 0 {
			return branch, nil
		}
		return &shortNode{Key: append([]nibble(nil), key[:matchlen]...), Val: branch}, nil
	case *fullNode:
		cp := nd.copy()
		child, err := t.resolveForMutation(cp.Children[key[0]])
		if err != nil {
			return nil, err
		}
		cp.Children[key[0]], err = t.insert(child, key[1:], value)
		if err != nil {
			return nil, err
		}
		return cp, nil
	case hashNode:
		resolved, err := t.resolveForMutation(nd)
		if err != nil {
			return nil, err
		}
		return t.insert(resolved, key, value)
	default:
		return nil, fmt.Errorf("mpt: unexpected node type %T during insert", n)
	}
}

func (t *Trie) delete(n node, key []nibble) (node, error) {
	switch nd := n.(type) {
	case nil:
		return nil, nil
	case valueNode:
		return nil, nil
	case *shortNode:
		matchlen := commonPrefixLength(key, nd.Key)
		if matchlen < len(nd.Key) {
			return nd, nil
		}
		if matchlen == len(key) {
			return nil, nil
		}
		newVal, err := t.delete(nd.Val, key[matchlen:])
		if err != nil {
			return nil, err
		}
		switch child := newVal.(type) {
		case nil:
			return nil, nil
		case *shortNode:
			return &shortNode{Key: concatNibbles(nd.Key, child.Key), Val: child.Val}, nil
		default:
			return &shortNode{Key: nd.Key, Val: newVal}, nil
		}
	case *fullNode:
		cp := nd.copy()
		child, err := t.resolveForMutation(cp.Children[key[0]])
		if err != nil {
			return nil, err
		}
		cp.Children[key[0]], err = t.delete(child, key[1:])
		if err != nil {
			return nil, err
		}

		pos, count := -1, 0
		for i, c := range cp.Children {
			if c != nil {
				count++
				pos = i
			}
		}
		switch count {
		case 0:
			return nil, nil
		case 1:
			if pos == int(terminator) {
				return &shortNode{Key: []nibble{terminator}, Val: cp.Children[pos]}, nil
			}
			remaining, err := t.resolve(cp.Children[pos])
			if err != nil {
				return nil, err
			}
			if sn, ok := remaining.(*shortNode); ok {
				if hn, isHash := cp.Children[pos].(hashNode); isHash {
					t.deleted[common.Hash(hn)] = struct{}{}
				}
				return &shortNode{Key: concatNibbles([]nibble{nibble(pos)}, sn.Key), Val: sn.Val}, nil
			}
			return &shortNode{Key: []nibble{nibble(pos)}, Val: cp.Children[pos]}, nil
		default:
			return cp, nil
		}
	case hashNode:
		resolved, err := t.resolveForMutation(nd)
		if err != nil {
			return nil, err
		}
		return t.delete(resolved, key)
	default:
		return nil, fmt.Errorf("mpt: unexpected node type %T during delete", n)
	}
}

// hashAndStore collapses an in-memory subtree into its committed form,
// encoding and hashing every fullNode/shortNode it finds (hashNode and
// valueNode are already in their final form and are returned unchanged). A
// node whose encoding is at least 32 bytes is hashed and recorded in
// inserts, becoming a hashNode; a smaller node is left as the node itself,
// so its parent embeds it inline instead of referencing it by hash
// (go-ethereum's collapse rule). force skips the size check, since the trie
// root must always be individually addressable regardless of its size.
func (t *Trie) hashAndStore(n node, inserts map[common.Hash][]byte, force bool) (node, error) {
	switch nd := n.(type) {
	case nil, hashNode, valueNode:
		return nd, nil
	case *shortNode:
		newVal, err := t.hashAndStore(nd.Val, inserts, false)
		if err != nil {
			return nil, err
		}
		collapsed := &shortNode{Key: nd.Key, Val: newVal}
		enc := encodeNode(collapsed)
		if !force && len(enc) < 32 {
			return collapsed, nil
		}
		h := hashBytes(enc)
		inserts[h] = enc
		return hashNode(h), nil
	case *fullNode:
		cp := &fullNode{}
		for i := 0; i < 17; i++ {
			child, err := t.hashAndStore(nd.Children[i], inserts, false)
			if err != nil {
				return nil, err
			}
			cp.Children[i] = child
		}
		enc := encodeNode(cp)
		if !force && len(enc) < 32 {
			return cp, nil
		}
		h := hashBytes(enc)
		inserts[h] = enc
		return hashNode(h), nil
	default:
		return nil, fmt.Errorf("mpt: unexpected node type %T during hash", n)
	}
}
