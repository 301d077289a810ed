package worldstate

import "github.com/parallelchain-io/pchain-world-state/common"

// WorldStateChanges is the node-level diff a Commit or Close produces: every
// node the caller must write into its backing store, every node hash the
// caller may now discard, and the resulting root. Inserts and Deletes never
// share a hash (spec P7): a node re-created with byte-identical content
// during the same commit is dropped from both sets.
type WorldStateChanges struct {
	Inserts      map[common.Hash][]byte
	Deletes      map[common.Hash]struct{}
	NewStateHash common.Hash
}

func newWorldStateChanges() *WorldStateChanges {
	return &WorldStateChanges{
		Inserts: make(map[common.Hash][]byte),
		Deletes: make(map[common.Hash]struct{}),
	}
}

// merge folds another trie's Commit output into this WorldStateChanges,
// applying the cross-commit version of the insert/delete-intersection-drop
// rule: a node hash touched by more than one of the tries flushed within a
// single WorldState.Commit still nets out to whichever of insert/delete
// happened last, never both.
func (c *WorldStateChanges) merge(inserts map[common.Hash][]byte, deletes map[common.Hash]struct{}) {
	for h, v := range inserts {
		delete(c.Deletes, h)
		c.Inserts[h] = v
	}
	for h := range deletes {
		delete(c.Inserts, h)
		c.Deletes[h] = struct{}{}
	}
}

// overlayEntry is one pending change in a cache overlay: either a value to
// write, or a tombstone marking a removal.
type overlayEntry struct {
	deleted bool
	value   []byte
}
