package mpt

import "github.com/parallelchain-io/pchain-world-state/common"

// memDb is a trivial in-memory Db used across this package's tests. It is
// intentionally not the generated MockDb (db_mock.go): most of this
// package's tests want a flat, real-looking backing store to commit into and
// reopen from, not per-call error injection.
type memDb struct {
	nodes map[common.NodeHash][]byte
}

func newMemDb() *memDb {
	return &memDb{nodes: make(map[common.NodeHash][]byte)}
}

func (d *memDb) Get(hash common.NodeHash) ([]byte, bool) {
	b, ok := d.nodes[hash]
	return b, ok
}

func (d *memDb) apply(inserts map[common.Hash][]byte, deletes map[common.Hash]struct{}) {
	for h, v := range inserts {
		d.nodes[h] = v
	}
	for h := range deletes {
		delete(d.nodes, h)
	}
}
