package worldstate

import "github.com/parallelchain-io/pchain-world-state/common"

// memDb is a flat in-memory mpt.Db, used across this package's tests in
// place of a real leveldbstore.Store.
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

func (d *memDb) apply(changes *WorldStateChanges) {
	for h, v := range changes.Inserts {
		d.nodes[h] = v
	}
	for h := range changes.Deletes {
		delete(d.nodes, h)
	}
}
