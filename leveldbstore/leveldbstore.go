// Package leveldbstore is a disk-backed mpt.Db on top of
// github.com/syndtr/goleveldb, the node-store this module's callers use when
// they don't already have their own key/value layer. Grounded on Carmen's
// backend/ldb.go (OpenLevelDb, the thin *leveldb.DB-embedding wrapper style).
package leveldbstore

import (
	"errors"

	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/syndtr/goleveldb/leveldb"
)

// Store is a node-hash-keyed leveldb database. The zero value is not usable;
// construct with Open.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if absent) the leveldb database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements mpt.Db.
func (s *Store) Get(hash common.NodeHash) ([]byte, bool) {
	v, err := s.db.Get(hash[:], nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false
		}
		panic(err)
	}
	return v, true
}

// Apply writes every insert and removes every delete from a
// worldstate.WorldStateChanges-shaped diff in a single atomic batch.
func (s *Store) Apply(inserts map[common.Hash][]byte, deletes map[common.Hash]struct{}) error {
	batch := new(leveldb.Batch)
	for h, v := range inserts {
		batch.Put(h[:], v)
	}
	for h := range deletes {
		batch.Delete(h[:])
	}
	return s.db.Write(batch, nil)
}
