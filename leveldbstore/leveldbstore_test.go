package leveldbstore

import (
	"path/filepath"
	"testing"

	"github.com/parallelchain-io/pchain-world-state/common"
)

func nodeHash(b byte) common.NodeHash {
	var h common.NodeHash
	h[0] = b
	return h
}

func TestStoreGetMissingReturnsNotOk(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, ok := store.Get(nodeHash(1)); ok {
		t.Fatal("Get on an empty store should report absent")
	}
}

func TestStoreApplyInsertsAreVisibleAfterwards(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	h := nodeHash(2)
	inserts := map[common.Hash][]byte{h: []byte("node")}
	if err := store.Apply(inserts, nil); err != nil {
		t.Fatal(err)
	}

	v, ok := store.Get(h)
	if !ok {
		t.Fatal("Get after Apply should find the inserted node")
	}
	if string(v) != "node" {
		t.Fatalf("Get = %q, want %q", v, "node")
	}
}

func TestStoreApplyDeletesRemoveExistingNodes(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	h := nodeHash(3)
	if err := store.Apply(map[common.Hash][]byte{h: []byte("node")}, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Apply(nil, map[common.Hash]struct{}{h: {}}); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Get(h); ok {
		t.Fatal("Get after a deleting Apply should report absent")
	}
}

func TestStoreApplyIsAtomicAcrossInsertsAndDeletes(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	kept, removed := nodeHash(4), nodeHash(5)
	if err := store.Apply(map[common.Hash][]byte{
		kept:    []byte("kept"),
		removed: []byte("removed"),
	}, nil); err != nil {
		t.Fatal(err)
	}

	added := nodeHash(6)
	if err := store.Apply(
		map[common.Hash][]byte{added: []byte("added")},
		map[common.Hash]struct{}{removed: {}},
	); err != nil {
		t.Fatal(err)
	}

	if v, ok := store.Get(kept); !ok || string(v) != "kept" {
		t.Fatalf("kept node should be unaffected by an unrelated batch, got (%q, %v)", v, ok)
	}
	if _, ok := store.Get(removed); ok {
		t.Fatal("removed node should be gone after the batch")
	}
	if v, ok := store.Get(added); !ok || string(v) != "added" {
		t.Fatalf("added node should be present, got (%q, %v)", v, ok)
	}
}

func TestStoreReopenSeesPreviouslyCommittedData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	store, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	h := nodeHash(7)
	if err := store.Apply(map[common.Hash][]byte{h: []byte("persisted")}, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	v, ok := reopened.Get(h)
	if !ok || string(v) != "persisted" {
		t.Fatalf("Get after reopen = (%q, %v), want (%q, true)", v, ok, "persisted")
	}
}
