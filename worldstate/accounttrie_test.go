package worldstate

import (
	"testing"

	"github.com/parallelchain-io/pchain-world-state/keys"
	"github.com/parallelchain-io/pchain-world-state/mpt"
)

func TestAccountTrieFieldRoundTrip(t *testing.T) {
	a := addr(0x10)
	at := newAccountTrie(newMemDb(), keys.V2Codec{}, mpt.EmptyRoot)

	if err := at.SetNonce(a, 1); err != nil {
		t.Fatal(err)
	}
	if err := at.SetBalance(a, 2); err != nil {
		t.Fatal(err)
	}
	if err := at.SetCode(a, []byte{0xde, 0xad}); err != nil {
		t.Fatal(err)
	}
	if err := at.SetCBIVersion(a, 3); err != nil {
		t.Fatal(err)
	}

	nonce, err := at.Nonce(a)
	if err != nil || nonce != 1 {
		t.Fatalf("Nonce = (%d, %v), want (1, nil)", nonce, err)
	}
	balance, err := at.Balance(a)
	if err != nil || balance != 2 {
		t.Fatalf("Balance = (%d, %v), want (2, nil)", balance, err)
	}
	code, err := at.Code(a)
	if err != nil || string(code) != "\xde\xad" {
		t.Fatalf("Code = (%x, %v), want (dead, nil)", code, err)
	}
	version, err := at.CBIVersion(a)
	if err != nil || version != 3 {
		t.Fatalf("CBIVersion = (%d, %v), want (3, nil)", version, err)
	}
}

func TestSetCodeEmptyRemovesIt(t *testing.T) {
	a := addr(0x11)
	at := newAccountTrie(newMemDb(), keys.V2Codec{}, mpt.EmptyRoot)
	if err := at.SetCode(a, []byte("some code")); err != nil {
		t.Fatal(err)
	}
	if err := at.SetCode(a, nil); err != nil {
		t.Fatal(err)
	}
	has, err := at.HasCode(a)
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Fatal("HasCode after SetCode(nil) should be false")
	}
}

func TestStorageRootDefaultsToEmptyRoot(t *testing.T) {
	a := addr(0x12)
	at := newAccountTrie(newMemDb(), keys.V2Codec{}, mpt.EmptyRoot)
	root, err := at.StorageRoot(a)
	if err != nil {
		t.Fatal(err)
	}
	if root != mpt.EmptyRoot {
		t.Fatalf("StorageRoot for unset account = %x, want EmptyRoot %x", root, mpt.EmptyRoot)
	}
}

func TestSetStorageRootEmptyRemovesField(t *testing.T) {
	a := addr(0x13)
	at := newAccountTrie(newMemDb(), keys.V2Codec{}, mpt.EmptyRoot)
	if err := at.SetNonce(a, 1); err != nil {
		t.Fatal(err)
	}
	if err := at.SetStorageRoot(a, mpt.EmptyRoot); err != nil {
		t.Fatal(err)
	}
	root, err := at.StorageRoot(a)
	if err != nil {
		t.Fatal(err)
	}
	if root != mpt.EmptyRoot {
		t.Fatalf("StorageRoot = %x, want EmptyRoot", root)
	}
}

func TestAccountTrieProveAndVerify(t *testing.T) {
	a := addr(0x14)
	db := newMemDb()
	at := newAccountTrie(db, keys.V2Codec{}, mpt.EmptyRoot)
	if err := at.SetBalance(a, 500); err != nil {
		t.Fatal(err)
	}
	root, inserts, deletes := at.commit()
	db.apply(&WorldStateChanges{Inserts: inserts, Deletes: deletes})

	reopened := newAccountTrie(db, keys.V2Codec{}, root)
	proof, value, err := reopened.Prove(a, keys.SuffixBalance)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := mpt.VerifyProof(root, keys.V2Codec{}.AccountKey(a, keys.SuffixBalance), proof)
	if !ok {
		t.Fatal("VerifyProof did not connect to root")
	}
	if string(got) != string(value) {
		t.Fatalf("VerifyProof value = %x, want %x", got, value)
	}
}
