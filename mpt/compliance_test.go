package mpt

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

// These tests check this package's root hashes against byte sequences
// assembled by hand from the Ethereum Yellow Paper's hex-prefix and RLP
// node encoding rules, independent of encodeNode/hexPrefixEncode, the way
// Carmen's own compliance_test.go checks its state hashes against a real
// go-ethereum trie. A wrong hex-prefix flag, a missing branch slot, or a
// short child that should have been inlined but wasn't (or vice versa)
// changes these bytes and so fails these tests, even though they are
// invisible to trie_test.go's self-consistency checks.

// TestComplianceSingleLeafHash exercises a trie with no branch/extension
// node: the root is a single leaf shortNode, always hashed regardless of
// its encoded size (Trie.Commit always forces the root).
func TestComplianceSingleLeafHash(t *testing.T) {
	db := newMemDb()
	tr := New(db)
	if err := tr.Put([]byte{0x01}, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	got, _, _ := tr.Commit()

	// key nibbles [0,1,16] (16 = terminator). hex-prefix of a leaf with an
	// even nibble count strips the terminator, sets the leaf flag (2) and no
	// odd-length bit, and pads with a zero nibble: {0x20, 0x01}.
	key := []byte{0x82, 0x20, 0x01} // RLP string, length 2: 0x80+2, then the bytes
	val := []byte{0x85, 'h', 'e', 'l', 'l', 'o'} // RLP string, length 5: 0x80+5
	payload := append(append([]byte{}, key...), val...)
	enc := append([]byte{0xc0 + byte(len(payload))}, payload...)
	want := crypto.Keccak256(enc)

	if !bytes.Equal(got[:], want) {
		t.Fatalf("root hash = %x, want %x (from hand-assembled encoding %x)", got, want, enc)
	}
}

// TestComplianceTwoKeysSharedPrefixHash is the short-branch/extension case:
// two keys ({0x12}, {0x13}) share their first nibble, forcing an extension
// node over a branch node whose two leaf children are only 3 bytes each
// once RLP-encoded — well under the 32-byte inlining threshold, so they
// must be embedded directly in the branch's own encoding rather than
// hashed and stored as separate Db entries.
func TestComplianceTwoKeysSharedPrefixHash(t *testing.T) {
	db := newMemDb()
	tr := New(db)
	if err := tr.Put([]byte{0x12}, []byte("A")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Put([]byte{0x13}, []byte("B")); err != nil {
		t.Fatal(err)
	}
	got, inserts, _ := tr.Commit()

	// Leaf {16} (terminator only, i.e. no remaining path) holding "A": leaf
	// flag with even length, packed to {0x20}. Both the hex-prefix key and
	// the single-byte value are RLP-single-byte-string self-encodings
	// since both bytes are below 0x80.
	leafA := []byte{0xc0 + 2, 0x20, 'A'}
	leafB := []byte{0xc0 + 2, 0x20, 'B'}
	if len(leafA) >= 32 || len(leafB) >= 32 {
		t.Fatalf("test setup invariant violated: leaves must be inlinable")
	}

	// fullNode with children[2]=leafA, children[3]=leafB inlined verbatim
	// (their own RLP list bytes, not wrapped in an RLP string), every other
	// slot (including the value slot at index 16) an empty RLP string 0x80.
	branchPayload := []byte{0x80, 0x80}
	branchPayload = append(branchPayload, leafA...)
	branchPayload = append(branchPayload, leafB...)
	for i := 0; i < 13; i++ {
		branchPayload = append(branchPayload, 0x80)
	}
	branch := append([]byte{0xc0 + byte(len(branchPayload))}, branchPayload...)
	if len(branch) >= 32 {
		t.Fatalf("test setup invariant violated: branch must be inlinable")
	}

	// Root: extension over nibble [1], hex-prefix odd-length non-leaf flag
	// (1), packed to {0x11}, followed by the branch embedded inline.
	rootPayload := append([]byte{0x11}, branch...)
	root := append([]byte{0xc0 + byte(len(rootPayload))}, rootPayload...)
	want := crypto.Keccak256(root)

	if !bytes.Equal(got[:], want) {
		t.Fatalf("root hash = %x, want %x (from hand-assembled encoding %x)", got, want, root)
	}

	// The branch and both leaves are inlined: only the root itself should
	// have been hashed and recorded as a Db insert.
	if len(inserts) != 1 {
		t.Fatalf("Commit produced %d inserts, want 1 (only the root; the rest should be inlined)", len(inserts))
	}
}

// TestInlinedNodesSurviveCommitAndReopen checks the functional half of
// inlining: a trie small enough that every non-root node is embedded still
// round-trips both keys after Commit and reopening against a store that
// only contains what Commit reported as inserts.
func TestInlinedNodesSurviveCommitAndReopen(t *testing.T) {
	db := newMemDb()
	tr := New(db)
	if err := tr.Put([]byte{0x12}, []byte("A")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Put([]byte{0x13}, []byte("B")); err != nil {
		t.Fatal(err)
	}
	root, inserts, _ := tr.Commit()
	db.apply(inserts, nil)

	reopened := Open(db, root)
	got, err := reopened.Get([]byte{0x12})
	if err != nil || string(got) != "A" {
		t.Fatalf("Get({0x12}) after reopen = (%q, %v), want (\"A\", nil)", got, err)
	}
	got, err = reopened.Get([]byte{0x13})
	if err != nil || string(got) != "B" {
		t.Fatalf("Get({0x13}) after reopen = (%q, %v), want (\"B\", nil)", got, err)
	}
}

// TestProveAndVerifyWithInlinedNodes checks that Prove/VerifyProof still
// connect the dots when the path to a key passes through inlined (not
// separately hashed) nodes.
func TestProveAndVerifyWithInlinedNodes(t *testing.T) {
	db := newMemDb()
	tr := New(db)
	if err := tr.Put([]byte{0x12}, []byte("A")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Put([]byte{0x13}, []byte("B")); err != nil {
		t.Fatal(err)
	}
	root, inserts, _ := tr.Commit()
	db.apply(inserts, nil)

	reopened := Open(db, root)
	proof, value, err := reopened.Prove([]byte{0x13})
	if err != nil {
		t.Fatal(err)
	}
	if string(value) != "B" {
		t.Fatalf("Prove value = %q, want %q", value, "B")
	}
	got, ok := VerifyProof(root, []byte{0x13}, proof)
	if !ok || !bytes.Equal(got, []byte("B")) {
		t.Fatalf("VerifyProof = (%q, %v), want (%q, true)", got, ok, "B")
	}
}
