package rlpcodec

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// TestKeccak256Agreement cross-checks go-ethereum's Keccak-256 against an
// independent computation over golang.org/x/crypto/sha3, the same technique
// the teacher project uses to validate its cgo and pure-Go Keccak
// implementations against each other.
func TestKeccak256Agreement(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		make([]byte, 1024),
	}
	for _, in := range inputs {
		want := crypto.Keccak256(in)

		h := sha3.NewLegacyKeccak256()
		h.Write(in)
		got := h.Sum(nil)

		if !bytes.Equal(want, got) {
			t.Fatalf("Keccak256(%x) disagreement: go-ethereum=%x sha3=%x", in, want, got)
		}
	}
}

func TestEncodeDecodeStringRoundTrip(t *testing.T) {
	cases := [][]byte{nil, []byte("x"), []byte("a reasonably long value for a trie leaf")}
	for _, c := range cases {
		enc := EncodeString(c)
		got, err := DecodeString(enc)
		if err != nil {
			t.Fatalf("DecodeString: %v", err)
		}
		if !bytes.Equal(got, c) && !(len(got) == 0 && len(c) == 0) {
			t.Fatalf("round trip %x -> %x -> %x", c, enc, got)
		}
	}
}

func TestEncodeDecodeListRoundTrip(t *testing.T) {
	items := [][]byte{EncodeString([]byte("a")), EncodeString([]byte("bb")), EncodeString(nil)}
	enc := EncodeList(items...)
	got, err := DecodeList(enc)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("DecodeList length = %d, want %d", len(got), len(items))
	}
	for i := range items {
		if !bytes.Equal(got[i], items[i]) {
			t.Fatalf("DecodeList[%d] = %x, want %x", i, got[i], items[i])
		}
	}
}
