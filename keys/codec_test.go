package keys

import (
	"bytes"
	"testing"

	"github.com/parallelchain-io/pchain-world-state/common"
)

func addr(b byte) common.Address {
	var a common.Address
	a[0] = b
	return a
}

func TestV2AccountKeyLayout(t *testing.T) {
	a := addr(0x11)
	got := V2Codec{}.AccountKey(a, SuffixBalance)
	want := append(append([]byte{}, a[:]...), 0x00, byte(SuffixBalance))
	if !bytes.Equal(got, want) {
		t.Fatalf("AccountKey = %x, want %x", got, want)
	}
}

func TestV2StorageKeyLayout(t *testing.T) {
	a := addr(0x22)
	appKey := common.AppKey("hello")
	got := V2Codec{}.StorageKey(a, appKey)
	want := append(append([]byte{}, a[:]...), 0x01)
	want = append(want, appKey...)
	if !bytes.Equal(got, want) {
		t.Fatalf("StorageKey = %x, want %x", got, want)
	}
}

func TestV1AndV2KeysDiffer(t *testing.T) {
	a := addr(0x33)
	v1 := V1Codec{}.AccountKey(a, SuffixNonce)
	v2 := V2Codec{}.AccountKey(a, SuffixNonce)
	if bytes.Equal(v1, v2) {
		t.Fatal("V1 and V2 account keys should differ (different visibility byte)")
	}
}

func TestV1StorageKeyIgnoresAddress(t *testing.T) {
	appKey := common.AppKey("k")
	k1 := V1Codec{}.StorageKey(addr(0x01), appKey)
	k2 := V1Codec{}.StorageKey(addr(0x02), appKey)
	if !bytes.Equal(k1, k2) {
		t.Fatalf("V1 storage keys should be address-independent: %x != %x", k1, k2)
	}
}

func TestU64RoundTrip(t *testing.T) {
	got, err := DecodeU64(EncodeU64(123456789))
	if err != nil || got != 123456789 {
		t.Fatalf("DecodeU64(EncodeU64(x)) = (%d, %v), want (123456789, nil)", got, err)
	}
}

func TestDecodeU64WrongWidth(t *testing.T) {
	if _, err := DecodeU64([]byte{1, 2, 3}); err == nil {
		t.Fatal("DecodeU64 with wrong width should fail")
	}
}
