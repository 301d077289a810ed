package network

import "github.com/parallelchain-io/pchain-world-state/common"

// evidencePresent is the sentinel value marking a published evidence hash as
// present; the Published Evidence field is a set, not a map, so only
// presence is meaningful (spec §4.7).
var evidencePresent = []byte{0x01}

func (n *NetworkAccount) evidenceKey(hash common.Hash) []byte {
	return append(append([]byte{}, prefixPublishedEvidence...), hash[:]...)
}

// HasPublishedEvidence reports whether hash has already been recorded as
// published, so that duplicate evidence submissions can be rejected.
func (n *NetworkAccount) HasPublishedEvidence(hash common.Hash) bool {
	return n.store.Contains(n.evidenceKey(hash))
}

// PublishEvidence records hash as published. Publishing an already-recorded
// hash is a no-op.
func (n *NetworkAccount) PublishEvidence(hash common.Hash) {
	n.store.Set(n.evidenceKey(hash), evidencePresent)
}
