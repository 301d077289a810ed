package network

import "testing"

func TestPublishEvidenceIsIdempotentAndDistinguishesHashes(t *testing.T) {
	n := Open(newMemStorage())
	var h1, h2 [32]byte
	h1[0] = 1
	h2[0] = 2

	if n.HasPublishedEvidence(h1) {
		t.Fatal("evidence should not be published before PublishEvidence")
	}
	n.PublishEvidence(h1)
	if !n.HasPublishedEvidence(h1) {
		t.Fatal("evidence should be published after PublishEvidence")
	}
	if n.HasPublishedEvidence(h2) {
		t.Fatal("publishing one hash should not affect another")
	}

	n.PublishEvidence(h1)
	if !n.HasPublishedEvidence(h1) {
		t.Fatal("republishing the same hash should remain published")
	}
}
