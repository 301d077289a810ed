package network

import "testing"

func TestAdvanceEpochRollsViewsAndCounter(t *testing.T) {
	n := Open(newMemStorage())
	if n.CurrentEpoch() != 0 {
		t.Fatalf("CurrentEpoch of a fresh account = %d, want 0", n.CurrentEpoch())
	}

	n.SetCurrentEpochStartView(100)
	n.AdvanceEpoch(200)

	if n.CurrentEpoch() != 1 {
		t.Fatalf("CurrentEpoch after AdvanceEpoch = %d, want 1", n.CurrentEpoch())
	}
	if n.PreviousEpochStartView() != 100 {
		t.Fatalf("PreviousEpochStartView = %d, want 100", n.PreviousEpochStartView())
	}
	if n.CurrentEpochStartView() != 200 {
		t.Fatalf("CurrentEpochStartView = %d, want 200", n.CurrentEpochStartView())
	}

	n.AdvanceEpoch(300)
	if n.CurrentEpoch() != 2 {
		t.Fatalf("CurrentEpoch after second AdvanceEpoch = %d, want 2", n.CurrentEpoch())
	}
	if n.PreviousEpochStartView() != 200 {
		t.Fatalf("PreviousEpochStartView after second AdvanceEpoch = %d, want 200", n.PreviousEpochStartView())
	}
}
