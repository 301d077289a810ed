package network

// epoch accessors cover prefixes 0x05-0x07 (spec §4.7): the current epoch
// counter and the view at which the current and previous epochs started.
// 0x06/0x07 are this module's own addition; the reference implementation
// only ever tracked CurrentEpoch.

func (n *NetworkAccount) CurrentEpoch() uint64 {
	b, ok := n.store.Get(prefixCurrentEpoch)
	if !ok {
		return 0
	}
	return decodeU64(b)
}

func (n *NetworkAccount) SetCurrentEpoch(epoch uint64) {
	n.store.Set(prefixCurrentEpoch, encodeU64(epoch))
}

func (n *NetworkAccount) CurrentEpochStartView() uint64 {
	b, ok := n.store.Get(prefixCurrentEpochStartView)
	if !ok {
		return 0
	}
	return decodeU64(b)
}

func (n *NetworkAccount) SetCurrentEpochStartView(view uint64) {
	n.store.Set(prefixCurrentEpochStartView, encodeU64(view))
}

func (n *NetworkAccount) PreviousEpochStartView() uint64 {
	b, ok := n.store.Get(prefixPrevEpochStartView)
	if !ok {
		return 0
	}
	return decodeU64(b)
}

func (n *NetworkAccount) SetPreviousEpochStartView(view uint64) {
	n.store.Set(prefixPrevEpochStartView, encodeU64(view))
}

// AdvanceEpoch rolls CurrentEpochStartView into PreviousEpochStartView,
// bumps CurrentEpoch, and records newStartView as the new epoch's start.
// This is the only mutator that touches all three fields atomically, so
// callers driving an epoch transition never leave them inconsistent.
func (n *NetworkAccount) AdvanceEpoch(newStartView uint64) {
	n.SetPreviousEpochStartView(n.CurrentEpochStartView())
	n.SetCurrentEpochStartView(newStartView)
	n.SetCurrentEpoch(n.CurrentEpoch() + 1)
}
