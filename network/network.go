package network

import "github.com/parallelchain-io/pchain-world-state/common"

// NetworkAccount is the typed view over the network account's storage
// (C7): previous/current validator pools, the next-validator-set
// nomination heap, per-operator pools, per-(operator,owner) deposits, and
// epoch/evidence bookkeeping. Grounded on network_account.rs's
// NetworkAccountSized, fixed to this module's MaxValidatorSetSize and
// MaxStakesPerPool rather than being itself generic over them, since Go
// has no const generics to mirror Rust's <const N: u16, const M: u16>.
type NetworkAccount struct {
	store Storage
}

// Open wraps store as a NetworkAccount. Callers normally reach this via
// worldstate.WorldState.Network rather than constructing it directly.
func Open(store Storage) *NetworkAccount {
	return &NetworkAccount{store: store}
}

// PreviousValidatorPools is the validator set that was active last epoch.
func (n *NetworkAccount) PreviousValidatorPools() *ValidatorPool {
	return newValidatorPool(n.store, prefixPrevValidatorPools)
}

// ValidatorPools is the validator set active this epoch.
func (n *NetworkAccount) ValidatorPools() *ValidatorPool {
	return newValidatorPool(n.store, prefixValidatorPools)
}

// NextValidatorPools is the nomination heap candidates are ranked in ahead
// of the next epoch transition (I6: max-heap by Power, address-desc tie).
func (n *NetworkAccount) NextValidatorPools() *IndexHeap[PoolKey] {
	return NewIndexHeap(n.store, prefixNextValidatorPools, MaxValidatorSetSize, decodePoolKey, comparePoolKeys)
}

// Pool returns the PoolDict for operator, regardless of whether operator is
// currently in any validator set.
func (n *NetworkAccount) Pool(operator common.Address) *PoolDict {
	prefix := append(append([]byte{}, prefixPools...), operator[:]...)
	return newPoolDict(n.store, prefix)
}

// Deposit returns owner's deposit backing its delegation to operator's
// pool.
func (n *NetworkAccount) Deposit(operator, owner common.Address) *DepositDict {
	return newDepositDict(n.store, operator, owner)
}
