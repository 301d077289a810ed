package network

import "testing"

func TestDepositDictRoundTrip(t *testing.T) {
	store := newMemStorage()
	operator, owner := poolAddr(1), poolAddr(2)
	d := newDepositDict(store, operator, owner)

	if d.Exists() {
		t.Fatal("fresh DepositDict should not exist")
	}
	d.SetBalance(1000)
	d.SetAutoStakeRewards(true)

	if !d.Exists() {
		t.Fatal("DepositDict should exist after SetBalance")
	}
	balance, ok := d.Balance()
	if !ok || balance != 1000 {
		t.Fatalf("Balance() = (%d, %v), want (1000, true)", balance, ok)
	}
	auto, ok := d.AutoStakeRewards()
	if !ok || !auto {
		t.Fatalf("AutoStakeRewards() = (%v, %v), want (true, true)", auto, ok)
	}

	d.Delete()
	if d.Exists() {
		t.Fatal("DepositDict should not exist after Delete")
	}
}

func TestDepositDictsForDifferentOwnersAreIndependent(t *testing.T) {
	store := newMemStorage()
	operator := poolAddr(1)
	a := newDepositDict(store, operator, poolAddr(2))
	b := newDepositDict(store, operator, poolAddr(3))

	a.SetBalance(5)
	if b.Exists() {
		t.Fatal("a different owner's deposit should be untouched")
	}
}
