package network

import "testing"

func TestNetworkAccountValidatorPoolsAreIndependentOfEachOther(t *testing.T) {
	n := Open(newMemStorage())
	op := poolAddr(1)

	if err := n.ValidatorPools().Push(Pool{Operator: op, Power: 1}, nil); err != nil {
		t.Fatal(err)
	}
	if n.PreviousValidatorPools().Length() != 0 {
		t.Fatal("pushing to ValidatorPools should not affect PreviousValidatorPools")
	}
	if n.ValidatorPools().Length() != 1 {
		t.Fatalf("ValidatorPools().Length() = %d, want 1", n.ValidatorPools().Length())
	}
}

func TestNetworkAccountNextValidatorPoolsRanksByPower(t *testing.T) {
	n := Open(newMemStorage())
	nvp := n.NextValidatorPools()

	candidates := []PoolKey{
		{Operator: poolAddr(1), Power: 10},
		{Operator: poolAddr(2), Power: 30},
		{Operator: poolAddr(3), Power: 20},
	}
	for _, c := range candidates {
		if err := nvp.Insert(c); err != nil {
			t.Fatal(err)
		}
	}

	top, ok := nvp.Extract()
	if !ok || top.Power != 30 {
		t.Fatalf("Extract() = %+v, want the candidate with power 30", top)
	}
}

func TestNetworkAccountPoolAndDepositShareNoState(t *testing.T) {
	n := Open(newMemStorage())
	operator := poolAddr(1)
	owner := poolAddr(2)

	n.Pool(operator).SetPower(99)
	if n.Deposit(operator, owner).Exists() {
		t.Fatal("setting a pool field should not create an unrelated deposit")
	}

	n.Deposit(operator, owner).SetBalance(5)
	power, ok := n.Pool(operator).Power()
	if !ok || power != 99 {
		t.Fatalf("Pool power should be unaffected by an unrelated deposit write: got (%d, %v), want (99, true)", power, ok)
	}
}
