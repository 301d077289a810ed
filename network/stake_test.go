package network

import "testing"

func TestCompareStakesOrdersByPowerDescending(t *testing.T) {
	strong := Stake{Owner: poolAddr(1), Power: 100}
	weak := Stake{Owner: poolAddr(2), Power: 50}

	if compareStakes(strong, weak) <= 0 {
		t.Fatal("a stronger stake should outrank a weaker one regardless of address")
	}
	if compareStakes(weak, strong) >= 0 {
		t.Fatal("comparison should be antisymmetric")
	}
}

func TestCompareStakesBreaksTiesByGreaterAddress(t *testing.T) {
	low := Stake{Owner: poolAddr(1), Power: 100}
	high := Stake{Owner: poolAddr(2), Power: 100}

	if compareStakes(high, low) <= 0 {
		t.Fatal("equal power should break ties in favour of the greater address")
	}
	if compareStakes(low, high) >= 0 {
		t.Fatal("comparison should be antisymmetric on the tiebreak too")
	}
}

func TestCompareStakesEqualStakesCompareEqual(t *testing.T) {
	a := Stake{Owner: poolAddr(3), Power: 7}
	b := Stake{Owner: poolAddr(3), Power: 7}
	if compareStakes(a, b) != 0 {
		t.Fatal("identical stakes should compare equal")
	}
}

func TestCompareAddressesIsLexicographic(t *testing.T) {
	low, high := poolAddr(1), poolAddr(2)
	if compareAddresses(low, high) >= 0 {
		t.Fatal("compareAddresses(low, high) should be negative")
	}
	if compareAddresses(high, low) <= 0 {
		t.Fatal("compareAddresses(high, low) should be positive")
	}
	if compareAddresses(low, low) != 0 {
		t.Fatal("compareAddresses of equal addresses should be zero")
	}
}
