package network

import (
	"encoding/binary"

	"github.com/parallelchain-io/pchain-world-state/common"
)

// Stake is a single delegation: owner's address and the power it
// contributes. Grounded on stake.rs's StakeValue, flattened into one value
// type since this module has no need for a separate pchain_types::Stake.
type Stake struct {
	Owner common.Address
	Power uint64
}

func (s Stake) Key() []byte { return s.Owner[:] }

func (s Stake) Encode() []byte {
	b := make([]byte, 0, 40)
	b = append(b, s.Owner[:]...)
	b = binary.LittleEndian.AppendUint64(b, s.Power)
	return b
}

func decodeStake(b []byte) Stake {
	var s Stake
	if len(b) < 40 {
		return s
	}
	copy(s.Owner[:], b[:32])
	s.Power = binary.LittleEndian.Uint64(b[32:40])
	return s
}

// compareStakes orders stakes by Power descending, ties broken by the
// greater owner address (spec I6).
func compareStakes(a, b Stake) int {
	if a.Power != b.Power {
		if a.Power > b.Power {
			return 1
		}
		return -1
	}
	return compareAddresses(a.Owner, b.Owner)
}

func compareAddresses(a, b common.Address) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}
