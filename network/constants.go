package network

import "github.com/parallelchain-io/pchain-world-state/common"

// NetworkAddr is the fixed, all-zero address whose account the network
// account schema lives under.
var NetworkAddr = common.Address{}

const (
	// MaxValidatorSetSize bounds the previous/current/next validator pool
	// sets (N in the reference implementation's NetworkAccountSized<N, M>).
	MaxValidatorSetSize = 64
	// MaxStakesPerPool bounds each pool's delegated-stake heap (M).
	MaxStakesPerPool = 128
)

// storage key prefixes under the network account's storage trie (spec
// §4.7). 0x00-0x05 mirror the reference implementation; 0x06-0x08 are this
// module's own additions for epoch timing and evidence, absent upstream.
var (
	prefixPrevValidatorPools    = []byte{0x00}
	prefixValidatorPools        = []byte{0x01}
	prefixNextValidatorPools    = []byte{0x02}
	prefixPools                 = []byte{0x03}
	prefixDeposits              = []byte{0x04}
	prefixCurrentEpoch          = []byte{0x05}
	prefixCurrentEpochStartView = []byte{0x06}
	prefixPrevEpochStartView    = []byte{0x07}
	prefixPublishedEvidence     = []byte{0x08}
)
