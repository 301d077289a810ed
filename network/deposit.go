package network

import "github.com/parallelchain-io/pchain-world-state/common"

var (
	depositFieldBalance         = byte(0x00)
	depositFieldAutoStakeReward = byte(0x01)
)

// DepositDict is the keyspace-backed view of one (operator, owner) deposit:
// the locked balance backing an owner's delegation to operator's pool, and
// whether epoch rewards on it auto-compound. Grounded on deposit.rs's
// DepositDict.
type DepositDict struct {
	store  Storage
	prefix []byte
}

func newDepositDict(store Storage, operator, owner common.Address) *DepositDict {
	prefix := append(append([]byte{}, prefixDeposits...), operator[:]...)
	prefix = append(prefix, owner[:]...)
	return &DepositDict{store: store, prefix: prefix}
}

func (d *DepositDict) key(field byte) []byte {
	return append(append([]byte{}, d.prefix...), field)
}

func (d *DepositDict) Exists() bool {
	return d.store.Contains(d.key(depositFieldBalance))
}

func (d *DepositDict) Balance() (uint64, bool) {
	b, ok := d.store.Get(d.key(depositFieldBalance))
	if !ok || len(b) != 8 {
		return 0, false
	}
	return decodeU64(b), true
}

func (d *DepositDict) SetBalance(balance uint64) {
	d.store.Set(d.key(depositFieldBalance), encodeU64(balance))
}

func (d *DepositDict) AutoStakeRewards() (bool, bool) {
	b, ok := d.store.Get(d.key(depositFieldAutoStakeReward))
	if !ok || len(b) != 1 {
		return false, false
	}
	return b[0] == 1, true
}

func (d *DepositDict) SetAutoStakeRewards(auto bool) {
	v := byte(0)
	if auto {
		v = 1
	}
	d.store.Set(d.key(depositFieldAutoStakeReward), []byte{v})
}

func (d *DepositDict) Delete() {
	d.store.Delete(d.key(depositFieldBalance))
	d.store.Delete(d.key(depositFieldAutoStakeReward))
}
