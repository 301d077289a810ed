package network

import (
	"encoding/binary"

	"github.com/parallelchain-io/pchain-world-state/common"
)

// Pool is a validator candidate: its operator, the commission it charges
// delegators, its current power, and the operator's own stake. Grounded on
// pool.rs's Pool.
type Pool struct {
	Operator       common.Address
	CommissionRate uint8
	Power          uint64
	OperatorStake  *Stake // nil if the operator has not staked to its own pool
}

// poolField prefixes mirror pool_data in pool.rs.
var (
	poolFieldOperator        = byte(0x00)
	poolFieldPower           = byte(0x01)
	poolFieldCommissionRate  = byte(0x02)
	poolFieldOperatorStake   = byte(0x03)
	poolFieldDelegatedStakes = byte(0x04)
)

// PoolDict is a keyspace-backed view of one Pool's fields, plus its
// delegated-stake heap. Grounded on pool.rs's PoolDict.
type PoolDict struct {
	store  Storage
	prefix []byte
}

func newPoolDict(store Storage, prefix []byte) *PoolDict {
	return &PoolDict{store: store, prefix: prefix}
}

func (d *PoolDict) key(field byte) []byte {
	return append(append([]byte{}, d.prefix...), field)
}

func (d *PoolDict) Exists() bool {
	return d.store.Contains(d.key(poolFieldOperator))
}

func (d *PoolDict) Operator() (common.Address, bool) {
	b, ok := d.store.Get(d.key(poolFieldOperator))
	if !ok {
		return common.Address{}, false
	}
	addr, ok := common.AddressFromBytes(b)
	return addr, ok
}

func (d *PoolDict) SetOperator(addr common.Address) {
	d.store.Set(d.key(poolFieldOperator), addr[:])
}

func (d *PoolDict) Power() (uint64, bool) {
	b, ok := d.store.Get(d.key(poolFieldPower))
	if !ok || len(b) != 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

func (d *PoolDict) SetPower(power uint64) {
	d.store.Set(d.key(poolFieldPower), binary.LittleEndian.AppendUint64(nil, power))
}

func (d *PoolDict) CommissionRate() (uint8, bool) {
	b, ok := d.store.Get(d.key(poolFieldCommissionRate))
	if !ok || len(b) != 1 {
		return 0, false
	}
	return b[0], true
}

func (d *PoolDict) SetCommissionRate(rate uint8) {
	d.store.Set(d.key(poolFieldCommissionRate), []byte{rate})
}

func (d *PoolDict) OperatorStake() *Stake {
	b, ok := d.store.Get(d.key(poolFieldOperatorStake))
	if !ok || len(b) == 0 {
		return nil
	}
	s := decodeStake(b)
	return &s
}

func (d *PoolDict) SetOperatorStake(stake *Stake) {
	if stake == nil {
		d.store.Delete(d.key(poolFieldOperatorStake))
		return
	}
	d.store.Set(d.key(poolFieldOperatorStake), stake.Encode())
}

// DelegatedStakes returns the pool's delegated-stake heap, bounded to
// MaxStakesPerPool and ordered by I6 (Power descending, address-descending
// tiebreak). It supports InsertExtract, unlike PVP/VP/NVS, which is how a
// pool admits a new delegator once it is already full: the weakest
// delegated stake is evicted in favour of the stronger one (DESIGN.md).
func (d *PoolDict) DelegatedStakes() *IndexHeap[Stake] {
	domain := append(append([]byte{}, d.prefix...), poolFieldDelegatedStakes)
	return NewIndexHeap(d.store, domain, MaxStakesPerPool, decodeStake, compareStakes)
}

func (d *PoolDict) Delete() {
	for _, f := range []byte{poolFieldOperator, poolFieldPower, poolFieldCommissionRate, poolFieldOperatorStake} {
		d.store.Delete(d.key(f))
	}
	d.DelegatedStakes().Clear()
}

// poolAddress is the lightweight element ValidatorPool's IndexMap stores:
// just the operator address, with no power/commission (those live in the
// nested PoolDict). Grounded on pool.rs's PoolAddress.
type poolAddress common.Address

func (p poolAddress) Key() []byte   { return p[:] }
func (p poolAddress) Encode() []byte { return append([]byte{}, p[:]...) }

func decodePoolAddress(b []byte) poolAddress {
	var p poolAddress
	copy(p[:], b)
	return p
}

// poolNestedMapPrefix is the single byte partitioning a ValidatorPool's own
// IndexMap entries from the per-operator PoolDicts nested under it; 0x03 is
// free because IndexMap itself only ever uses 0x00-0x02 (pool.rs).
const poolNestedMapPrefix = byte(0x03)

// ValidatorPool is a list of pools kept in push order (used for PVP and VP),
// each backed by its own PoolDict. Grounded on pool.rs's ValidatorPool.
type ValidatorPool struct {
	store  Storage
	domain []byte
	inner  *IndexMap[poolAddress]
}

func newValidatorPool(store Storage, domain []byte) *ValidatorPool {
	return &ValidatorPool{
		store:  store,
		domain: domain,
		inner:  NewIndexMap(store, domain, MaxValidatorSetSize, decodePoolAddress),
	}
}

func (vp *ValidatorPool) Length() uint32 {
	return vp.inner.Length()
}

func (vp *ValidatorPool) Get(index uint32) (common.Address, bool) {
	p, ok := vp.inner.Get(index)
	return common.Address(p), ok
}

func (vp *ValidatorPool) Pool(operator common.Address) (*PoolDict, bool) {
	if _, ok := vp.inner.GetBy(operator[:]); !ok {
		return nil, false
	}
	prefix := append(append([]byte{}, vp.domain...), poolNestedMapPrefix)
	prefix = append(prefix, operator[:]...)
	return newPoolDict(vp.store, prefix), true
}

func (vp *ValidatorPool) PoolAt(index uint32) (*PoolDict, bool) {
	addr, ok := vp.Get(index)
	if !ok {
		return nil, false
	}
	return vp.Pool(addr)
}

// Push appends pool to the list and resets its delegated-stake heap to
// delegatedStakes.
func (vp *ValidatorPool) Push(pool Pool, delegatedStakes []Stake) error {
	if err := vp.inner.Push(poolAddress(pool.Operator)); err != nil {
		return err
	}
	d, _ := vp.Pool(pool.Operator)
	d.SetOperator(pool.Operator)
	d.SetPower(pool.Power)
	d.SetCommissionRate(pool.CommissionRate)
	d.SetOperatorStake(pool.OperatorStake)
	_ = d.DelegatedStakes().Reset(delegatedStakes)
	return nil
}

// Clear removes every pool (and its delegated stakes) from the list.
func (vp *ValidatorPool) Clear() {
	length := vp.Length()
	for i := uint32(0); i < length; i++ {
		if d, ok := vp.PoolAt(i); ok {
			d.Delete()
		}
	}
	vp.inner.Clear()
}

// PoolKey is the value NVS (the next validator pool heap) stores: just
// enough to order candidates without loading the full Pool. Grounded on
// pool.rs's PoolKey, with Ord inverted to express I6's max-heap directly
// rather than a min-heap needing negation at the call site.
type PoolKey struct {
	Operator common.Address
	Power    uint64
}

func (k PoolKey) Key() []byte { return k.Operator[:] }

func (k PoolKey) Encode() []byte {
	b := make([]byte, 0, 40)
	b = append(b, k.Operator[:]...)
	return binary.LittleEndian.AppendUint64(b, k.Power)
}

func decodePoolKey(b []byte) PoolKey {
	var k PoolKey
	if len(b) < 40 {
		return k
	}
	copy(k.Operator[:], b[:32])
	k.Power = binary.LittleEndian.Uint64(b[32:40])
	return k
}

func comparePoolKeys(a, b PoolKey) int {
	if a.Power != b.Power {
		if a.Power > b.Power {
			return 1
		}
		return -1
	}
	return compareAddresses(a.Operator, b.Operator)
}
