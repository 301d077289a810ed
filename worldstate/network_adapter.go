package worldstate

import (
	"fmt"

	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/network"
)

// networkStorage adapts a WorldState's view of network.NetworkAddr's
// storage to network.Storage. It panics on a backing-store error (missing
// node, decode failure): the network account's root is always the caller's
// own, so a failure to resolve it indicates a corrupted store, not a
// reachable application-level condition the network package should have to
// thread through every accessor.
type networkStorage struct {
	ws *WorldState
}

func (s *networkStorage) Get(key []byte) ([]byte, bool) {
	v, err := s.ws.GetStorage(network.NetworkAddr, common.AppKey(key))
	if err != nil {
		panic(fmt.Sprintf("worldstate: network account storage corrupted: %v", err))
	}
	return v, v != nil
}

func (s *networkStorage) Contains(key []byte) bool {
	_, ok := s.Get(key)
	return ok
}

func (s *networkStorage) Set(key []byte, value []byte) {
	if err := s.ws.SetStorage(network.NetworkAddr, common.AppKey(key), common.Value(value)); err != nil {
		panic(fmt.Sprintf("worldstate: network account storage corrupted: %v", err))
	}
}

func (s *networkStorage) Delete(key []byte) {
	if err := s.ws.RemoveStorage(network.NetworkAddr, common.AppKey(key)); err != nil {
		panic(fmt.Sprintf("worldstate: network account storage corrupted: %v", err))
	}
}

// Network returns the typed network account view backed by this
// WorldState's storage trie for network.NetworkAddr.
func (w *WorldState) Network() *network.NetworkAccount {
	return network.Open(&networkStorage{ws: w})
}
