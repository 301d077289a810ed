package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/keys"
	"github.com/parallelchain-io/pchain-world-state/leveldbstore"
	"github.com/parallelchain-io/pchain-world-state/mpt"
	"github.com/parallelchain-io/pchain-world-state/worldstate"
	"github.com/urfave/cli/v2"
)

func parseHash(s string) (common.Hash, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	h, ok := common.HashFromBytes(b)
	if !ok {
		return common.Hash{}, fmt.Errorf("invalid hash %q: want 32 bytes, got %d", s, len(b))
	}
	return h, nil
}

func parseHexBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	a, ok := common.AddressFromBytes(b)
	if !ok {
		return common.Address{}, fmt.Errorf("invalid address %q: want 32 bytes, got %d", s, len(b))
	}
	return a, nil
}

// openWorldState opens the leveldb database at dir and the WorldState rooted
// at the --root flag (the empty root if unset), using V1 or V2 key rules
// per the --v1 flag. The caller must Close the returned store.
func openWorldState(ctx *cli.Context, dir string) (*worldstate.WorldState, *leveldbstore.Store, error) {
	store, err := leveldbstore.Open(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", dir, err)
	}

	root := mpt.EmptyRoot
	if s := ctx.String(rootFlag.Name); s != "" {
		root, err = parseHash(s)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
	}

	cfg := worldstate.DefaultConfig()
	if ctx.Bool(v1Flag.Name) {
		cfg.Codec = keys.V1Codec{}
	}
	return worldstate.Open(store, root, cfg), store, nil
}
