package main

import (
	"fmt"

	"github.com/parallelchain-io/pchain-world-state/leveldbstore"
	"github.com/parallelchain-io/pchain-world-state/worldstate"
	"github.com/urfave/cli/v2"
)

var Migrate = cli.Command{
	Action:    migrate,
	Name:      "migrate",
	Usage:     "migrates a V1 account trie to V2 key rules in place",
	Flags:     []cli.Flag{&rootFlag},
	ArgsUsage: "<database-dir>",
}

func migrate(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("usage: wsdump migrate --root <v1-hash> <database-dir>")
	}
	if ctx.String(rootFlag.Name) == "" {
		return fmt.Errorf("--root is required: the V1 account root to migrate")
	}
	v1Root, err := parseHash(ctx.String(rootFlag.Name))
	if err != nil {
		return err
	}

	store, err := leveldbstore.Open(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("opening %s: %w", ctx.Args().Get(0), err)
	}
	defer store.Close()

	v2Root, changes, addresses, bytesWritten, err := worldstate.MigrateV1ToV2(store, v1Root)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := store.Apply(changes.Inserts, changes.Deletes); err != nil {
		return fmt.Errorf("writing migrated nodes: %w", err)
	}

	fmt.Printf("v1 root:            %x\n", v1Root)
	fmt.Printf("v2 root:            %x\n", v2Root)
	fmt.Printf("addresses migrated: %d\n", addresses)
	fmt.Printf("bytes written:      %d\n", bytesWritten)
	return nil
}
