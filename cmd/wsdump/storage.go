package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var Storage = cli.Command{
	Action:    storage,
	Name:      "storage",
	Usage:     "dumps every key/value pair in one account's storage trie",
	Flags:     []cli.Flag{&rootFlag, &v1Flag},
	ArgsUsage: "<database-dir> <address>",
}

func storage(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("usage: wsdump storage [--root hash] <database-dir> <address>")
	}
	addr, err := parseAddress(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	ws, store, err := openWorldState(ctx, ctx.Args().Get(0))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := ws.AllStorage(addr)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("(empty)")
		return nil
	}
	for k, v := range entries {
		fmt.Printf("%x: %x\n", k, v)
	}
	return nil
}
