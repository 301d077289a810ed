package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var Account = cli.Command{
	Action:    account,
	Name:      "account",
	Usage:     "prints one account's fields",
	Flags:     []cli.Flag{&rootFlag, &v1Flag},
	ArgsUsage: "<database-dir> <address>",
}

func account(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("usage: wsdump account [--root hash] <database-dir> <address>")
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

	nonce, err := ws.Nonce(addr)
	if err != nil {
		return err
	}
	balance, err := ws.Balance(addr)
	if err != nil {
		return err
	}
	code, err := ws.Code(addr)
	if err != nil {
		return err
	}
	version, err := ws.CBIVersion(addr)
	if err != nil {
		return err
	}

	fmt.Printf("address:     %x\n", addr)
	fmt.Printf("nonce:       %d\n", nonce)
	fmt.Printf("balance:     %d\n", balance)
	fmt.Printf("cbi version: %d\n", version)
	fmt.Printf("code:        %d bytes\n", len(code))
	return nil
}
