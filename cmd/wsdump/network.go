package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var Network = cli.Command{
	Action:    networkInfo,
	Name:      "network",
	Usage:     "prints the network account's validator pools and current epoch",
	Flags:     []cli.Flag{&rootFlag, &v1Flag},
	ArgsUsage: "<database-dir>",
}

func networkInfo(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("usage: wsdump network [--root hash] <database-dir>")
	}

	ws, store, err := openWorldState(ctx, ctx.Args().Get(0))
	if err != nil {
		return err
	}
	defer store.Close()

	na := ws.Network()
	fmt.Printf("current epoch: %d\n", na.CurrentEpoch())

	for _, row := range []struct {
		name string
		pool interface{ Length() uint32 }
	}{
		{"previous validator pools", na.PreviousValidatorPools()},
		{"validator pools", na.ValidatorPools()},
	} {
		fmt.Printf("%s: %d\n", row.name, row.pool.Length())
	}
	fmt.Printf("next validator pool candidates: %d\n", na.NextValidatorPools().Length())
	return nil
}
