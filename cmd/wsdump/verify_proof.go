package main

import (
	"fmt"

	"github.com/parallelchain-io/pchain-world-state/keys"
	"github.com/urfave/cli/v2"
)

var VerifyProof = cli.Command{
	Action: verifyProof,
	Name:   "verify-proof",
	Usage:  "proves one account field or storage slot against the current root and checks the result",
	Flags: []cli.Flag{
		&rootFlag, &v1Flag,
		&cli.StringFlag{Name: "field", Usage: "account field suffix name: nonce, balance, code, cbiversion, storageroot"},
		&cli.StringFlag{Name: "slot", Usage: "hex storage application key, instead of --field"},
	},
	ArgsUsage: "<database-dir> <address>",
}

var accountFieldNames = map[string]keys.AccountFieldSuffix{
	"nonce":       keys.SuffixNonce,
	"balance":     keys.SuffixBalance,
	"code":        keys.SuffixCode,
	"cbiversion":  keys.SuffixCBIVersion,
	"storageroot": keys.SuffixStorageRoot,
}

func verifyProof(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("usage: wsdump verify-proof --field <name> <database-dir> <address>")
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

	root, err := ws.Root()
	if err != nil {
		return err
	}

	slot := ctx.String("slot")
	if slot != "" {
		key, err := parseHexBytes(slot)
		if err != nil {
			return err
		}
		proof, value, err := ws.ProveStorage(addr, key)
		if err != nil {
			return err
		}
		proven, ok := ws.VerifyStorageProof(root, addr, key, proof)
		return report(proof, value, proven, ok)
	}

	name := ctx.String("field")
	suffix, known := accountFieldNames[name]
	if !known {
		return fmt.Errorf("unknown --field %q", name)
	}
	proof, value, err := ws.ProveAccountField(addr, suffix)
	if err != nil {
		return err
	}
	proven, ok := ws.VerifyAccountFieldProof(root, addr, suffix, proof)
	return report(proof, value, proven, ok)
}

func report(proof [][]byte, looked, proven []byte, ok bool) error {
	fmt.Printf("proof length: %d nodes\n", len(proof))
	if !ok {
		fmt.Println("verification: FAILED (proof does not connect to root)")
		return nil
	}
	if string(looked) != string(proven) {
		fmt.Println("verification: FAILED (proof value mismatch)")
		return nil
	}
	fmt.Printf("verification: OK, value = %x\n", proven)
	return nil
}
