// Command wsdump inspects a pchain-world-state database directly on disk,
// without going through a node. Grounded on Carmen's
// database/mpt/tool/main.go: a single cli.App dispatching to one
// cli.Command per operation.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "wsdump",
		Usage: "inspects a pchain-world-state leveldb database",
		Commands: []*cli.Command{
			&Account,
			&Storage,
			&Network,
			&VerifyProof,
			&Migrate,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "wsdump: %v\n", err)
		os.Exit(1)
	}
}

var (
	rootFlag = cli.StringFlag{
		Name:     "root",
		Usage:    "hex-encoded account-trie state root (defaults to the empty root)",
		Required: false,
	}
	v1Flag = cli.BoolFlag{
		Name:  "v1",
		Usage: "read the database using V1 key rules instead of V2",
	}
)
