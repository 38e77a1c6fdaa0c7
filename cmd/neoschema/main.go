// Command neoschema validates GraphQL type definitions for Neo4j, prints
// the augmented API schema and translates filter documents to Cypher.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/neoschema/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Subcommands report their own failures; only errors raised by
		// cobra itself (bad flags, unknown commands) still need printing.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
