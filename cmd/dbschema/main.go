// Command dbschema compiles a declarative, Terraform-flavored configuration
// language into PostgreSQL DDL (or Prisma schema / JSON IR), per spec.md.
package main

import (
	"fmt"
	"os"

	"github.com/dbschema/dbschema/internal/cli"
)

func main() {
	root := cli.NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
