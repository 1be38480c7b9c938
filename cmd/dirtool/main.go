// Command dirtool manages the business directory database from the shell.
package main

import (
	"os"
)

func main() {
	cmd := newRootCmd()
	cmd.SetOut(os.Stdout)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
